// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler registers the background jobs: hourly shop stock rotation,
// activation of scheduled tournaments and refresh of time-based level caps.
func StartScheduler(shop *ShopService, tournaments *TournamentService, levelCaps *LevelCapService) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[SCHEDULER] Failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			shop.RotateStock()
		}),
	)

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			tournaments.ActivateScheduled()
		}),
	)

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			levelCaps.RefreshTimeRuleCaps()
		}),
	)
}
