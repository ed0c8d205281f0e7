package services

import (
	"math"
	"sort"
	"time"

	"cobblemon-community-api/models"
	"cobblemon-community-api/utils"
)

// unboundedCapFallback is what clients receive when no rule or formula
// bounds a cap.
const unboundedCapFallback = 100

// PlayerCapAttributes are the player fields the resolver reads.
type PlayerCapAttributes struct {
	MinecraftUUID   string
	Groups          []string
	Badges          int
	PlaytimeMinutes int
	Level           int
}

// EffectiveCaps is the resolver output for one player at one instant.
type EffectiveCaps struct {
	CaptureCap   int       `json:"captureCap"`
	OwnershipCap int       `json:"ownershipCap"`
	AppliedRules []string  `json:"appliedRules"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// ResolveEffectiveCaps combines the default formulas, the matching static
// rules and the active time-based rules into the two caps. Rules only ever
// lower a cap (min-fold); the capture cap can never exceed the ownership
// cap; anything left unbounded collapses to the fallback.
func ResolveEffectiveCaps(global models.GlobalCapConfig, staticRules []models.StaticCapRule, timeRules []models.TimeBasedCapRule, player PlayerCapAttributes, now time.Time) EffectiveCaps {
	captureCap := math.Inf(1)
	ownershipCap := math.Inf(1)
	appliedRules := []string{}

	if global.CaptureCapEnabled && global.DefaultCaptureCapFormula != "" {
		captureCap = evaluateCapFormula(global.DefaultCaptureCapFormula, player)
	}
	if global.OwnershipCapEnabled && global.DefaultOwnershipCapFormula != "" {
		ownershipCap = evaluateCapFormula(global.DefaultOwnershipCapFormula, player)
	}

	matching := make([]models.StaticCapRule, 0, len(staticRules))
	for _, rule := range staticRules {
		if rule.Active && matchesStaticConditions(rule.Conditions, player) {
			matching = append(matching, rule)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool { return matching[i].Priority > matching[j].Priority })

	for _, rule := range matching {
		if rule.CaptureCap != nil {
			captureCap = math.Min(captureCap, float64(*rule.CaptureCap))
			appliedRules = append(appliedRules, rule.ID)
		}
		if rule.OwnershipCap != nil {
			ownershipCap = math.Min(ownershipCap, float64(*rule.OwnershipCap))
			appliedRules = append(appliedRules, rule.ID)
		}
	}

	for _, rule := range timeRules {
		if !rule.Active || rule.StartDate.After(now) {
			continue
		}
		if rule.EndDate != nil && rule.EndDate.Before(now) {
			continue
		}
		current := float64(TimeBasedCapAt(rule, now))
		if rule.TargetCap == models.CapTargetCapture || rule.TargetCap == models.CapTargetBoth {
			captureCap = math.Min(captureCap, current)
			appliedRules = append(appliedRules, rule.ID)
		}
		if rule.TargetCap == models.CapTargetOwnership || rule.TargetCap == models.CapTargetBoth {
			ownershipCap = math.Min(ownershipCap, current)
			appliedRules = append(appliedRules, rule.ID)
		}
	}

	captureCap = math.Min(captureCap, ownershipCap)

	return EffectiveCaps{
		CaptureCap:   finiteCap(captureCap),
		OwnershipCap: finiteCap(ownershipCap),
		AppliedRules: appliedRules,
		CalculatedAt: now,
	}
}

// TimeBasedCapAt computes the cap a time-based rule yields at the given
// instant: daily and interval progressions grow from StartCap, a schedule
// takes the most recent past entry outright. MaxCap clamps the result.
func TimeBasedCapAt(rule models.TimeBasedCapRule, now time.Time) int {
	daysPassed := int(math.Floor(now.Sub(rule.StartDate).Hours() / 24))
	if daysPassed < 0 {
		daysPassed = 0
	}
	cap := rule.StartCap

	switch rule.Progression.Type {
	case models.ProgressionDaily:
		cap += daysPassed * rule.Progression.DailyIncrease
	case models.ProgressionInterval:
		intervalDays := rule.Progression.IntervalDays
		if intervalDays < 1 {
			intervalDays = 1
		}
		cap += (daysPassed / intervalDays) * rule.Progression.IntervalIncrease
	case models.ProgressionSchedule:
		var latest *models.ScheduleEntry
		for i := range rule.Progression.Schedule {
			entry := &rule.Progression.Schedule[i]
			if entry.Date.After(now) {
				continue
			}
			if latest == nil || entry.Date.After(latest.Date) {
				latest = entry
			}
		}
		if latest != nil {
			cap = latest.SetCap
		}
	}

	if rule.MaxCap != nil && cap > *rule.MaxCap {
		cap = *rule.MaxCap
	}
	return cap
}

// matchesStaticConditions checks every condition present on the rule;
// absent conditions pass.
func matchesStaticConditions(cond models.StaticRuleConditions, player PlayerCapAttributes) bool {
	if len(cond.PlayerGroups) > 0 {
		any := false
		for _, want := range cond.PlayerGroups {
			for _, have := range player.Groups {
				if want == have {
					any = true
					break
				}
			}
		}
		if !any {
			return false
		}
	}
	if len(cond.SpecificPlayers) > 0 {
		found := false
		for _, p := range cond.SpecificPlayers {
			if p == player.MinecraftUUID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cond.BadgesMin != nil && player.Badges < *cond.BadgesMin {
		return false
	}
	if cond.BadgesMax != nil && player.Badges > *cond.BadgesMax {
		return false
	}
	if cond.PlaytimeMin != nil && player.PlaytimeMinutes < *cond.PlaytimeMin {
		return false
	}
	if cond.PlaytimeMax != nil && player.PlaytimeMinutes > *cond.PlaytimeMax {
		return false
	}
	return true
}

// evaluateCapFormula runs a default formula through the safe evaluator.
// A malformed formula leaves the cap unbounded rather than guessing.
func evaluateCapFormula(formula string, player PlayerCapAttributes) float64 {
	vars := map[string]float64{
		"badges":   float64(player.Badges),
		"playtime": float64(player.PlaytimeMinutes),
		"level":    float64(player.Level),
	}
	result, err := utils.EvalFormula(formula, vars)
	if err != nil {
		return math.Inf(1)
	}
	return float64(result)
}

func finiteCap(v float64) int {
	if math.IsInf(v, 1) {
		return unboundedCapFallback
	}
	return int(v)
}
