package services

import (
	"testing"
	"time"

	"cobblemon-community-api/models"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func intPtr(v int) *int { return &v }

func baseGlobalConfig() models.GlobalCapConfig {
	return models.GlobalCapConfig{
		CaptureCapEnabled:          true,
		OwnershipCapEnabled:        true,
		DefaultCaptureCapFormula:   "10 + badges * 10",
		DefaultOwnershipCapFormula: "15 + badges * 10",
		EnforcementMode:            models.EnforcementModeHard,
	}
}

func TestResolveEffectiveCapsDefaults(t *testing.T) {
	player := PlayerCapAttributes{MinecraftUUID: "uuid-1", Badges: 3}
	caps := ResolveEffectiveCaps(baseGlobalConfig(), nil, nil, player, time.Now())

	assert.Equal(t, 40, caps.CaptureCap)
	assert.Equal(t, 45, caps.OwnershipCap)
	assert.Empty(t, caps.AppliedRules)
}

func TestResolveEffectiveCapsStaticRulesMinFold(t *testing.T) {
	player := PlayerCapAttributes{MinecraftUUID: "uuid-1", Groups: []string{"vip"}, Badges: 8}
	rules := []models.StaticCapRule{
		{
			ID: "rule-a", Name: "VIP boost", Priority: 10, Active: true,
			Conditions: models.StaticRuleConditions{PlayerGroups: []string{"vip"}},
			CaptureCap: intPtr(80),
		},
		{
			ID: "rule-b", Name: "Event clamp", Priority: 5, Active: true,
			CaptureCap: intPtr(60),
		},
		{
			ID: "rule-c", Name: "Inactive", Priority: 100, Active: false,
			CaptureCap: intPtr(10),
		},
	}

	caps := ResolveEffectiveCaps(baseGlobalConfig(), rules, nil, player, time.Now())

	// Both active rules matched and folded via min: min(90, 80, 60) = 60.
	assert.Equal(t, 60, caps.CaptureCap)
	assert.Contains(t, caps.AppliedRules, "rule-a")
	assert.Contains(t, caps.AppliedRules, "rule-b")
	assert.NotContains(t, caps.AppliedRules, "rule-c")
}

func TestResolveEffectiveCapsGroupMismatchSkipsRule(t *testing.T) {
	player := PlayerCapAttributes{MinecraftUUID: "uuid-1", Badges: 0}
	rules := []models.StaticCapRule{
		{
			ID: "vip-only", Active: true,
			Conditions: models.StaticRuleConditions{PlayerGroups: []string{"vip"}},
			CaptureCap: intPtr(5),
		},
	}

	caps := ResolveEffectiveCaps(baseGlobalConfig(), rules, nil, player, time.Now())
	assert.Equal(t, 10, caps.CaptureCap)
	assert.Empty(t, caps.AppliedRules)
}

func TestResolveEffectiveCapsMalformedFormulaFallsBack(t *testing.T) {
	global := baseGlobalConfig()
	global.DefaultCaptureCapFormula = "10 +* badges"
	global.DefaultOwnershipCapFormula = ""

	caps := ResolveEffectiveCaps(global, nil, nil, PlayerCapAttributes{}, time.Now())
	assert.Equal(t, unboundedCapFallback, caps.CaptureCap)
	assert.Equal(t, unboundedCapFallback, caps.OwnershipCap)
}

func TestResolveEffectiveCapsCaptureNeverExceedsOwnership(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		player := PlayerCapAttributes{
			MinecraftUUID:   "uuid-1",
			Badges:          rapid.IntRange(0, 8).Draw(t, "badges"),
			PlaytimeMinutes: rapid.IntRange(0, 10000).Draw(t, "playtime"),
		}
		var rules []models.StaticCapRule
		for i := 0; i < rapid.IntRange(0, 4).Draw(t, "ruleCount"); i++ {
			rules = append(rules, models.StaticCapRule{
				ID:           rapid.StringMatching(`rule-[a-z]{3}`).Draw(t, "id"),
				Active:       rapid.Bool().Draw(t, "active"),
				Priority:     rapid.IntRange(0, 100).Draw(t, "priority"),
				CaptureCap:   intPtr(rapid.IntRange(1, 100).Draw(t, "capture")),
				OwnershipCap: intPtr(rapid.IntRange(1, 100).Draw(t, "ownership")),
			})
		}

		caps := ResolveEffectiveCaps(baseGlobalConfig(), rules, nil, player, time.Now())
		assert.LessOrEqual(t, caps.CaptureCap, caps.OwnershipCap)
		assert.Greater(t, caps.CaptureCap, 0)
	})
}

func TestTimeBasedCapAtDaily(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := models.TimeBasedCapRule{
		StartCap:    20,
		Progression: models.ProgressionConfig{Type: models.ProgressionDaily, DailyIncrease: 5},
	}
	rule.StartDate = start

	assert.Equal(t, 20, TimeBasedCapAt(rule, start.Add(12*time.Hour)))
	assert.Equal(t, 35, TimeBasedCapAt(rule, start.AddDate(0, 0, 3)))
}

func TestTimeBasedCapAtFutureStartStaysAtStartCap(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	daily := models.TimeBasedCapRule{
		StartDate:   start,
		StartCap:    20,
		Progression: models.ProgressionConfig{Type: models.ProgressionDaily, DailyIncrease: 5},
	}
	interval := models.TimeBasedCapRule{
		StartDate: start,
		StartCap:  30,
		Progression: models.ProgressionConfig{
			Type: models.ProgressionInterval, IntervalDays: 7, IntervalIncrease: 10,
		},
	}

	before := start.AddDate(0, 0, -10)
	assert.Equal(t, 20, TimeBasedCapAt(daily, before))
	assert.Equal(t, 30, TimeBasedCapAt(interval, before))
}

func TestTimeBasedCapAtInterval(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := models.TimeBasedCapRule{
		StartDate: start,
		StartCap:  30,
		Progression: models.ProgressionConfig{
			Type: models.ProgressionInterval, IntervalDays: 7, IntervalIncrease: 10,
		},
	}

	assert.Equal(t, 30, TimeBasedCapAt(rule, start.AddDate(0, 0, 6)))
	assert.Equal(t, 40, TimeBasedCapAt(rule, start.AddDate(0, 0, 7)))
	assert.Equal(t, 50, TimeBasedCapAt(rule, start.AddDate(0, 0, 15)))
}

func TestTimeBasedCapAtSchedulePicksLatestPastEntry(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := models.TimeBasedCapRule{
		StartDate: start,
		StartCap:  10,
		Progression: models.ProgressionConfig{
			Type: models.ProgressionSchedule,
			Schedule: []models.ScheduleEntry{
				{Date: start.AddDate(0, 0, 5), SetCap: 40},
				{Date: start.AddDate(0, 0, 10), SetCap: 70},
				{Date: start.AddDate(0, 0, 20), SetCap: 90},
			},
		},
	}

	// Entries set the cap outright, no summing; future entries are ignored.
	assert.Equal(t, 10, TimeBasedCapAt(rule, start.AddDate(0, 0, 2)))
	assert.Equal(t, 40, TimeBasedCapAt(rule, start.AddDate(0, 0, 7)))
	assert.Equal(t, 70, TimeBasedCapAt(rule, start.AddDate(0, 0, 12)))
}

func TestTimeBasedCapAtMaxCapClamp(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := models.TimeBasedCapRule{
		StartDate:   start,
		StartCap:    20,
		MaxCap:      intPtr(50),
		Progression: models.ProgressionConfig{Type: models.ProgressionDaily, DailyIncrease: 10},
	}

	assert.Equal(t, 50, TimeBasedCapAt(rule, start.AddDate(0, 0, 30)))
}

func TestResolveEffectiveCapsTimeRuleWindow(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	ended := now.AddDate(0, 0, -1)
	rules := []models.TimeBasedCapRule{
		{
			ID: "upcoming", Active: true, TargetCap: models.CapTargetBoth,
			StartDate: now.AddDate(0, 0, 1), StartCap: 1,
			Progression: models.ProgressionConfig{Type: models.ProgressionDaily},
		},
		{
			ID: "expired", Active: true, TargetCap: models.CapTargetBoth,
			StartDate: now.AddDate(0, 0, -10), EndDate: &ended, StartCap: 1,
			Progression: models.ProgressionConfig{Type: models.ProgressionDaily},
		},
		{
			ID: "running", Active: true, TargetCap: models.CapTargetCapture,
			StartDate: now.AddDate(0, 0, -2), StartCap: 25,
			Progression: models.ProgressionConfig{Type: models.ProgressionDaily},
		},
	}

	caps := ResolveEffectiveCaps(baseGlobalConfig(), nil, rules, PlayerCapAttributes{Badges: 8}, now)
	assert.Equal(t, []string{"running"}, caps.AppliedRules)
	assert.Equal(t, 25, caps.CaptureCap)
	assert.Equal(t, 95, caps.OwnershipCap)
}
