package models

import (
	"encoding/json"
	"time"
)

// Enforcement modes for level caps on the Minecraft side.
const (
	EnforcementModeHard = "hard"
	EnforcementModeSoft = "soft"
)

// Targets for time-based rules.
const (
	CapTargetCapture   = "capture"
	CapTargetOwnership = "ownership"
	CapTargetBoth      = "both"
)

// Progression types for time-based rules.
const (
	ProgressionDaily    = "daily"
	ProgressionInterval = "interval"
	ProgressionSchedule = "schedule"
)

// CapMessages are the user-facing strings the plugin shows when a cap blocks
// an action.
type CapMessages struct {
	CaptureFailed string `json:"capture_failed"`
	ExpBlocked    string `json:"exp_blocked"`
	ItemBlocked   string `json:"item_blocked"`
	TradeBlocked  string `json:"trade_blocked"`
}

// GlobalCapConfig holds the server-wide toggles and default formulas.
// Formulas are arithmetic expressions over the variables badges, playtime
// and level, evaluated by utils.EvalFormula, never as host code.
type GlobalCapConfig struct {
	CaptureCapEnabled          bool        `json:"capture_cap_enabled"`
	OwnershipCapEnabled        bool        `json:"ownership_cap_enabled"`
	DefaultCaptureCapFormula   string      `json:"default_capture_cap_formula"`
	DefaultOwnershipCapFormula string      `json:"default_ownership_cap_formula"`
	EnforcementMode            string      `json:"enforcement_mode"`
	CustomMessages             CapMessages `json:"custom_messages"`
}

// StaticRuleConditions gate a static rule. Every condition present must
// hold; absent conditions are vacuously satisfied.
type StaticRuleConditions struct {
	PlayerGroups    []string  `json:"player_groups,omitempty"`
	SpecificPlayers []string  `json:"specific_players,omitempty"` // minecraft uuids
	BadgesMin       *int      `json:"badges_min,omitempty"`
	BadgesMax       *int      `json:"badges_max,omitempty"`
	PlaytimeMin     *int      `json:"playtime_min,omitempty"`
	PlaytimeMax     *int      `json:"playtime_max,omitempty"`
}

// StaticCapRule overrides caps for matching players. Every matching rule
// folds into the running cap via min; there is no first-match short-circuit.
type StaticCapRule struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Priority     int                  `json:"priority"`
	Active       bool                 `json:"active"`
	Conditions   StaticRuleConditions `json:"conditions"`
	CaptureCap   *int                 `json:"capture_cap,omitempty"`
	OwnershipCap *int                 `json:"ownership_cap,omitempty"`
	CreatedBy    string               `json:"created_by"`
	CreatedAt    time.Time            `json:"created_at"`
	Notes        string               `json:"notes,omitempty"`
}

// ScheduleEntry sets an explicit cap from its date onward; the most recent
// past entry wins outright (no summing).
type ScheduleEntry struct {
	Date   time.Time `json:"date"`
	SetCap int       `json:"set_cap"`
}

// ProgressionConfig describes how a time-based rule grows its cap.
type ProgressionConfig struct {
	Type             string          `json:"type"`
	DailyIncrease    int             `json:"daily_increase,omitempty"`
	IntervalDays     int             `json:"interval_days,omitempty"`
	IntervalIncrease int             `json:"interval_increase,omitempty"`
	Schedule         []ScheduleEntry `json:"schedule,omitempty"`
}

// TimeBasedCapRule raises (or sets) a cap as time passes, bounded by an
// optional MaxCap. CurrentCap is a denormalized snapshot refreshed by the
// scheduler for the admin dashboard; the resolver always recomputes.
type TimeBasedCapRule struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	TargetCap   string            `json:"target_cap"`
	Progression ProgressionConfig `json:"progression"`
	StartCap    int               `json:"start_cap"`
	MaxCap      *int              `json:"max_cap,omitempty"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	CurrentCap  int               `json:"current_cap"`
	LastUpdate  time.Time         `json:"last_update"`
	CreatedBy   string            `json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CapChange is one append-only audit entry for admin edits.
type CapChange struct {
	Timestamp time.Time       `json:"timestamp"`
	Admin     string          `json:"admin"`
	Action    string          `json:"action"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// LevelCapConfigID is the fixed primary key of the singleton config row.
const LevelCapConfigID = "current"

// LevelCapConfig is the singleton level-cap document: global config plus
// rule arrays and the audit trail, each as a typed JSON column.
type LevelCapConfig struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	GlobalJSON       string    `json:"-" gorm:"type:text;column:global_json"`
	StaticRulesJSON  string    `json:"-" gorm:"type:text;column:static_rules_json"`
	TimeRulesJSON    string    `json:"-" gorm:"type:text;column:time_rules_json"`
	HistoryJSON      string    `json:"-" gorm:"type:text;column:history_json"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// DefaultGlobalCapConfig is the config seeded on first access.
func DefaultGlobalCapConfig() GlobalCapConfig {
	return GlobalCapConfig{
		CaptureCapEnabled:          true,
		OwnershipCapEnabled:        true,
		DefaultCaptureCapFormula:   "10 + badges * 10",
		DefaultOwnershipCapFormula: "15 + badges * 10",
		EnforcementMode:            EnforcementModeHard,
		CustomMessages: CapMessages{
			CaptureFailed: "¡Este Pokémon supera tu nivel de captura!",
			ExpBlocked:    "Tu Pokémon ha alcanzado el límite de nivel actual.",
			ItemBlocked:   "No puedes usar este objeto todavía.",
			TradeBlocked:  "No puedes recibir un Pokémon de ese nivel todavía.",
		},
	}
}

func (c *LevelCapConfig) Global() (GlobalCapConfig, error) {
	if c.GlobalJSON == "" {
		return DefaultGlobalCapConfig(), nil
	}
	var global GlobalCapConfig
	err := json.Unmarshal([]byte(c.GlobalJSON), &global)
	return global, err
}

func (c *LevelCapConfig) SetGlobal(global GlobalCapConfig) error {
	data, err := json.Marshal(global)
	if err != nil {
		return err
	}
	c.GlobalJSON = string(data)
	return nil
}

func (c *LevelCapConfig) StaticRules() ([]StaticCapRule, error) {
	if c.StaticRulesJSON == "" {
		return nil, nil
	}
	var rules []StaticCapRule
	err := json.Unmarshal([]byte(c.StaticRulesJSON), &rules)
	return rules, err
}

func (c *LevelCapConfig) SetStaticRules(rules []StaticCapRule) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	c.StaticRulesJSON = string(data)
	return nil
}

func (c *LevelCapConfig) TimeRules() ([]TimeBasedCapRule, error) {
	if c.TimeRulesJSON == "" {
		return nil, nil
	}
	var rules []TimeBasedCapRule
	err := json.Unmarshal([]byte(c.TimeRulesJSON), &rules)
	return rules, err
}

func (c *LevelCapConfig) SetTimeRules(rules []TimeBasedCapRule) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	c.TimeRulesJSON = string(data)
	return nil
}

func (c *LevelCapConfig) History() ([]CapChange, error) {
	if c.HistoryJSON == "" {
		return nil, nil
	}
	var history []CapChange
	err := json.Unmarshal([]byte(c.HistoryJSON), &history)
	return history, err
}

// AppendHistory adds an audit entry. History is append-only; failures to
// decode the existing log start a fresh one rather than losing the edit.
func (c *LevelCapConfig) AppendHistory(change CapChange) error {
	history, err := c.History()
	if err != nil {
		history = nil
	}
	history = append(history, change)
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	c.HistoryJSON = string(data)
	return nil
}
