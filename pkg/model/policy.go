package model

// SupervisorPolicy is the normalized "responsible supervisor"
// configuration used to fill the service-supervisor rows before any
// other row on a day.
type SupervisorPolicy struct {
	PrimaryID       string   `json:"primary_id,omitempty"`
	AssistantIDs    []string `json:"assistant_ids,omitempty"`
	FallbackPoolIDs []string `json:"fallback_pool_ids,omitempty"`

	// WeekdayOnly forces the supervisor need to zero on weekends.
	WeekdayOnly bool `json:"weekday_only,omitempty"`

	// EscalationDays require the primary plus MinAssistantsOnEscalation
	// assistants; BlackoutDays forbid using the primary at all.
	EscalationDays            map[int]bool `json:"escalation_days,omitempty"`
	BlackoutDays              map[int]bool `json:"blackout_days,omitempty"`
	MinAssistantsOnEscalation int          `json:"min_assistants_on_escalation,omitempty"`
}

// EmptySupervisorPolicy returns a policy with no configured people,
// which makes the engine fall back to its supervisor-like heuristic.
func EmptySupervisorPolicy() *SupervisorPolicy {
	return &SupervisorPolicy{
		EscalationDays: make(map[int]bool),
		BlackoutDays:   make(map[int]bool),
	}
}
