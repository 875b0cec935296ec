// Package rule implements the per-assignment checks the engine runs a
// candidate through before placing them in a (day, row) slot.
package rule

import (
	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/model"
)

// Context carries the run-scoped state a rule may consult. UsedToday
// and NightPrev are owned by the engine's day loop.
type Context struct {
	Year  int
	Month int

	Leaves      *leave.Index
	LeavePolicy model.LeavePolicy

	// RequireEligibility activates the area/shift-code checks.
	RequireEligibility bool

	// UsedToday holds staff ids already assigned on the current day.
	UsedToday map[string]bool

	// NightPrev holds staff ids that worked any night-coded row on the
	// previous day.
	NightPrev map[string]bool
}

// Rule is one named admission check for a (person, row, day) triple.
type Rule interface {
	Name() string
	Allows(rc *Context, s *model.StaffMember, row *model.DutyRow, day int) bool
}

// Set is an ordered rule chain. Order matters only for which rule gets
// reported as the blocker.
type Set struct {
	rules []Rule
}

// NewSet builds a chain from the given rules.
func NewSet(rules ...Rule) *Set {
	return &Set{rules: rules}
}

// DefaultSet returns the full admission chain used by the engine.
func DefaultSet() *Set {
	return NewSet(
		DoubleBooking{},
		OnLeave{},
		WeekendOff{},
		NightAllowed{},
		NightRest{},
		Eligibility{},
	)
}

// Allows runs the chain and returns the name of the first rule that
// rejects the candidate, or true with an empty name.
func (s *Set) Allows(rc *Context, member *model.StaffMember, row *model.DutyRow, day int) (bool, string) {
	for _, r := range s.rules {
		if !r.Allows(rc, member, row, day) {
			return false, r.Name()
		}
	}
	return true, ""
}

// DoubleBooking rejects staff already assigned today.
type DoubleBooking struct{}

// Name identifies the rule.
func (DoubleBooking) Name() string { return "double_booking" }

// Allows checks the used-today set.
func (DoubleBooking) Allows(rc *Context, s *model.StaffMember, _ *model.DutyRow, _ int) bool {
	return !rc.UsedToday[s.ID]
}

// OnLeave rejects staff on leave, unless the run ignores leaves.
type OnLeave struct{}

// Name identifies the rule.
func (OnLeave) Name() string { return "on_leave" }

// Allows consults the leave index under the current policy.
func (OnLeave) Allows(rc *Context, s *model.StaffMember, _ *model.DutyRow, day int) bool {
	if !rc.LeavePolicy.Excludes() || rc.Leaves == nil {
		return true
	}
	return !rc.Leaves.OnLeave(s, model.MonthKey(rc.Year, rc.Month), day)
}

// WeekendOff rejects weekend-off staff on weekend days, regardless of
// any other eligibility.
type WeekendOff struct{}

// Name identifies the rule.
func (WeekendOff) Name() string { return "weekend_off" }

// Allows checks the weekend-off flag against the calendar.
func (WeekendOff) Allows(rc *Context, s *model.StaffMember, _ *model.DutyRow, day int) bool {
	if !s.WeekendOff {
		return true
	}
	return !model.IsWeekend(rc.Year, rc.Month, day)
}

// NightAllowed rejects staff barred from night shifts on night rows.
type NightAllowed struct{}

// Name identifies the rule.
func (NightAllowed) Name() string { return "night_allowed" }

// Allows passes unless the row is night-coded and the flag is off.
func (NightAllowed) Allows(_ *Context, s *model.StaffMember, row *model.DutyRow, _ int) bool {
	return s.NightAllowed || !row.IsNight()
}

// NightRest enforces the mandatory inter-shift rest: staff who worked
// any night-coded row yesterday cannot take a night-coded row today.
type NightRest struct{}

// Name identifies the rule.
func (NightRest) Name() string { return "night_rest" }

// Allows checks yesterday's night workers for night rows.
func (NightRest) Allows(rc *Context, s *model.StaffMember, row *model.DutyRow, _ int) bool {
	if !row.IsNight() {
		return true
	}
	return !rc.NightPrev[s.ID]
}
