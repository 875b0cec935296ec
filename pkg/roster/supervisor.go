package roster

import (
	"sort"

	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/roster/rule"
)

// fillSupervisorRow fills a service-supervisor row using the supervisor
// policy. Fill order: pins, the primary (outside blackout days),
// assistants in listed order, then the fallback pool sorted by
// cumulative usage with the seeded RNG as tie-break.
func (e *Engine) fillSupervisorRow(r *run, row *model.DutyRow, day int) {
	weekend := model.IsWeekend(r.in.Year, r.in.Month, day)
	if r.policy.WeekdayOnly && weekend {
		// Need forced to zero for this row; an empty list, not an issue.
		r.result.SetNames(day, row.ID, []string{})
		return
	}

	required := r.needs.Required(day, row.ID)
	if r.policy.EscalationDays[day] {
		if escalated := 1 + r.policy.MinAssistantsOnEscalation; escalated > required {
			required = escalated
		}
	}
	if required <= 0 {
		r.result.SetNames(day, row.ID, []string{})
		return
	}

	assigned := make([]string, 0, required)
	take := func(member *model.StaffMember) {
		assigned = append(assigned, member.Name)
		r.st.markAssigned(member, row)
		r.st.supervisorUse[member.ID]++
	}

	// Pin fills count toward the usage balance too.
	for _, member := range e.takePins(r, row, day, required) {
		assigned = append(assigned, member.Name)
		r.st.supervisorUse[member.ID]++
	}

	if len(assigned) < required && r.policy.PrimaryID != "" && !r.policy.BlackoutDays[day] {
		if member, ok := r.resolver.Lookup(r.policy.PrimaryID); ok {
			if ok, _ := e.rules.Allows(r.rc, member, row, day); ok {
				take(member)
			}
		}
	}

	for _, id := range r.policy.AssistantIDs {
		if len(assigned) >= required {
			break
		}
		member, ok := r.resolver.Lookup(id)
		if !ok {
			continue
		}
		if ok, _ := e.rules.Allows(r.rc, member, row, day); ok {
			take(member)
		}
	}

	if len(assigned) < required {
		for _, member := range e.fallbackPool(r, row, day) {
			if len(assigned) >= required {
				break
			}
			take(member)
		}
	}

	r.result.SetNames(day, row.ID, assigned)
	if len(assigned) < required {
		r.result.AddIssue(model.Issue{
			Day:      day,
			RowID:    row.ID,
			Label:    row.Label,
			Required: required,
			Assigned: len(assigned),
			Reason:   supervisorIssueReason,
		})
		e.log.UnmetNeed(day, row.Label, required, len(assigned))
	}
}

// fallbackPool returns the admissible fallback candidates for a
// supervisor row, least-used first. With no configured pool the
// supervisor-like heuristic derives one; if eligibility filtering
// leaves that empty, a shift-code-only pass is tried (supervisor rows
// only).
func (e *Engine) fallbackPool(r *run, row *model.DutyRow, day int) []*model.StaffMember {
	var pool []*model.StaffMember
	if len(r.policy.FallbackPoolIDs) > 0 {
		for _, id := range r.policy.FallbackPoolIDs {
			member, ok := r.resolver.Lookup(id)
			if !ok {
				continue
			}
			if ok, _ := e.rules.Allows(r.rc, member, row, day); ok {
				pool = append(pool, member)
			}
		}
	} else {
		for _, member := range r.staff {
			if !rule.MatchesSupervisorHeuristic(member) {
				continue
			}
			if ok, _ := e.rules.Allows(r.rc, member, row, day); ok {
				pool = append(pool, member)
			}
		}
		if len(pool) == 0 && r.rc.RequireEligibility {
			pool = e.shiftCodePool(r, row, day)
		}
	}

	// Ascending cumulative usage, seeded RNG as tie-break, to spread
	// the load.
	ties := make(map[string]int64, len(pool))
	for _, member := range pool {
		ties[member.ID] = r.st.rng.Int63()
	}
	sort.Slice(pool, func(i, j int) bool {
		ui, uj := r.st.supervisorUse[pool[i].ID], r.st.supervisorUse[pool[j].ID]
		if ui != uj {
			return ui < uj
		}
		return ties[pool[i].ID] < ties[pool[j].ID]
	})
	return pool
}

// shiftCodePool relaxes the area-keyword check to shift code only,
// keeping every other rule in force.
func (e *Engine) shiftCodePool(r *run, row *model.DutyRow, day int) []*model.StaffMember {
	relaxed := *r.rc
	relaxed.RequireEligibility = false
	var pool []*model.StaffMember
	for _, member := range r.staff {
		if !member.AllowsShift(row.ShiftCode) {
			continue
		}
		if ok, _ := e.rules.Allows(&relaxed, member, row, day); ok {
			pool = append(pool, member)
		}
	}
	return pool
}
