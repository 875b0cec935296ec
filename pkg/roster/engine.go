// Package roster implements the automatic duty-roster assignment
// engine: a constraint-filtered, deterministically-seeded greedy
// assignor. It fills every (day, row) slot best-effort and records
// unmet needs as issues instead of failing.
package roster

import (
	"context"
	"sort"
	"time"

	"github.com/nobet/nobet/pkg/errors"
	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/logger"
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
	"github.com/nobet/nobet/pkg/need"
	"github.com/nobet/nobet/pkg/roster/rule"
	"github.com/nobet/nobet/pkg/staffindex"
)

// Input is one complete generation request: the month, the duty rows
// and the raw collaborator data. All of it is treated as a read-only
// snapshot for the duration of the run.
type Input struct {
	Year  int    `json:"year"`
	Month int    `json:"month"` // 1..12
	Role  string `json:"role,omitempty"`

	Rows      []*model.DutyRow       `json:"rows"`
	Overrides map[string]map[int]int `json:"overrides,omitempty"` // rowID -> day -> count

	LeavePolicy        model.LeavePolicy `json:"leave_policy,omitempty"`
	ForcePins          bool              `json:"force_pins,omitempty"`
	RequireEligibility bool              `json:"require_eligibility,omitempty"`

	Staff            []map[string]interface{} `json:"staff"`
	LeaveSources     []interface{}            `json:"leave_sources,omitempty"`
	Suppressions     []leave.Suppression      `json:"suppressions,omitempty"`
	Pins             model.PinMap             `json:"pins,omitempty"`
	SupervisorConfig map[string]interface{}   `json:"supervisor,omitempty"`
}

// supervisorIssueReason is the issue reason for unmet supervisor rows.
const supervisorIssueReason = "no supervisor candidate"

// Engine generates monthly duty rosters. One Engine is safe for
// concurrent use: every Generate call allocates its own indexes and
// counters.
type Engine struct {
	log   *logger.RosterLogger
	rules *rule.Set
}

// NewEngine creates an engine with the default rule chain.
func NewEngine() *Engine {
	return &Engine{
		log:   logger.NewRosterLogger(),
		rules: rule.DefaultSet(),
	}
}

// run bundles the per-invocation indexes the day loop works over.
type run struct {
	in       *Input
	staff    []*model.StaffMember // sorted by id, never map order
	resolver *names.Resolver
	leaves   *leave.Index
	needs    model.NeedMatrix
	policy   *model.SupervisorPolicy
	st       *runState
	rc       *rule.Context
	result   *model.RosterResult
}

// Generate produces the roster for one month. Data-quality problems
// are dropped or recorded as issues; the only errors are contract
// violations (nil input, month out of range) and context cancellation
// between days.
func (e *Engine) Generate(ctx context.Context, in *Input) (*model.RosterResult, error) {
	started := time.Now()
	if in == nil {
		return nil, errors.InvalidInput("input", "must not be nil")
	}
	if !model.ValidMonth(in.Year, in.Month) {
		return nil, errors.InvalidMonth(in.Year, in.Month)
	}
	if in.LeavePolicy == "" {
		in.LeavePolicy = model.LeaveHard
	}

	staff := staffindex.Build(in.Staff)
	sort.Slice(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
	resolver := names.NewResolver(staff)

	r := &run{
		in:       in,
		staff:    staff,
		resolver: resolver,
		leaves:   leave.Build(in.LeaveSources, in.Suppressions, resolver, in.Year, in.Month),
		needs:    need.BuildMatrix(in.Rows, in.Overrides, in.Year, in.Month),
		policy:   ResolvePolicy(in.SupervisorConfig, resolver),
		st:       newRunState(in.Year, in.Month),
		result:   model.NewRosterResult(in.Year, in.Month, in.Role),
	}
	r.rc = &rule.Context{
		Year:               in.Year,
		Month:              in.Month,
		Leaves:             r.leaves,
		LeavePolicy:        in.LeavePolicy,
		RequireEligibility: in.RequireEligibility,
	}

	var supervisorRows, genericRows []*model.DutyRow
	for _, row := range in.Rows {
		if rule.SupervisorLabel(row.Label) {
			supervisorRows = append(supervisorRows, row)
		} else {
			genericRows = append(genericRows, row)
		}
	}

	monthKey := model.MonthKey(in.Year, in.Month)
	e.log.StartRun(in.Role, monthKey, len(staff), len(in.Rows))

	days := model.DaysInMonth(in.Year, in.Month)
	for day := 1; day <= days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.st.startDay()
		r.rc.UsedToday = r.st.usedToday
		r.rc.NightPrev = r.st.nightPrev

		for _, row := range supervisorRows {
			e.fillSupervisorRow(r, row, day)
		}
		for _, row := range genericRows {
			e.fillRow(r, row, day)
		}
		r.st.endDay()
	}

	e.log.RunComplete(in.Role, monthKey, time.Since(started), r.result.TotalAssigned(), len(r.result.Issues))
	return r.result, nil
}

// fillRow fills one generic row for one day: pinned staff first, then
// a seeded random draw without replacement from the admissible pool.
func (e *Engine) fillRow(r *run, row *model.DutyRow, day int) {
	required := r.needs.Required(day, row.ID)
	if required <= 0 {
		r.result.SetNames(day, row.ID, []string{})
		return
	}

	assigned := make([]string, 0, required)
	for _, member := range e.takePins(r, row, day, required) {
		assigned = append(assigned, member.Name)
	}

	if len(assigned) < required {
		pool := e.admissible(r, row, day)
		r.st.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		for _, member := range pool {
			if len(assigned) >= required {
				break
			}
			assigned = append(assigned, member.Name)
			r.st.markAssigned(member, row)
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
		})
		e.log.UnmetNeed(day, row.Label, required, len(assigned))
	}
}

// takePins consumes the manual pins for (day, row) and returns the
// members it placed. With force pins the eligibility and leave checks
// are skipped for pins only; same-day double booking still holds. A pin
// that resolves to nobody is a no-op.
func (e *Engine) takePins(r *run, row *model.DutyRow, day, capacity int) []*model.StaffMember {
	var taken []*model.StaffMember
	for _, ref := range r.in.Pins.For(day, row.ID) {
		if len(taken) >= capacity {
			break
		}
		member, ok := r.resolver.ResolveMember(ref)
		if !ok {
			continue
		}
		if r.in.ForcePins {
			if r.st.usedToday[member.ID] {
				continue
			}
		} else if ok, _ := e.rules.Allows(r.rc, member, row, day); !ok {
			continue
		}
		taken = append(taken, member)
		r.st.markAssigned(member, row)
	}
	return taken
}

// admissible collects the staff passing the full rule chain for
// (row, day), in sorted-id order. Callers shuffle or re-sort; the pool
// order never leaks map iteration order.
func (e *Engine) admissible(r *run, row *model.DutyRow, day int) []*model.StaffMember {
	var pool []*model.StaffMember
	for _, member := range r.staff {
		if ok, _ := e.rules.Allows(r.rc, member, row, day); ok {
			pool = append(pool, member)
		}
	}
	return pool
}
