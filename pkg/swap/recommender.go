// Package swap recommends substitutes for a vacated roster slot.
package swap

import (
	"fmt"
	"sort"

	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
	"github.com/nobet/nobet/pkg/roster/rule"
)

// Request describes one vacated (day, row) slot inside an existing
// roster, together with the inputs the roster was generated from.
type Request struct {
	Result      *model.RosterResult
	Day         int
	Row         *model.DutyRow
	VacatedName string // the member leaving the slot

	Staff              []*model.StaffMember
	Rows               []*model.DutyRow
	Leaves             *leave.Index
	LeavePolicy        model.LeavePolicy
	RequireEligibility bool
}

// Recommendation is one ranked substitute.
type Recommendation struct {
	Staff  *model.StaffMember `json:"staff"`
	Score  float64            `json:"score"`
	Reason string             `json:"reason"`
	Rank   int                `json:"rank"`
}

// Options tune the recommendation list.
type Options struct {
	MaxRecommendations int
	MinScore           float64
	ExcludeNames       []string
}

// DefaultOptions returns the default tuning.
func DefaultOptions() *Options {
	return &Options{
		MaxRecommendations: 5,
		MinScore:           0,
	}
}

// Recommender ranks admissible substitutes for a slot, preferring
// lightly-loaded staff. It applies the same rule chain the engine uses.
type Recommender struct {
	rules *rule.Set
}

// NewRecommender creates a recommender with the default rule chain.
func NewRecommender() *Recommender {
	return &Recommender{rules: rule.DefaultSet()}
}

// Recommend returns the ranked substitutes for the request.
func (r *Recommender) Recommend(req *Request, opts *Options) []Recommendation {
	if req == nil || req.Result == nil || req.Row == nil {
		return nil
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	resolver := names.NewResolver(req.Staff)
	rc := r.ruleContext(req, resolver)

	exclude := map[string]bool{names.Canonical(req.VacatedName): true}
	for _, name := range opts.ExcludeNames {
		exclude[names.Canonical(name)] = true
	}

	loads := monthlyLoads(req.Result)

	var recs []Recommendation
	for _, member := range req.Staff {
		if exclude[member.NameCanonical] {
			continue
		}
		if ok, _ := r.rules.Allows(rc, member, req.Row, req.Day); !ok {
			continue
		}

		load := loads[member.NameCanonical]
		score := 100.0 - 5.0*float64(load)
		if score < 0 {
			score = 0
		}
		if score < opts.MinScore {
			continue
		}
		recs = append(recs, Recommendation{
			Staff:  member,
			Score:  score,
			Reason: fmt.Sprintf("%d duties this month", load),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Staff.ID < recs[j].Staff.ID
	})
	if len(recs) > opts.MaxRecommendations {
		recs = recs[:opts.MaxRecommendations]
	}
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs
}

// ruleContext rebuilds the engine's day-local state from the stored
// roster: who is already used on the day (minus the vacated member) and
// who worked a night row the previous day.
func (r *Recommender) ruleContext(req *Request, resolver *names.Resolver) *rule.Context {
	nightRows := make(map[string]bool, len(req.Rows))
	for _, row := range req.Rows {
		if row.IsNight() {
			nightRows[row.ID] = true
		}
	}

	usedToday := make(map[string]bool)
	vacated := names.Canonical(req.VacatedName)
	for _, assigned := range req.Result.Assignments[req.Day] {
		for _, name := range assigned {
			if names.Canonical(name) == vacated {
				continue
			}
			if member, ok := resolver.ResolveMember(name); ok {
				usedToday[member.ID] = true
			}
		}
	}

	nightPrev := make(map[string]bool)
	for rowID, assigned := range req.Result.Assignments[req.Day-1] {
		if !nightRows[rowID] {
			continue
		}
		for _, name := range assigned {
			if member, ok := resolver.ResolveMember(name); ok {
				nightPrev[member.ID] = true
			}
		}
	}

	return &rule.Context{
		Year:               req.Result.Year,
		Month:              req.Result.Month,
		Leaves:             req.Leaves,
		LeavePolicy:        req.LeavePolicy,
		RequireEligibility: req.RequireEligibility,
		UsedToday:          usedToday,
		NightPrev:          nightPrev,
	}
}

// monthlyLoads tallies duties per canonical name across the month.
func monthlyLoads(result *model.RosterResult) map[string]int {
	loads := make(map[string]int)
	for _, byRow := range result.Assignments {
		for _, assigned := range byRow {
			for _, name := range assigned {
				loads[names.Canonical(name)]++
			}
		}
	}
	return loads
}
