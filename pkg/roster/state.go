package roster

import (
	"math/rand"

	"github.com/nobet/nobet/pkg/model"
)

// Seed derives the deterministic RNG seed for a month. The same month
// always produces the same assignment given the same inputs;
// reproducibility is a design requirement, not an accident.
func Seed(year, month int) int64 {
	return int64(year*100 + month)
}

// runState is the mutable state of one Generate call, threaded through
// the day loop. Nothing here outlives the run.
type runState struct {
	rng *rand.Rand

	// usedToday is reset at the start of each day.
	usedToday map[string]bool

	// supervisorUse accumulates across the whole month to spread the
	// supervisor fallback load.
	supervisorUse map[string]int

	// nightPrev/nightToday track who worked a night-coded row, for the
	// mandatory inter-shift rest.
	nightPrev  map[string]bool
	nightToday map[string]bool
}

func newRunState(year, month int) *runState {
	return &runState{
		rng:           rand.New(rand.NewSource(Seed(year, month))),
		usedToday:     make(map[string]bool),
		supervisorUse: make(map[string]int),
		nightPrev:     make(map[string]bool),
		nightToday:    make(map[string]bool),
	}
}

// startDay resets the per-day accumulators.
func (st *runState) startDay() {
	st.usedToday = make(map[string]bool)
	st.nightToday = make(map[string]bool)
}

// endDay rolls today's night workers into yesterday's slot.
func (st *runState) endDay() {
	st.nightPrev = st.nightToday
}

// markAssigned records an assignment in the day-local accumulators.
func (st *runState) markAssigned(s *model.StaffMember, row *model.DutyRow) {
	st.usedToday[s.ID] = true
	if row.IsNight() {
		st.nightToday[s.ID] = true
	}
}
