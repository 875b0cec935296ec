package need

import (
	"testing"

	"github.com/nobet/nobet/pkg/model"
)

// May 2024 starts on a Wednesday; 4-5, 11-12, 18-19, 25-26 are weekends.

func TestBuildMatrixDefault(t *testing.T) {
	rows := []*model.DutyRow{{ID: "r1", DefaultCount: 2}}

	m := BuildMatrix(rows, nil, 2024, 5)

	if got := m.Required(1, "r1"); got != 2 {
		t.Errorf("day 1 = %d, want 2", got)
	}
	if got := m.Required(31, "r1"); got != 2 {
		t.Errorf("day 31 = %d, want 2", got)
	}
}

func TestBuildMatrixPattern(t *testing.T) {
	// Monday-first pattern: 3 on Mondays, 0 on Tuesdays (explicit zero
	// must win over the default), 1 elsewhere.
	rows := []*model.DutyRow{{
		ID:           "r1",
		DefaultCount: 9,
		Pattern:      []int{3, 0, 1, 1, 1, 1, 1},
	}}

	m := BuildMatrix(rows, nil, 2024, 5)

	// 2024-05-06 is a Monday, 2024-05-07 a Tuesday.
	if got := m.Required(6, "r1"); got != 3 {
		t.Errorf("Monday = %d, want 3", got)
	}
	if got := m.Required(7, "r1"); got != 0 {
		t.Errorf("explicit zero Tuesday = %d, want 0", got)
	}
	if got := m.Required(8, "r1"); got != 1 {
		t.Errorf("Wednesday = %d, want 1", got)
	}
}

func TestBuildMatrixShortPatternFallsBack(t *testing.T) {
	// Pattern only covers Monday; other weekdays use the default.
	rows := []*model.DutyRow{{
		ID:           "r1",
		DefaultCount: 2,
		Pattern:      []int{5},
	}}

	m := BuildMatrix(rows, nil, 2024, 5)

	if got := m.Required(6, "r1"); got != 5 {
		t.Errorf("Monday = %d, want 5", got)
	}
	if got := m.Required(7, "r1"); got != 2 {
		t.Errorf("uncovered weekday = %d, want default 2", got)
	}
}

func TestBuildMatrixOverrideWins(t *testing.T) {
	rows := []*model.DutyRow{{
		ID:           "r1",
		DefaultCount: 2,
		Pattern:      []int{3, 3, 3, 3, 3, 3, 3},
	}}
	overrides := map[string]map[int]int{
		"r1": {15: 7, 16: 0},
	}

	m := BuildMatrix(rows, overrides, 2024, 5)

	if got := m.Required(15, "r1"); got != 7 {
		t.Errorf("override = %d, want 7", got)
	}
	if got := m.Required(16, "r1"); got != 0 {
		t.Errorf("zero override = %d, want 0", got)
	}
	if got := m.Required(17, "r1"); got != 3 {
		t.Errorf("non-override day = %d, want pattern 3", got)
	}
}

func TestBuildMatrixWeekendOff(t *testing.T) {
	rows := []*model.DutyRow{{ID: "r1", DefaultCount: 2, WeekendOff: true}}
	// Even an explicit weekend override is forced to zero.
	overrides := map[string]map[int]int{"r1": {4: 5}}

	m := BuildMatrix(rows, overrides, 2024, 5)

	if got := m.Required(4, "r1"); got != 0 {
		t.Errorf("Saturday = %d, want 0", got)
	}
	if got := m.Required(5, "r1"); got != 0 {
		t.Errorf("Sunday = %d, want 0", got)
	}
	if got := m.Required(6, "r1"); got != 2 {
		t.Errorf("Monday = %d, want 2", got)
	}
}

func TestBuildMatrixNegativeFloored(t *testing.T) {
	rows := []*model.DutyRow{{ID: "r1", DefaultCount: 2}}
	overrides := map[string]map[int]int{"r1": {3: -4}}

	m := BuildMatrix(rows, overrides, 2024, 5)
	if got := m.Required(3, "r1"); got != 0 {
		t.Errorf("negative override = %d, want 0", got)
	}
}
