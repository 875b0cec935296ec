package stats

import (
	"testing"

	"github.com/nobet/nobet/pkg/model"
)

func workloadRows() []*model.DutyRow {
	return []*model.DutyRow{
		{ID: "day", Label: "Müşahede", ShiftCode: "24"},
		{ID: "gece", Label: "Müşahede Gece", ShiftCode: "G"},
	}
}

func TestWorkloadEvenDistribution(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "day", []string{"a"})
	result.SetNames(2, "day", []string{"b"})
	result.SetNames(3, "day", []string{"a"})
	result.SetNames(6, "day", []string{"b"})

	m := NewWorkloadAnalyzer().Analyze(result, workloadRows())
	if !almostEqual(m.DutyGini, 0) {
		t.Errorf("even split should have zero gini, got %v", m.DutyGini)
	}
	if !almostEqual(m.BalanceScore, 100) {
		t.Errorf("balance = %v, want 100", m.BalanceScore)
	}
	if m.MaxDuties != 2 || m.MinDuties != 2 {
		t.Errorf("max/min = %d/%d, want 2/2", m.MaxDuties, m.MinDuties)
	}
	if !almostEqual(m.AvgDutiesPerName, 2) {
		t.Errorf("avg = %v, want 2", m.AvgDutiesPerName)
	}
}

func TestWorkloadUnevenDistribution(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	// a works days 1,2,3; b works day 6 only. All weekday day shifts.
	result.SetNames(1, "day", []string{"a"})
	result.SetNames(2, "day", []string{"a"})
	result.SetNames(3, "day", []string{"a"})
	result.SetNames(6, "day", []string{"b"})

	m := NewWorkloadAnalyzer().Analyze(result, workloadRows())
	// Gini of [1,3] is 0.25.
	if !almostEqual(m.DutyGini, 0.25) {
		t.Errorf("duty gini = %v, want 0.25", m.DutyGini)
	}
	if m.MaxDuties != 3 || m.MinDuties != 1 {
		t.Errorf("max/min = %d/%d, want 3/1", m.MaxDuties, m.MinDuties)
	}
	// Stats sorted by duties descending.
	if m.StaffStats[0].Name != "a" || m.StaffStats[1].Name != "b" {
		t.Errorf("stats order = %+v", m.StaffStats)
	}
	if !almostEqual(m.StaffStats[0].Deviation, 50) {
		t.Errorf("a deviation = %v, want 50", m.StaffStats[0].Deviation)
	}
	if !almostEqual(m.StaffStats[1].Deviation, -50) {
		t.Errorf("b deviation = %v, want -50", m.StaffStats[1].Deviation)
	}
	// No nights or weekends, those ginis stay 0: score = 100*(1-0.125).
	if !almostEqual(m.BalanceScore, 87.5) {
		t.Errorf("balance = %v, want 87.5", m.BalanceScore)
	}
}

func TestWorkloadNightAndWeekendTallies(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(3, "gece", []string{"a"}) // Friday night
	result.SetNames(4, "day", []string{"a"})  // Saturday
	result.SetNames(5, "gece", []string{"b"}) // Sunday night

	m := NewWorkloadAnalyzer().Analyze(result, workloadRows())
	byName := make(map[string]StaffWorkload)
	for _, s := range m.StaffStats {
		byName[s.Name] = s
	}
	a := byName["a"]
	if a.Duties != 2 || a.NightDuties != 1 || a.WeekendDuties != 1 {
		t.Errorf("a tallies = %+v", a)
	}
	b := byName["b"]
	if b.Duties != 1 || b.NightDuties != 1 || b.WeekendDuties != 1 {
		t.Errorf("b tallies = %+v", b)
	}
}

func TestWorkloadTiesSortedByName(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "day", []string{"zeynep"})
	result.SetNames(2, "day", []string{"ali"})

	m := NewWorkloadAnalyzer().Analyze(result, workloadRows())
	if m.StaffStats[0].Name != "ali" || m.StaffStats[1].Name != "zeynep" {
		t.Errorf("tie order = %+v", m.StaffStats)
	}
}

func TestWorkloadNilResult(t *testing.T) {
	m := NewWorkloadAnalyzer().Analyze(nil, nil)
	if !almostEqual(m.BalanceScore, 100) {
		t.Errorf("nil result balance = %v, want 100", m.BalanceScore)
	}
	if len(m.StaffStats) != 0 {
		t.Errorf("nil result should have no stats: %+v", m.StaffStats)
	}
}

func TestWorkloadEmptyAssignments(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	m := NewWorkloadAnalyzer().Analyze(result, workloadRows())
	if !almostEqual(m.BalanceScore, 100) {
		t.Errorf("empty roster balance = %v, want 100", m.BalanceScore)
	}
}
