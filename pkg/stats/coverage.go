// Package stats provides roster analysis: coverage of the required
// headcount and workload distribution across staff.
package stats

import (
	"sort"

	"github.com/nobet/nobet/pkg/model"
)

// CoverageMetrics describes how much of the required headcount a
// roster actually fills.
type CoverageMetrics struct {
	TotalSlots      int     `json:"total_slots"`
	FilledSlots     int     `json:"filled_slots"`
	OverallCoverage float64 `json:"overall_coverage"` // percent

	DailyCoverage map[int]DayCoverage  `json:"daily_coverage"`
	RowCoverage   map[string]float64   `json:"row_coverage"` // rowID -> percent
	IssueCount    int                  `json:"issue_count"`
	WorstDays     []DayCoverage        `json:"worst_days,omitempty"`
}

// DayCoverage is the fill situation of one day.
type DayCoverage struct {
	Day          int     `json:"day"`
	TotalSlots   int     `json:"total_slots"`
	Filled       int     `json:"filled"`
	CoverageRate float64 `json:"coverage_rate"`
}

// CoverageAnalyzer computes coverage metrics from a roster and the
// need matrix it was generated against.
type CoverageAnalyzer struct {
	worstDayLimit int
}

// NewCoverageAnalyzer creates an analyzer.
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{worstDayLimit: 5}
}

// Analyze computes the metrics. A nil result yields empty metrics.
func (c *CoverageAnalyzer) Analyze(result *model.RosterResult, needs model.NeedMatrix) *CoverageMetrics {
	metrics := &CoverageMetrics{
		DailyCoverage: make(map[int]DayCoverage),
		RowCoverage:   make(map[string]float64),
	}
	if result == nil {
		return metrics
	}
	metrics.IssueCount = len(result.Issues)

	rowRequired := make(map[string]int)
	rowFilled := make(map[string]int)

	for day, byRow := range needs {
		dayCov := DayCoverage{Day: day}
		for rowID, required := range byRow {
			filled := len(result.NamesFor(day, rowID))
			if filled > required {
				filled = required
			}
			dayCov.TotalSlots += required
			dayCov.Filled += filled
			rowRequired[rowID] += required
			rowFilled[rowID] += filled
		}
		if dayCov.TotalSlots > 0 {
			dayCov.CoverageRate = float64(dayCov.Filled) / float64(dayCov.TotalSlots) * 100
		} else {
			dayCov.CoverageRate = 100
		}
		metrics.DailyCoverage[day] = dayCov
		metrics.TotalSlots += dayCov.TotalSlots
		metrics.FilledSlots += dayCov.Filled
	}

	for rowID, required := range rowRequired {
		if required > 0 {
			metrics.RowCoverage[rowID] = float64(rowFilled[rowID]) / float64(required) * 100
		} else {
			metrics.RowCoverage[rowID] = 100
		}
	}

	if metrics.TotalSlots > 0 {
		metrics.OverallCoverage = float64(metrics.FilledSlots) / float64(metrics.TotalSlots) * 100
	} else {
		metrics.OverallCoverage = 100
	}

	metrics.WorstDays = c.worstDays(metrics.DailyCoverage)
	return metrics
}

// worstDays lists the lowest-coverage days with unfilled slots.
func (c *CoverageAnalyzer) worstDays(daily map[int]DayCoverage) []DayCoverage {
	var worst []DayCoverage
	for _, cov := range daily {
		if cov.Filled < cov.TotalSlots {
			worst = append(worst, cov)
		}
	}
	sort.Slice(worst, func(i, j int) bool {
		if worst[i].CoverageRate != worst[j].CoverageRate {
			return worst[i].CoverageRate < worst[j].CoverageRate
		}
		return worst[i].Day < worst[j].Day
	})
	if len(worst) > c.worstDayLimit {
		worst = worst[:c.worstDayLimit]
	}
	return worst
}
