package stats

import (
	"math"
	"sort"

	"github.com/nobet/nobet/pkg/model"
)

// WorkloadMetrics describes how evenly duties are spread across staff.
type WorkloadMetrics struct {
	DutyGini         float64 `json:"duty_gini"` // 0=even, 1=uneven
	NightGini        float64 `json:"night_gini"`
	WeekendGini      float64 `json:"weekend_gini"`
	AvgDutiesPerName float64 `json:"avg_duties_per_name"`
	MaxDuties        int     `json:"max_duties"`
	MinDuties        int     `json:"min_duties"`

	StaffStats   []StaffWorkload `json:"staff_stats"`
	BalanceScore float64         `json:"balance_score"` // 0-100
}

// StaffWorkload is the per-person duty tally for one month.
type StaffWorkload struct {
	Name         string  `json:"name"`
	Duties       int     `json:"duties"`
	NightDuties  int     `json:"night_duties"`
	WeekendDuties int    `json:"weekend_duties"`
	Deviation    float64 `json:"deviation"` // percent from the mean
}

// WorkloadAnalyzer computes workload metrics over a roster.
type WorkloadAnalyzer struct{}

// NewWorkloadAnalyzer creates an analyzer.
func NewWorkloadAnalyzer() *WorkloadAnalyzer {
	return &WorkloadAnalyzer{}
}

// Analyze tallies duties per assigned name. A nil result yields empty
// metrics with a perfect balance score.
func (w *WorkloadAnalyzer) Analyze(result *model.RosterResult, rows []*model.DutyRow) *WorkloadMetrics {
	metrics := &WorkloadMetrics{BalanceScore: 100}
	if result == nil {
		return metrics
	}

	nightRows := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.IsNight() {
			nightRows[row.ID] = true
		}
	}

	tally := make(map[string]*StaffWorkload)
	for day, byRow := range result.Assignments {
		weekend := model.IsWeekend(result.Year, result.Month, day)
		for rowID, assigned := range byRow {
			for _, name := range assigned {
				stat, ok := tally[name]
				if !ok {
					stat = &StaffWorkload{Name: name}
					tally[name] = stat
				}
				stat.Duties++
				if nightRows[rowID] {
					stat.NightDuties++
				}
				if weekend {
					stat.WeekendDuties++
				}
			}
		}
	}
	if len(tally) == 0 {
		return metrics
	}

	stats := make([]StaffWorkload, 0, len(tally))
	duties := make([]float64, 0, len(tally))
	nights := make([]float64, 0, len(tally))
	weekends := make([]float64, 0, len(tally))
	total := 0
	metrics.MinDuties = math.MaxInt

	for _, stat := range tally {
		stats = append(stats, *stat)
		duties = append(duties, float64(stat.Duties))
		nights = append(nights, float64(stat.NightDuties))
		weekends = append(weekends, float64(stat.WeekendDuties))
		total += stat.Duties
		if stat.Duties > metrics.MaxDuties {
			metrics.MaxDuties = stat.Duties
		}
		if stat.Duties < metrics.MinDuties {
			metrics.MinDuties = stat.Duties
		}
	}

	metrics.AvgDutiesPerName = float64(total) / float64(len(stats))
	for i := range stats {
		if metrics.AvgDutiesPerName > 0 {
			stats[i].Deviation = (float64(stats[i].Duties) - metrics.AvgDutiesPerName) / metrics.AvgDutiesPerName * 100
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Duties != stats[j].Duties {
			return stats[i].Duties > stats[j].Duties
		}
		return stats[i].Name < stats[j].Name
	})
	metrics.StaffStats = stats

	metrics.DutyGini = gini(duties)
	metrics.NightGini = gini(nights)
	metrics.WeekendGini = gini(weekends)

	// Weighted Gini blend, inverted onto a 0-100 scale.
	score := 100 * (1 - (0.5*metrics.DutyGini + 0.25*metrics.NightGini + 0.25*metrics.WeekendGini))
	metrics.BalanceScore = math.Max(0, math.Min(100, score))
	return metrics
}

// gini computes the Gini coefficient of a value distribution.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g /= float64(n) * sum
	return math.Max(0, math.Min(1, g))
}
