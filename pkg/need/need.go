// Package need expands duty rows into a concrete required headcount
// per day.
package need

import "github.com/nobet/nobet/pkg/model"

// BuildMatrix resolves, for every row and day of the month: an explicit
// override if present, else the weekday-indexed pattern value, else the
// row default. Weekend-off rows are forced to zero on Saturday and
// Sunday regardless of the above. Pure function, values floored at
// zero.
func BuildMatrix(rows []*model.DutyRow, overrides map[string]map[int]int, year, month int) model.NeedMatrix {
	days := model.DaysInMonth(year, month)
	matrix := make(model.NeedMatrix, days)

	for day := 1; day <= days; day++ {
		weekday := model.WeekdayIndex(year, month, day)
		weekend := model.IsWeekend(year, month, day)

		for _, row := range rows {
			count := row.DefaultCount
			if weekday < len(row.Pattern) {
				count = row.Pattern[weekday]
			}
			if byDay, ok := overrides[row.ID]; ok {
				if override, ok := byDay[day]; ok {
					count = override
				}
			}
			if row.WeekendOff && weekend {
				count = 0
			}
			matrix.Set(day, row.ID, count)
		}
	}
	return matrix
}
