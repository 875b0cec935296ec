// Package model defines the core data model of the roster engine.
package model

import (
	"fmt"
	"time"
)

// LeavePolicy controls how leave records affect candidate filtering.
type LeavePolicy string

const (
	LeaveHard   LeavePolicy = "hard"   // on-leave staff are excluded
	LeaveSoft   LeavePolicy = "soft"   // currently identical to hard
	LeaveIgnore LeavePolicy = "ignore" // leave filtering disabled (what-if previews)
)

// Excludes reports whether the policy removes on-leave staff from pools.
// Soft and hard both enforce full exclusion today; soft is kept as a
// separate value so partial-credit handling can be added behind it.
func (p LeavePolicy) Excludes() bool {
	return p != LeaveIgnore
}

// JSONMap holds loosely-typed JSON payloads.
type JSONMap map[string]interface{}

// MonthKey formats a (year, month) pair as "YYYY-MM".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ValidMonth reports whether the (year, month) pair is inside the
// range the engine accepts.
func ValidMonth(year, month int) bool {
	return year >= 1970 && year <= 2200 && month >= 1 && month <= 12
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Weekday returns the weekday of a day in the given month.
func Weekday(year, month, day int) time.Weekday {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func IsWeekend(year, month, day int) bool {
	wd := Weekday(year, month, day)
	return wd == time.Saturday || wd == time.Sunday
}

// WeekdayIndex returns the Monday-based weekday index (Mon=0 .. Sun=6)
// used by DutyRow weekly patterns.
func WeekdayIndex(year, month, day int) int {
	return (int(Weekday(year, month, day)) + 6) % 7
}
