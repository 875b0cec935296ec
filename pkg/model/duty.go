package model

import "strings"

// DutyRow is one line item of required coverage: an area/duty plus a
// shift code, with a per-day headcount. Rows are supplied per month and
// read-only to the engine.
type DutyRow struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	ShiftCode    string `json:"shift_code"`
	DefaultCount int    `json:"default_count"`
	// Pattern, when supplied, holds seven Monday-first weekly
	// headcounts that take precedence over DefaultCount, including
	// explicit zeros.
	Pattern    []int `json:"pattern,omitempty"`
	WeekendOff bool  `json:"weekend_off,omitempty"`
}

// nightCodes are the shift codes treated as night shifts. The night-rest
// rule keys off these.
var nightCodes = map[string]bool{
	"G":     true, // gece
	"N":     true,
	"GECE":  true,
	"NIGHT": true,
}

// IsNightCode reports whether a shift code denotes a night shift.
func IsNightCode(code string) bool {
	return nightCodes[strings.ToUpper(strings.TrimSpace(code))]
}

// IsNight reports whether the row is night-coded.
func (r *DutyRow) IsNight() bool {
	return IsNightCode(r.ShiftCode)
}

// NeedMatrix is the concrete required headcount per day and row:
// day -> rowID -> count. Values are never negative.
type NeedMatrix map[int]map[string]int

// Required returns the headcount for (day, rowID), zero when absent.
func (m NeedMatrix) Required(day int, rowID string) int {
	if byRow, ok := m[day]; ok {
		return byRow[rowID]
	}
	return 0
}

// Set stores a headcount, flooring it at zero.
func (m NeedMatrix) Set(day int, rowID string, count int) {
	if count < 0 {
		count = 0
	}
	byRow, ok := m[day]
	if !ok {
		byRow = make(map[string]int)
		m[day] = byRow
	}
	byRow[rowID] = count
}

// PinMap holds manually forced assignments for one run:
// day -> rowID -> staff ids, consumed before any automatic selection.
type PinMap map[int]map[string][]string

// For returns the pinned staff ids for (day, rowID).
func (p PinMap) For(day int, rowID string) []string {
	if byRow, ok := p[day]; ok {
		return byRow[rowID]
	}
	return nil
}

// PinSource is the raw pin collaborator shape:
// role -> "YYYY-MM" -> day -> rowID -> staff ids. Day keys arrive as
// strings because the source is JSON.
type PinSource map[string]map[string]map[string]map[string][]string

// For extracts the PinMap of one (role, month) pair. Unparseable day
// keys are dropped.
func (p PinSource) For(role, monthKey string) PinMap {
	byMonth, ok := p[role]
	if !ok {
		return nil
	}
	byDay, ok := byMonth[monthKey]
	if !ok {
		return nil
	}
	pins := make(PinMap, len(byDay))
	for dayKey, byRow := range byDay {
		day := parseDayKey(dayKey)
		if day < 1 || day > 31 {
			continue
		}
		rows := make(map[string][]string, len(byRow))
		for rowID, ids := range byRow {
			rows[rowID] = ids
		}
		pins[day] = rows
	}
	return pins
}

// parseDayKey parses a day number out of keys like "7", "07" or "d7".
func parseDayKey(key string) int {
	key = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(key), "day"))
	key = strings.TrimPrefix(key, "d")
	day := 0
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0
		}
		day = day*10 + int(r-'0')
	}
	return day
}
