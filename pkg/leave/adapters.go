package leave

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

// Build merges all raw leave sources into one index and applies the
// suppress overlay last, so suppressions win regardless of source
// order. Unparseable entries are dropped, never fatal.
func Build(sources []interface{}, suppressions []Suppression, resolver *names.Resolver, year, month int) *Index {
	ix := NewIndex()
	for _, src := range sources {
		switch s := src.(type) {
		case []interface{}:
			if looksLikeEventList(s) {
				addEventList(ix, s, resolver)
			} else {
				addGridRows(ix, s, resolver, year, month)
			}
		case map[string]interface{}:
			addNestedMap(ix, s, resolver)
		}
	}
	for _, sup := range suppressions {
		ix.Apply(sup, resolver)
	}
	return ix
}

// looksLikeEventList sniffs the first map element for a date field.
func looksLikeEventList(items []interface{}) bool {
	for _, item := range items {
		rec, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		_, hasDate := rec["date"]
		return hasDate
	}
	return false
}

// addEventList handles shape (a): a flat list of events, each carrying
// a person reference and a date (string or {year,month,day} object).
func addEventList(ix *Index, events []interface{}, resolver *names.Resolver) {
	for _, item := range events {
		rec, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		ref := personRef(rec)
		year, month, day, ok := eventDate(rec["date"])
		if ref == "" || !ok {
			continue
		}
		addRef(ix, resolver, ref, model.MonthKey(year, month), day)
	}
}

// addGridRows handles shape (b): per-person rows whose day-like keys
// hold cell values for the build month.
func addGridRows(ix *Index, rows []interface{}, resolver *names.Resolver, year, month int) {
	monthKey := model.MonthKey(year, month)
	for _, item := range rows {
		rec, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		ref := personRef(rec)
		if ref == "" {
			continue
		}
		for key, cell := range rec {
			day, ok := dayKey(key)
			if !ok || !isLeaveValue(cell) {
				continue
			}
			addRef(ix, resolver, ref, monthKey, day)
		}
	}
}

// addNestedMap handles shape (c): nested person/period maps at one of
// three nesting orders.
func addNestedMap(ix *Index, m map[string]interface{}, resolver *names.Resolver) {
	if topKeysAreMonthKeys(m) {
		// ym-first: {"YYYY-MM": {pid: {day: record}}}
		for monthKey, inner := range m {
			byPerson, ok := inner.(map[string]interface{})
			if !ok {
				continue
			}
			for ref, days := range byPerson {
				addDayRecords(ix, resolver, ref, monthKey, days)
			}
		}
		return
	}

	for ref, inner := range m {
		byPeriod, ok := inner.(map[string]interface{})
		if !ok {
			continue
		}
		for period, value := range byPeriod {
			if monthKeyRe.MatchString(period) {
				// pid-first with "YYYY-MM" buckets.
				addDayRecords(ix, resolver, ref, period, value)
				continue
			}
			if year, err := strconv.Atoi(period); err == nil && year >= 1970 && year <= 2200 {
				// pid-first with year buckets: {pid: {"YYYY": {month: {day: record}}}}
				byMonth, ok := value.(map[string]interface{})
				if !ok {
					continue
				}
				for monthStr, days := range byMonth {
					month, err := strconv.Atoi(monthStr)
					if err != nil || month < 1 || month > 12 {
						continue
					}
					addDayRecords(ix, resolver, ref, model.MonthKey(year, month), days)
				}
			}
		}
	}
}

// addDayRecords walks one {day: record} map.
func addDayRecords(ix *Index, resolver *names.Resolver, ref, monthKey string, value interface{}) {
	byDay, ok := value.(map[string]interface{})
	if !ok {
		return
	}
	for key, cell := range byDay {
		day, ok := dayKey(key)
		if !ok || !isLeaveValue(cell) {
			continue
		}
		addRef(ix, resolver, ref, monthKey, day)
	}
}

// addRef resolves a person reference and records the day. An
// unresolvable name stays as a name-only entry.
func addRef(ix *Index, resolver *names.Resolver, ref, monthKey string, day int) {
	if id, ok := resolver.Resolve(ref); ok {
		ix.AddByID(id, monthKey, day)
		return
	}
	ix.AddByName(names.Canonical(ref), monthKey, day)
}

// negativeSentinels are cell values that mean "not on leave" even
// though the cell is non-empty.
var negativeSentinels = map[string]bool{
	"":      true,
	"hayir": true, // hayır
	"no":    true,
	"0":     true,
}

// isLeaveValue reports whether a cell counts as an actual leave mark.
func isLeaveValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return !negativeSentinels[names.Canonical(t)]
	default:
		return true
	}
}

var monthKeyRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

func topKeysAreMonthKeys(m map[string]interface{}) bool {
	for key := range m {
		return monthKeyRe.MatchString(key)
	}
	return false
}

// personRef extracts a person reference from a record's aliased fields.
func personRef(rec map[string]interface{}) string {
	for _, field := range []string{"personId", "person_id", "staffId", "staff_id", "id", "personName", "person_name", "name", "code"} {
		if s, ok := rec[field].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// eventDate parses either "YYYY-MM-DD" or {"year","month","day"}.
func eventDate(v interface{}) (year, month, day int, ok bool) {
	switch t := v.(type) {
	case string:
		parts := strings.Split(strings.TrimSpace(t), "-")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		y, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		d, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0, false
		}
		return y, m, d, validDate(y, m, d)
	case map[string]interface{}:
		y := intField(t, "year")
		m := intField(t, "month")
		d := intField(t, "day")
		return y, m, d, validDate(y, m, d)
	default:
		return 0, 0, 0, false
	}
}

func validDate(year, month, day int) bool {
	return model.ValidMonth(year, month) && day >= 1 && day <= 31
}

func intField(m map[string]interface{}, key string) int {
	switch t := m[key].(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, _ := strconv.Atoi(t)
		return n
	default:
		return 0
	}
}

// dayKey parses day-like map keys: "7", "07", "d7", "day7".
func dayKey(key string) (int, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.TrimPrefix(key, "day")
	key = strings.TrimPrefix(key, "d")
	day, err := strconv.Atoi(key)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}
