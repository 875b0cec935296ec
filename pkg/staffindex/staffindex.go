// Package staffindex normalizes heterogeneous raw staff records into
// the uniform StaffMember structure the engine works with.
package staffindex

import (
	"fmt"
	"strings"

	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

// Aliased field names. Presence in any source field adds to the set.
var (
	idFields      = []string{"id", "staffId", "staff_id", "personId", "person_id", "code"}
	nameFields    = []string{"name", "fullName", "full_name", "displayName", "display_name"}
	roleFields    = []string{"role", "title", "position"}
	areaFields    = []string{"areas", "workAreas", "work_areas", "skills", "tags"}
	shiftFields   = []string{"allowedShifts", "allowed_shifts", "shiftCodes", "shift_codes", "shifts"}
	weekendFields = []string{"weekendOff", "weekend_off", "weekendsOff", "noWeekend"}
	nightFields   = []string{"nightAllowed", "night_allowed", "nights", "canWorkNights"}
)

// Build normalizes raw staff records. Records lacking both an id and a
// name are dropped; a record with only a name gets its canonical name
// as a stable pseudo-id. Pure transform, no side effects.
func Build(records []map[string]interface{}) []*model.StaffMember {
	staff := make([]*model.StaffMember, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		id := firstString(rec, idFields)
		name := firstString(rec, nameFields)
		if id == "" && name == "" {
			continue
		}

		canonical := names.Canonical(name)
		if id == "" {
			id = canonical
		}

		member := &model.StaffMember{
			ID:            id,
			Name:          name,
			NameCanonical: canonical,
			Role:          firstString(rec, roleFields),
			Areas:         collectCanonical(rec, areaFields),
			NightAllowed:  boolValue(rec, nightFields, true),
			WeekendOff:    boolValue(rec, weekendFields, false),
		}
		for _, code := range collectStrings(rec, shiftFields) {
			member.AllowedShiftCodes = append(member.AllowedShiftCodes, strings.ToUpper(code))
		}
		staff = append(staff, member)
	}
	return staff
}

// firstString returns the first non-empty string among aliased fields.
func firstString(rec map[string]interface{}, fields []string) string {
	for _, f := range fields {
		if s := asString(rec[f]); s != "" {
			return s
		}
	}
	return ""
}

// collectStrings unions the string lists found under aliased fields,
// preserving first-seen order and dropping duplicates.
func collectStrings(rec map[string]interface{}, fields []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range fields {
		for _, s := range asStringList(rec[f]) {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// collectCanonical unions aliased string lists in canonical form.
func collectCanonical(rec map[string]interface{}, fields []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range collectStrings(rec, fields) {
		c := names.Canonical(s)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// boolValue reads the first present aliased bool field, tolerating the
// string and numeric encodings older exports used.
func boolValue(rec map[string]interface{}, fields []string, def bool) bool {
	for _, f := range fields {
		v, ok := rec[f]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case float64:
			return t != 0
		case int:
			return t != 0
		case string:
			switch names.Canonical(t) {
			case "true", "yes", "evet", "1":
				return true
			case "false", "no", "hayir", "0":
				return false
			}
		}
	}
	return def
}

// asString renders scalar values as strings; ids sometimes arrive as
// JSON numbers.
func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return ""
	}
}

// asStringList accepts []string, []interface{} of scalars, or a single
// comma-separated string.
func asStringList(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return strings.Split(t, ",")
	default:
		return nil
	}
}
