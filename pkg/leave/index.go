// Package leave merges heterogeneous leave data sources into a single
// "is person P on leave on day D" lookup.
package leave

import (
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

// Index holds two parallel lookups. Some sources only carry a free-text
// name, so entries that cannot be resolved to a staff id are kept under
// the canonical name. A day present in either lookup is authoritative.
type Index struct {
	byStaffID map[string]map[string]map[int]bool // id -> "YYYY-MM" -> day set
	byName    map[string]map[string]map[int]bool // canonical name -> "YYYY-MM" -> day set
}

// NewIndex allocates an empty index.
func NewIndex() *Index {
	return &Index{
		byStaffID: make(map[string]map[string]map[int]bool),
		byName:    make(map[string]map[string]map[int]bool),
	}
}

// AddByID records a leave day for a staff id.
func (ix *Index) AddByID(id, monthKey string, day int) {
	addDay(ix.byStaffID, id, monthKey, day)
}

// AddByName records a leave day under a canonical name.
func (ix *Index) AddByName(canonical, monthKey string, day int) {
	if canonical == "" {
		return
	}
	addDay(ix.byName, canonical, monthKey, day)
}

// OnLeave reports whether the member is on leave on the given day.
func (ix *Index) OnLeave(s *model.StaffMember, monthKey string, day int) bool {
	if hasDay(ix.byStaffID, s.ID, monthKey, day) {
		return true
	}
	return hasDay(ix.byName, s.NameCanonical, monthKey, day)
}

// IDOnLeave checks the id lookup only.
func (ix *Index) IDOnLeave(id, monthKey string, day int) bool {
	return hasDay(ix.byStaffID, id, monthKey, day)
}

// Suppression deletes one (person, day) entry from the index. The
// overlay corrects stale or duplicate records without mutating the
// original source; it always wins regardless of source order.
type Suppression struct {
	Person string `json:"person"` // staff id or free-text name
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
}

// Apply removes the suppressed entry from both lookups.
func (ix *Index) Apply(sup Suppression, resolver *names.Resolver) {
	monthKey := model.MonthKey(sup.Year, sup.Month)
	if id, ok := resolver.Resolve(sup.Person); ok {
		removeDay(ix.byStaffID, id, monthKey, sup.Day)
		if member, ok := resolver.Lookup(id); ok {
			removeDay(ix.byName, member.NameCanonical, monthKey, sup.Day)
		}
	}
	removeDay(ix.byStaffID, sup.Person, monthKey, sup.Day)
	removeDay(ix.byName, names.Canonical(sup.Person), monthKey, sup.Day)
}

func addDay(m map[string]map[string]map[int]bool, key, monthKey string, day int) {
	if key == "" || day < 1 || day > 31 {
		return
	}
	byMonth, ok := m[key]
	if !ok {
		byMonth = make(map[string]map[int]bool)
		m[key] = byMonth
	}
	days, ok := byMonth[monthKey]
	if !ok {
		days = make(map[int]bool)
		byMonth[monthKey] = days
	}
	days[day] = true
}

func hasDay(m map[string]map[string]map[int]bool, key, monthKey string, day int) bool {
	if key == "" {
		return false
	}
	if byMonth, ok := m[key]; ok {
		return byMonth[monthKey][day]
	}
	return false
}

func removeDay(m map[string]map[string]map[int]bool, key, monthKey string, day int) {
	if byMonth, ok := m[key]; ok {
		delete(byMonth[monthKey], day)
	}
}
