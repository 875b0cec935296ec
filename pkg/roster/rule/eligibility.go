package rule

import (
	"strings"

	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

// dutyKeywordGroups maps a duty class to the label substrings that
// trigger it and the area terms that satisfy it. Labels and staff area
// sets come from the same parameter screens, so both sides are matched
// in canonical form. Turkish terms first, English synonyms kept for
// mixed exports.
var dutyKeywordGroups = [][]string{
	{"sorumlu", "supervisor"},
	{"reanimasyon", "resuscitation"},
	{"kirmizi", "red"},
	{"sari", "yellow"},
	{"yesil", "green"},
	{"cerrahi", "surgery"},
	{"triaj", "triage"},
	{"eczane", "pharmacy"},
	{"musahede", "observation"},
	{"enjeksiyon", "injection"},
}

// RowKeywords derives the duty keyword set for a row label. A label
// matching none of the known classes yields nil, which disables the
// area check for that row.
func RowKeywords(label string) []string {
	canonical := names.Canonical(label)
	var keywords []string
	for _, group := range dutyKeywordGroups {
		matched := false
		for _, term := range group {
			if strings.Contains(canonical, term) {
				matched = true
				break
			}
		}
		if matched {
			keywords = append(keywords, group...)
		}
	}
	return keywords
}

// SupervisorLabel reports whether a row label denotes the service
// supervisor duty.
func SupervisorLabel(label string) bool {
	canonical := names.Canonical(label)
	return strings.Contains(canonical, "sorumlu") || strings.Contains(canonical, "supervisor")
}

// Eligibility applies the area-keyword and shift-code checks when the
// run requires them. An empty staff area set is unrestricted.
type Eligibility struct{}

// Name identifies the rule.
func (Eligibility) Name() string { return "eligibility" }

// Allows checks duty keywords against the area set and the row shift
// code against the allowed-code set.
func (Eligibility) Allows(rc *Context, s *model.StaffMember, row *model.DutyRow, _ int) bool {
	if !rc.RequireEligibility {
		return true
	}
	if !s.AllowsShift(row.ShiftCode) {
		return false
	}
	if s.Unrestricted() {
		return true
	}
	keywords := RowKeywords(row.Label)
	if len(keywords) == 0 {
		return true
	}
	for _, area := range s.Areas {
		for _, k := range keywords {
			if strings.Contains(area, k) || strings.Contains(k, area) {
				return true
			}
		}
	}
	return false
}

// MatchesSupervisorHeuristic reports whether a staff member looks like
// a supervisor candidate: a supervisor term in their role or area set.
// Used to derive a fallback pool when the policy configures none.
func MatchesSupervisorHeuristic(s *model.StaffMember) bool {
	if SupervisorLabel(s.Role) {
		return true
	}
	for _, area := range s.Areas {
		if strings.Contains(area, "sorumlu") || strings.Contains(area, "supervisor") {
			return true
		}
	}
	return false
}
