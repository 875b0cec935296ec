package model

import "strings"

// StaffMember is one normalized staff record. It is rebuilt fresh from
// the raw staff source on every engine run and never mutated afterward.
type StaffMember struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameCanonical string `json:"name_canonical"` // diacritic-stripped, case-folded, whitespace-collapsed
	Role          string `json:"role,omitempty"`

	// Eligibility. Areas are stored in canonical form, shift codes
	// upper-cased. An empty set means "no restriction".
	Areas             []string `json:"areas,omitempty"`
	AllowedShiftCodes []string `json:"allowed_shift_codes,omitempty"`
	WeekendOff        bool     `json:"weekend_off,omitempty"`
	NightAllowed      bool     `json:"night_allowed"`
}

// Unrestricted reports whether the member carries no area restriction.
func (s *StaffMember) Unrestricted() bool {
	return len(s.Areas) == 0
}

// HasArea checks membership in the canonical area set.
func (s *StaffMember) HasArea(area string) bool {
	for _, a := range s.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// AllowsShift reports whether the member may work the given shift code.
// An empty allowed set permits every code.
func (s *StaffMember) AllowsShift(code string) bool {
	if len(s.AllowedShiftCodes) == 0 || code == "" {
		return true
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range s.AllowedShiftCodes {
		if c == code {
			return true
		}
	}
	return false
}
