// Package validator verifies a produced roster against the month's
// inputs and reports rule violations.
package validator

import (
	"fmt"
	"sort"

	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

// ViolationType classifies an audit finding.
type ViolationType string

const (
	ViolationDoubleBooking ViolationType = "double_booking"
	ViolationLeave         ViolationType = "leave"
	ViolationNightRest     ViolationType = "night_rest"
	ViolationWeekendOff    ViolationType = "weekend_off"
	ViolationUnknownName   ViolationType = "unknown_name"
)

// Violation is one audit finding.
type Violation struct {
	Type     ViolationType `json:"type"`
	Severity string        `json:"severity"` // error/warning
	Day      int           `json:"day"`
	RowID    string        `json:"row_id,omitempty"`
	Name     string        `json:"name"`
	Message  string        `json:"message"`
}

// AuditInput bundles the roster plus the inputs it was generated from.
type AuditInput struct {
	Result      *model.RosterResult
	Staff       []*model.StaffMember
	Rows        []*model.DutyRow
	Leaves      *leave.Index
	LeavePolicy model.LeavePolicy
}

// Auditor checks a RosterResult for double booking, leave violations,
// night-rest violations, weekend-off violations and unknown names.
type Auditor struct{}

// NewAuditor creates an auditor.
func NewAuditor() *Auditor {
	return &Auditor{}
}

// Audit runs all checks and returns the findings, oldest day first.
func (a *Auditor) Audit(in AuditInput) []Violation {
	var violations []Violation
	if in.Result == nil {
		return violations
	}
	resolver := names.NewResolver(in.Staff)

	nightRows := make(map[string]bool, len(in.Rows))
	for _, row := range in.Rows {
		if row.IsNight() {
			nightRows[row.ID] = true
		}
	}

	monthKey := model.MonthKey(in.Result.Year, in.Result.Month)
	days := model.DaysInMonth(in.Result.Year, in.Result.Month)
	prevNight := make(map[string]bool)

	for day := 1; day <= days; day++ {
		seen := make(map[string]string) // staff id -> first rowID
		todayNight := make(map[string]bool)
		weekend := model.IsWeekend(in.Result.Year, in.Result.Month, day)

		byRow := in.Result.Assignments[day]
		rowIDs := make([]string, 0, len(byRow))
		for rowID := range byRow {
			rowIDs = append(rowIDs, rowID)
		}
		sort.Strings(rowIDs)

		for _, rowID := range rowIDs {
			for _, name := range byRow[rowID] {
				member, ok := resolver.ResolveMember(name)
				if !ok {
					violations = append(violations, Violation{
						Type:     ViolationUnknownName,
						Severity: "warning",
						Day:      day,
						RowID:    rowID,
						Name:     name,
						Message:  fmt.Sprintf("%q does not match any staff member", name),
					})
					continue
				}

				if firstRow, dup := seen[member.ID]; dup {
					violations = append(violations, Violation{
						Type:     ViolationDoubleBooking,
						Severity: "error",
						Day:      day,
						RowID:    rowID,
						Name:     member.Name,
						Message:  fmt.Sprintf("%s assigned to both %s and %s on day %d", member.Name, firstRow, rowID, day),
					})
				} else {
					seen[member.ID] = rowID
				}

				if in.LeavePolicy.Excludes() && in.Leaves != nil && in.Leaves.OnLeave(member, monthKey, day) {
					violations = append(violations, Violation{
						Type:     ViolationLeave,
						Severity: "error",
						Day:      day,
						RowID:    rowID,
						Name:     member.Name,
						Message:  fmt.Sprintf("%s is on leave on day %d", member.Name, day),
					})
				}

				if member.WeekendOff && weekend {
					violations = append(violations, Violation{
						Type:     ViolationWeekendOff,
						Severity: "error",
						Day:      day,
						RowID:    rowID,
						Name:     member.Name,
						Message:  fmt.Sprintf("%s is weekend-off but assigned on day %d", member.Name, day),
					})
				}

				if nightRows[rowID] {
					if prevNight[member.ID] {
						violations = append(violations, Violation{
							Type:     ViolationNightRest,
							Severity: "error",
							Day:      day,
							RowID:    rowID,
							Name:     member.Name,
							Message:  fmt.Sprintf("%s worked a night shift on day %d and again on day %d", member.Name, day-1, day),
						})
					}
					todayNight[member.ID] = true
				}
			}
		}
		prevNight = todayNight
	}
	return violations
}
