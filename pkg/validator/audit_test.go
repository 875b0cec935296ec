package validator

import (
	"testing"

	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/model"
)

func auditStaff() []*model.StaffMember {
	return []*model.StaffMember{
		{ID: "s1", Name: "Ayşe Yılmaz", NameCanonical: "ayse yilmaz", NightAllowed: true},
		{ID: "s2", Name: "Mehmet Demir", NameCanonical: "mehmet demir", WeekendOff: true, NightAllowed: true},
	}
}

func auditRows() []*model.DutyRow {
	return []*model.DutyRow{
		{ID: "day", Label: "Müşahede", ShiftCode: "24"},
		{ID: "gece", Label: "Müşahede Gece", ShiftCode: "G"},
	}
}

func countType(violations []Violation, vt ViolationType) int {
	n := 0
	for _, v := range violations {
		if v.Type == vt {
			n++
		}
	}
	return n
}

func TestAuditCleanRoster(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "day", []string{"Ayşe Yılmaz"})
	result.SetNames(2, "day", []string{"Mehmet Demir"})

	violations := NewAuditor().Audit(AuditInput{
		Result:      result,
		Staff:       auditStaff(),
		Rows:        auditRows(),
		Leaves:      leave.NewIndex(),
		LeavePolicy: model.LeaveHard,
	})
	if len(violations) != 0 {
		t.Errorf("clean roster produced violations: %+v", violations)
	}
}

func TestAuditDoubleBooking(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "day", []string{"Ayşe Yılmaz"})
	result.SetNames(1, "gece", []string{"Ayşe Yılmaz"})

	violations := NewAuditor().Audit(AuditInput{
		Result: result,
		Staff:  auditStaff(),
		Rows:   auditRows(),
	})
	if countType(violations, ViolationDoubleBooking) != 1 {
		t.Errorf("expected one double-booking violation: %+v", violations)
	}
}

func TestAuditLeaveViolation(t *testing.T) {
	ix := leave.NewIndex()
	ix.AddByID("s1", "2024-05", 7)

	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(7, "day", []string{"Ayşe Yılmaz"})

	violations := NewAuditor().Audit(AuditInput{
		Result:      result,
		Staff:       auditStaff(),
		Rows:        auditRows(),
		Leaves:      ix,
		LeavePolicy: model.LeaveHard,
	})
	if countType(violations, ViolationLeave) != 1 {
		t.Errorf("expected one leave violation: %+v", violations)
	}

	// Ignore policy silences it.
	violations = NewAuditor().Audit(AuditInput{
		Result:      result,
		Staff:       auditStaff(),
		Rows:        auditRows(),
		Leaves:      ix,
		LeavePolicy: model.LeaveIgnore,
	})
	if countType(violations, ViolationLeave) != 0 {
		t.Errorf("ignore policy should not flag leave: %+v", violations)
	}
}

func TestAuditNightRest(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(3, "gece", []string{"Ayşe Yılmaz"})
	result.SetNames(4, "gece", []string{"Ayşe Yılmaz"})

	violations := NewAuditor().Audit(AuditInput{
		Result: result,
		Staff:  auditStaff(),
		Rows:   auditRows(),
	})
	if countType(violations, ViolationNightRest) != 1 {
		t.Errorf("expected one night-rest violation: %+v", violations)
	}
}

func TestAuditNightThenDayIsFine(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(3, "gece", []string{"Ayşe Yılmaz"})
	result.SetNames(4, "day", []string{"Ayşe Yılmaz"})

	violations := NewAuditor().Audit(AuditInput{
		Result: result,
		Staff:  auditStaff(),
		Rows:   auditRows(),
	})
	if countType(violations, ViolationNightRest) != 0 {
		t.Errorf("day row after a night is legal: %+v", violations)
	}
}

func TestAuditWeekendOff(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(4, "day", []string{"Mehmet Demir"}) // Saturday

	violations := NewAuditor().Audit(AuditInput{
		Result: result,
		Staff:  auditStaff(),
		Rows:   auditRows(),
	})
	if countType(violations, ViolationWeekendOff) != 1 {
		t.Errorf("expected one weekend-off violation: %+v", violations)
	}
}

func TestAuditUnknownName(t *testing.T) {
	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "day", []string{"Kimse Bilmez"})

	violations := NewAuditor().Audit(AuditInput{
		Result: result,
		Staff:  auditStaff(),
		Rows:   auditRows(),
	})
	if countType(violations, ViolationUnknownName) != 1 {
		t.Errorf("expected one unknown-name warning: %+v", violations)
	}
	if violations[0].Severity != "warning" {
		t.Errorf("unknown name should be a warning, got %q", violations[0].Severity)
	}
}

func TestAuditNilResult(t *testing.T) {
	if got := NewAuditor().Audit(AuditInput{}); len(got) != 0 {
		t.Errorf("nil result should audit clean: %+v", got)
	}
}
