package rule

import (
	"testing"

	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/model"
)

func baseContext() *Context {
	return &Context{
		Year:        2024,
		Month:       5,
		LeavePolicy: model.LeaveHard,
		UsedToday:   make(map[string]bool),
		NightPrev:   make(map[string]bool),
	}
}

func TestDoubleBooking(t *testing.T) {
	rc := baseContext()
	s := &model.StaffMember{ID: "s1", NightAllowed: true}
	row := &model.DutyRow{ID: "r1"}

	if !(DoubleBooking{}).Allows(rc, s, row, 1) {
		t.Error("fresh member should pass")
	}
	rc.UsedToday["s1"] = true
	if (DoubleBooking{}).Allows(rc, s, row, 1) {
		t.Error("already-used member should be rejected")
	}
}

func TestOnLeave(t *testing.T) {
	rc := baseContext()
	ix := leave.NewIndex()
	ix.AddByID("s1", "2024-05", 10)
	rc.Leaves = ix

	s := &model.StaffMember{ID: "s1", NameCanonical: "ayse", NightAllowed: true}
	row := &model.DutyRow{ID: "r1"}

	if (OnLeave{}).Allows(rc, s, row, 10) {
		t.Error("on-leave member should be rejected")
	}
	if !(OnLeave{}).Allows(rc, s, row, 11) {
		t.Error("off-leave day should pass")
	}

	rc.LeavePolicy = model.LeaveIgnore
	if !(OnLeave{}).Allows(rc, s, row, 10) {
		t.Error("ignore policy should disable leave filtering")
	}
}

func TestWeekendOff(t *testing.T) {
	rc := baseContext()
	s := &model.StaffMember{ID: "s1", WeekendOff: true, NightAllowed: true}
	row := &model.DutyRow{ID: "r1"}

	// 2024-05-04 is a Saturday, 2024-05-06 a Monday.
	if (WeekendOff{}).Allows(rc, s, row, 4) {
		t.Error("weekend-off member should be rejected on Saturday")
	}
	if !(WeekendOff{}).Allows(rc, s, row, 6) {
		t.Error("weekday should pass")
	}

	unrestricted := &model.StaffMember{ID: "s2", NightAllowed: true}
	if !(WeekendOff{}).Allows(rc, unrestricted, row, 4) {
		t.Error("member without the flag should pass on weekends")
	}
}

func TestNightAllowed(t *testing.T) {
	rc := baseContext()
	noNights := &model.StaffMember{ID: "s1", NightAllowed: false}
	night := &model.DutyRow{ID: "r1", ShiftCode: "G"}
	dayRow := &model.DutyRow{ID: "r2", ShiftCode: "08"}

	if (NightAllowed{}).Allows(rc, noNights, night, 1) {
		t.Error("night-barred member should be rejected on night rows")
	}
	if !(NightAllowed{}).Allows(rc, noNights, dayRow, 1) {
		t.Error("day rows should pass")
	}
}

func TestNightRest(t *testing.T) {
	rc := baseContext()
	rc.NightPrev["s1"] = true
	s := &model.StaffMember{ID: "s1", NightAllowed: true}
	night := &model.DutyRow{ID: "r1", ShiftCode: "GECE"}
	dayRow := &model.DutyRow{ID: "r2", ShiftCode: "08"}

	if (NightRest{}).Allows(rc, s, night, 2) {
		t.Error("back-to-back night should be rejected")
	}
	if !(NightRest{}).Allows(rc, s, dayRow, 2) {
		t.Error("day row after a night should pass")
	}
}

func TestEligibilityDisabled(t *testing.T) {
	rc := baseContext() // RequireEligibility false
	s := &model.StaffMember{ID: "s1", Areas: []string{"triaj"}, NightAllowed: true}
	row := &model.DutyRow{ID: "r1", Label: "Kırmızı Alan"}

	if !(Eligibility{}).Allows(rc, s, row, 1) {
		t.Error("eligibility must be a no-op when not required")
	}
}

func TestEligibilityAreaKeywords(t *testing.T) {
	rc := baseContext()
	rc.RequireEligibility = true
	row := &model.DutyRow{ID: "r1", Label: "Kırmızı Alan"}

	redNurse := &model.StaffMember{ID: "s1", Areas: []string{"kirmizi alan"}, NightAllowed: true}
	if !(Eligibility{}).Allows(rc, redNurse, row, 1) {
		t.Error("matching area should pass")
	}

	triageNurse := &model.StaffMember{ID: "s2", Areas: []string{"triaj"}, NightAllowed: true}
	if (Eligibility{}).Allows(rc, triageNurse, row, 1) {
		t.Error("non-matching area should be rejected")
	}

	unrestricted := &model.StaffMember{ID: "s3", NightAllowed: true}
	if !(Eligibility{}).Allows(rc, unrestricted, row, 1) {
		t.Error("empty area set is unrestricted")
	}
}

func TestEligibilityUnclassifiedLabel(t *testing.T) {
	rc := baseContext()
	rc.RequireEligibility = true
	row := &model.DutyRow{ID: "r1", Label: "Depo Sayımı"}

	s := &model.StaffMember{ID: "s1", Areas: []string{"triaj"}, NightAllowed: true}
	if !(Eligibility{}).Allows(rc, s, row, 1) {
		t.Error("unclassified labels must not gate on areas")
	}
}

func TestEligibilityShiftCode(t *testing.T) {
	rc := baseContext()
	rc.RequireEligibility = true
	row := &model.DutyRow{ID: "r1", Label: "Triaj", ShiftCode: "G"}

	s := &model.StaffMember{ID: "s1", Areas: []string{"triaj"}, AllowedShiftCodes: []string{"24"}, NightAllowed: true}
	if (Eligibility{}).Allows(rc, s, row, 1) {
		t.Error("disallowed shift code should be rejected")
	}
}

func TestRowKeywords(t *testing.T) {
	if got := RowKeywords("Kırmızı Alan G"); len(got) == 0 {
		t.Error("red-area label should classify")
	}
	if got := RowKeywords("Depo"); got != nil {
		t.Errorf("unknown label should yield nil, got %v", got)
	}
	// English synonym in the same group.
	got := RowKeywords("Triage Desk")
	found := false
	for _, k := range got {
		if k == "triaj" {
			found = true
		}
	}
	if !found {
		t.Errorf("english label should map to turkish group terms: %v", got)
	}
}

func TestSupervisorLabel(t *testing.T) {
	if !SupervisorLabel("Sorumlu Hemşire") {
		t.Error("sorumlu should match")
	}
	if !SupervisorLabel("Shift Supervisor") {
		t.Error("supervisor should match")
	}
	if SupervisorLabel("Triaj") {
		t.Error("triaj should not match")
	}
}

func TestMatchesSupervisorHeuristic(t *testing.T) {
	byRole := &model.StaffMember{ID: "s1", Role: "Sorumlu Hemşire"}
	if !MatchesSupervisorHeuristic(byRole) {
		t.Error("supervisor role should match")
	}
	byArea := &model.StaffMember{ID: "s2", Areas: []string{"sorumlu"}}
	if !MatchesSupervisorHeuristic(byArea) {
		t.Error("supervisor area should match")
	}
	plain := &model.StaffMember{ID: "s3", Role: "Hemşire"}
	if MatchesSupervisorHeuristic(plain) {
		t.Error("plain nurse should not match")
	}
}

func TestSetReportsBlocker(t *testing.T) {
	rc := baseContext()
	rc.UsedToday["s1"] = true
	s := &model.StaffMember{ID: "s1", NightAllowed: true}
	row := &model.DutyRow{ID: "r1"}

	ok, blocker := DefaultSet().Allows(rc, s, row, 1)
	if ok || blocker != "double_booking" {
		t.Errorf("expected double_booking blocker, got ok=%v blocker=%q", ok, blocker)
	}

	rc.UsedToday = map[string]bool{}
	ok, blocker = DefaultSet().Allows(rc, s, row, 1)
	if !ok || blocker != "" {
		t.Errorf("expected pass, got ok=%v blocker=%q", ok, blocker)
	}
}
