package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nobet/nobet/pkg/model"
)

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func generateBody() GenerateRequest {
	return GenerateRequest{
		Year:  2024,
		Month: 5,
		Role:  "hemsire",
		Rows: []*model.DutyRow{
			{ID: "r1", Label: "Müşahede", DefaultCount: 1, ShiftCode: "24"},
		},
		Staff: []map[string]interface{}{
			{"id": "s1", "name": "Ayşe Yılmaz"},
			{"id": "s2", "name": "Mehmet Demir"},
		},
	}
}

func TestGenerateEndpoint(t *testing.T) {
	h := NewRosterHandler(nil, 5*time.Second)
	rec := postJSON(t, h.Generate, generateBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp GenerateResponse
	decode(t, rec, &resp)
	if !resp.Success || resp.Result == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.TotalSlots != 31 || resp.FilledSlots != 31 {
		t.Errorf("slots = %d/%d, want 31/31", resp.FilledSlots, resp.TotalSlots)
	}
	if resp.Saved {
		t.Error("nothing should be saved without a store")
	}
}

func TestGenerateRejectsBadJSON(t *testing.T) {
	h := NewRosterHandler(nil, 5*time.Second)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	h := NewRosterHandler(nil, 5*time.Second)
	body := generateBody()
	body.Staff = nil
	rec := postJSON(t, h.Generate, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var errResp map[string]interface{}
	decode(t, rec, &errResp)
	if errResp["code"] != "VALIDATION_FAILED" {
		t.Errorf("code = %v, want VALIDATION_FAILED", errResp["code"])
	}
}

func TestGenerateRejectsGet(t *testing.T) {
	h := NewRosterHandler(nil, 5*time.Second)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	h := NewRosterHandler(nil, 5*time.Second)

	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "r1", []string{"Ayşe Yılmaz"})
	result.SetNames(1, "r2", []string{"Ayşe Yılmaz"}) // double booked

	rec := postJSON(t, h.Validate, ValidateRequest{
		Result: result,
		Rows: []*model.DutyRow{
			{ID: "r1", Label: "Müşahede", ShiftCode: "24"},
			{ID: "r2", Label: "Triaj", ShiftCode: "24"},
		},
		Staff: []map[string]interface{}{
			{"id": "s1", "name": "Ayşe Yılmaz"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ValidateResponse
	decode(t, rec, &resp)
	if resp.Valid {
		t.Error("double-booked roster should not validate")
	}
	if len(resp.Violations) != 1 || resp.Violations[0].Type != "double_booking" {
		t.Errorf("violations = %+v", resp.Violations)
	}
}

func TestGetRosterWithoutStore(t *testing.T) {
	h := NewRosterHandler(nil, 5*time.Second)
	req := httptest.NewRequest(http.MethodGet, "/?role=hemsire&month=2024-05", nil)
	rec := httptest.NewRecorder()
	h.GetRoster(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCoverageEndpoint(t *testing.T) {
	h := NewStatsHandler()

	result := model.NewRosterResult(2024, 5, "hemsire")
	for day := 1; day <= 31; day++ {
		result.SetNames(day, "r1", []string{"Ayşe Yılmaz"})
	}

	rec := postJSON(t, h.Coverage, CoverageRequest{
		Result: result,
		Rows:   []*model.DutyRow{{ID: "r1", Label: "Müşahede", DefaultCount: 1}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OverallCoverage float64 `json:"overall_coverage"`
		TotalSlots      int     `json:"total_slots"`
	}
	decode(t, rec, &resp)
	if resp.TotalSlots != 31 || resp.OverallCoverage != 100 {
		t.Errorf("coverage = %+v", resp)
	}
}

func TestWorkloadEndpoint(t *testing.T) {
	h := NewStatsHandler()

	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(1, "r1", []string{"Ayşe Yılmaz"})
	result.SetNames(2, "r1", []string{"Mehmet Demir"})

	rec := postJSON(t, h.Workload, WorkloadRequest{
		Result: result,
		Rows:   []*model.DutyRow{{ID: "r1", Label: "Müşahede"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		BalanceScore float64 `json:"balance_score"`
	}
	decode(t, rec, &resp)
	if resp.BalanceScore != 100 {
		t.Errorf("balance = %v, want 100", resp.BalanceScore)
	}
}

func TestSwapEndpoint(t *testing.T) {
	h := NewSwapHandler()

	result := model.NewRosterResult(2024, 5, "hemsire")
	result.SetNames(7, "r1", []string{"Ayşe Yılmaz"})

	rec := postJSON(t, h.Recommend, RecommendRequest{
		Result:      result,
		Day:         7,
		RowID:       "r1",
		VacatedName: "Ayşe Yılmaz",
		Rows:        []*model.DutyRow{{ID: "r1", Label: "Müşahede", ShiftCode: "24"}},
		Staff: []map[string]interface{}{
			{"id": "s1", "name": "Ayşe Yılmaz"},
			{"id": "s2", "name": "Mehmet Demir"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp RecommendResponse
	decode(t, rec, &resp)
	if resp.Count != 1 || resp.Recommendations[0].Staff.Name != "Mehmet Demir" {
		t.Errorf("recommendations = %+v", resp)
	}
}

func TestSwapUnknownRow(t *testing.T) {
	h := NewSwapHandler()

	rec := postJSON(t, h.Recommend, RecommendRequest{
		Result:      model.NewRosterResult(2024, 5, "hemsire"),
		Day:         7,
		RowID:       "missing",
		VacatedName: "Ayşe Yılmaz",
		Rows:        []*model.DutyRow{{ID: "r1", Label: "Müşahede"}},
		Staff:       []map[string]interface{}{{"id": "s1", "name": "Ayşe Yılmaz"}},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
