package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nobet/nobet/internal/metrics"
	"github.com/nobet/nobet/pkg/errors"
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/need"
	"github.com/nobet/nobet/pkg/stats"
)

// StatsHandler serves roster analytics.
type StatsHandler struct {
	coverage *stats.CoverageAnalyzer
	workload *stats.WorkloadAnalyzer
	validate *validator.Validate
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{
		coverage: stats.NewCoverageAnalyzer(),
		workload: stats.NewWorkloadAnalyzer(),
		validate: validator.New(),
	}
}

// CoverageRequest is the coverage analysis request body.
type CoverageRequest struct {
	Result    *model.RosterResult    `json:"result" validate:"required"`
	Rows      []*model.DutyRow       `json:"rows" validate:"required,min=1"`
	Overrides map[string]map[int]int `json:"overrides,omitempty"`
}

// Coverage handles POST /api/v1/stats/coverage.
func (h *StatsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req CoverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "decode request"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeValidationFail, "invalid request").WithDetails(err.Error()))
		return
	}
	if !model.ValidMonth(req.Result.Year, req.Result.Month) {
		respondError(w, errors.InvalidMonth(req.Result.Year, req.Result.Month))
		return
	}

	needs := need.BuildMatrix(req.Rows, req.Overrides, req.Result.Year, req.Result.Month)
	report := h.coverage.Analyze(req.Result, needs)
	metrics.SetCoverageRate(req.Result.Role, report.OverallCoverage)

	respondJSON(w, http.StatusOK, report)
}

// WorkloadRequest is the workload analysis request body.
type WorkloadRequest struct {
	Result *model.RosterResult `json:"result" validate:"required"`
	Rows   []*model.DutyRow    `json:"rows" validate:"required,min=1"`
}

// Workload handles POST /api/v1/stats/workload.
func (h *StatsHandler) Workload(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req WorkloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "decode request"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeValidationFail, "invalid request").WithDetails(err.Error()))
		return
	}

	report := h.workload.Analyze(req.Result, req.Rows)
	metrics.SetWorkloadGini(req.Result.Role, "duty", report.DutyGini)
	metrics.SetWorkloadGini(req.Result.Role, "night", report.NightGini)
	metrics.SetWorkloadGini(req.Result.Role, "weekend", report.WeekendGini)

	respondJSON(w, http.StatusOK, report)
}
