package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nobet/nobet/internal/metrics"
	"github.com/nobet/nobet/internal/repository"
	"github.com/nobet/nobet/pkg/errors"
	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/logger"
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
	"github.com/nobet/nobet/pkg/need"
	"github.com/nobet/nobet/pkg/roster"
	"github.com/nobet/nobet/pkg/staffindex"
	rosterval "github.com/nobet/nobet/pkg/validator"
)

// RosterHandler serves roster generation and validation.
type RosterHandler struct {
	engine   *roster.Engine
	auditor  *rosterval.Auditor
	repo     *repository.RosterRepository // nil when persistence is disabled
	validate *validator.Validate
	timeout  time.Duration
}

// NewRosterHandler creates a roster handler. repo may be nil.
func NewRosterHandler(repo *repository.RosterRepository, timeout time.Duration) *RosterHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RosterHandler{
		engine:   roster.NewEngine(),
		auditor:  rosterval.NewAuditor(),
		repo:     repo,
		validate: validator.New(),
		timeout:  timeout,
	}
}

// GenerateRequest is the roster generation request body.
type GenerateRequest struct {
	Year  int    `json:"year" validate:"required,min=1970,max=2200"`
	Month int    `json:"month" validate:"required,min=1,max=12"`
	Role  string `json:"role,omitempty"`

	Rows      []*model.DutyRow       `json:"rows" validate:"required,min=1"`
	Overrides map[string]map[int]int `json:"overrides,omitempty"`

	LeavePolicy        string `json:"leave_policy,omitempty" validate:"omitempty,oneof=hard soft ignore"`
	ForcePins          bool   `json:"force_pins,omitempty"`
	RequireEligibility bool   `json:"require_eligibility,omitempty"`

	Staff            []map[string]interface{} `json:"staff" validate:"required,min=1"`
	LeaveSources     []interface{}            `json:"leave_sources,omitempty"`
	Suppressions     []leave.Suppression      `json:"suppressions,omitempty"`
	Pins             model.PinMap             `json:"pins,omitempty"`
	SupervisorConfig map[string]interface{}   `json:"supervisor,omitempty"`

	Save bool `json:"save,omitempty"`
}

// GenerateResponse is the roster generation response body.
type GenerateResponse struct {
	Success     bool                `json:"success"`
	Result      *model.RosterResult `json:"result"`
	TotalSlots  int                 `json:"total_slots"`
	FilledSlots int                 `json:"filled_slots"`
	Saved       bool                `json:"saved,omitempty"`
	Duration    string              `json:"duration"`
}

// Generate handles POST /api/v1/roster/generate.
func (h *RosterHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "decode request"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeValidationFail, "invalid request").WithDetails(err.Error()))
		return
	}

	in := &roster.Input{
		Year:               req.Year,
		Month:              req.Month,
		Role:               req.Role,
		Rows:               req.Rows,
		Overrides:          req.Overrides,
		LeavePolicy:        model.LeavePolicy(req.LeavePolicy),
		ForcePins:          req.ForcePins,
		RequireEligibility: req.RequireEligibility,
		Staff:              req.Staff,
		LeaveSources:       req.LeaveSources,
		Suppressions:       req.Suppressions,
		Pins:               req.Pins,
		SupervisorConfig:   req.SupervisorConfig,
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	started := time.Now()
	result, err := h.engine.Generate(ctx, in)
	duration := time.Since(started)
	if err != nil {
		metrics.RecordRosterGeneration(req.Role, false, 0, duration)
		if err == context.DeadlineExceeded {
			respondError(w, errors.New(errors.CodeTimeout, "roster generation timed out"))
			return
		}
		if appErr, ok := err.(*errors.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "roster generation failed"))
		return
	}
	metrics.RecordRosterGeneration(req.Role, true, len(result.Issues), duration)

	totalSlots := 0
	for _, byRow := range needMatrixFor(req) {
		for _, count := range byRow {
			totalSlots += count
		}
	}
	filled := result.TotalAssigned()

	resp := GenerateResponse{
		Success:     true,
		Result:      result,
		TotalSlots:  totalSlots,
		FilledSlots: filled,
		Duration:    duration.String(),
	}

	if req.Save && h.repo != nil {
		rec := &repository.RosterRecord{
			Role:        req.Role,
			MonthKey:    model.MonthKey(req.Year, req.Month),
			Year:        req.Year,
			Month:       req.Month,
			TotalSlots:  totalSlots,
			FilledSlots: filled,
			IssueCount:  len(result.Issues),
			Result:      result,
		}
		if err := h.repo.Save(r.Context(), rec); err != nil {
			logger.WithError(err).Str("role", req.Role).Msg("persist roster failed")
		} else {
			resp.Saved = true
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// ValidateRequest is the roster audit request body.
type ValidateRequest struct {
	Result       *model.RosterResult      `json:"result" validate:"required"`
	Rows         []*model.DutyRow         `json:"rows" validate:"required,min=1"`
	Staff        []map[string]interface{} `json:"staff" validate:"required,min=1"`
	LeaveSources []interface{}            `json:"leave_sources,omitempty"`
	Suppressions []leave.Suppression      `json:"suppressions,omitempty"`
	LeavePolicy  string                   `json:"leave_policy,omitempty" validate:"omitempty,oneof=hard soft ignore"`
}

// ValidateResponse is the roster audit response body.
type ValidateResponse struct {
	Valid      bool                  `json:"valid"`
	Violations []rosterval.Violation `json:"violations"`
}

// Validate handles POST /api/v1/roster/validate.
func (h *RosterHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req ValidateRequest
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

	staff := staffindex.Build(req.Staff)
	resolver := names.NewResolver(staff)
	leaves := leave.Build(req.LeaveSources, req.Suppressions, resolver, req.Result.Year, req.Result.Month)

	policy := model.LeavePolicy(req.LeavePolicy)
	if policy == "" {
		policy = model.LeaveHard
	}

	violations := h.auditor.Audit(rosterval.AuditInput{
		Result:      req.Result,
		Staff:       staff,
		Rows:        req.Rows,
		Leaves:      leaves,
		LeavePolicy: policy,
	})

	respondJSON(w, http.StatusOK, ValidateResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// GetRoster handles GET /api/v1/roster?role=...&month=YYYY-MM against
// the store. Requires persistence.
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "only GET is supported"))
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeInternal, "persistence is not configured"))
		return
	}

	role := r.URL.Query().Get("role")
	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		respondError(w, errors.InvalidInput("month", "must be YYYY-MM"))
		return
	}

	rec, err := h.repo.Get(r.Context(), role, monthKey)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "load roster"))
		return
	}
	if rec == nil {
		respondError(w, errors.NotFound("roster", role+"/"+monthKey))
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// needMatrixFor rebuilds the need matrix of a generate request for slot
// accounting in the response.
func needMatrixFor(req GenerateRequest) model.NeedMatrix {
	return need.BuildMatrix(req.Rows, req.Overrides, req.Year, req.Month)
}
