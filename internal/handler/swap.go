package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nobet/nobet/pkg/errors"
	"github.com/nobet/nobet/pkg/leave"
	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
	"github.com/nobet/nobet/pkg/staffindex"
	"github.com/nobet/nobet/pkg/swap"
)

// SwapHandler serves substitute recommendations.
type SwapHandler struct {
	recommender *swap.Recommender
	validate    *validator.Validate
}

// NewSwapHandler creates a swap handler.
func NewSwapHandler() *SwapHandler {
	return &SwapHandler{
		recommender: swap.NewRecommender(),
		validate:    validator.New(),
	}
}

// RecommendRequest is the substitute recommendation request body.
type RecommendRequest struct {
	Result      *model.RosterResult `json:"result" validate:"required"`
	Day         int                 `json:"day" validate:"required,min=1,max=31"`
	RowID       string              `json:"row_id" validate:"required"`
	VacatedName string              `json:"vacated_name" validate:"required"`

	Rows               []*model.DutyRow         `json:"rows" validate:"required,min=1"`
	Staff              []map[string]interface{} `json:"staff" validate:"required,min=1"`
	LeaveSources       []interface{}            `json:"leave_sources,omitempty"`
	Suppressions       []leave.Suppression      `json:"suppressions,omitempty"`
	LeavePolicy        string                   `json:"leave_policy,omitempty" validate:"omitempty,oneof=hard soft ignore"`
	RequireEligibility bool                     `json:"require_eligibility,omitempty"`

	MaxRecommendations int      `json:"max_recommendations,omitempty" validate:"omitempty,min=1,max=50"`
	ExcludeNames       []string `json:"exclude_names,omitempty"`
}

// RecommendResponse is the substitute recommendation response body.
type RecommendResponse struct {
	Recommendations []swap.Recommendation `json:"recommendations"`
	Count           int                   `json:"count"`
}

// Recommend handles POST /api/v1/swap/recommend.
func (h *SwapHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "decode request"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeValidationFail, "invalid request").WithDetails(err.Error()))
		return
	}

	var row *model.DutyRow
	for _, candidate := range req.Rows {
		if candidate.ID == req.RowID {
			row = candidate
			break
		}
	}
	if row == nil {
		respondError(w, errors.NotFound("duty row", req.RowID))
		return
	}

	staff := staffindex.Build(req.Staff)
	resolver := names.NewResolver(staff)
	leaves := leave.Build(req.LeaveSources, req.Suppressions, resolver, req.Result.Year, req.Result.Month)

	policy := model.LeavePolicy(req.LeavePolicy)
	if policy == "" {
		policy = model.LeaveHard
	}

	opts := swap.DefaultOptions()
	if req.MaxRecommendations > 0 {
		opts.MaxRecommendations = req.MaxRecommendations
	}
	opts.ExcludeNames = req.ExcludeNames

	recs := h.recommender.Recommend(&swap.Request{
		Result:             req.Result,
		Day:                req.Day,
		Row:                row,
		VacatedName:        req.VacatedName,
		Staff:              staff,
		Rows:               req.Rows,
		Leaves:             leaves,
		LeavePolicy:        policy,
		RequireEligibility: req.RequireEligibility,
	}, opts)

	respondJSON(w, http.StatusOK, RecommendResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}
