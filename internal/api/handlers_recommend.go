// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/curio/internal/breaker"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/recommend"
)

// Recommendations handles GET /api/recommendations
//
// An unknown user_id is served in anonymous mode. limit defaults to the
// configured default when absent, non-numeric or not positive, and is
// clamped to the configured maximum.
//
// @Summary Get recommended learning resources
// @Description Returns a ranked list of learning resources. Personalized when user_id matches a stored profile, otherwise the best resources overall.
// @Tags Recommendations
// @Produce json
// @Param user_id query string false "Learner profile ID"
// @Param limit query int false "Number of items (default 10, max 50)"
// @Success 200 {object} RecommendationsResponse "Ranked recommendations"
// @Failure 405 {object} ErrorResponse "Method not allowed"
// @Failure 429 {object} ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.MethodNotAllowed(w, r)
		return
	}

	userID := r.URL.Query().Get("user_id")
	ctx := r.Context()
	if userID != "" {
		ctx = logging.ContextWithUserID(ctx, userID)
	}

	req := recommend.Request{
		UserID:    userID,
		Limit:     getIntParam(r, "limit", 0),
		RequestID: logging.RequestIDFromContext(ctx),
	}

	start := time.Now()
	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		metrics.RecordRecommendError(failureStage(err))
		respondError(w, r.WithContext(ctx), http.StatusInternalServerError, msgInternal, err)
		return
	}

	md := resp.Metadata
	metrics.RecordRecommendation(string(md.Mode), md.TotalCandidates, len(resp.Items), time.Since(start))
	if md.ProfileMissed {
		metrics.RecordProfileMiss()
	}

	items := resp.Items
	if items == nil {
		items = []recommend.Item{}
	}

	logging.Ctx(ctx).Debug().
		Str("mode", string(md.Mode)).
		Int("limit", md.Limit).
		Int("candidates", md.TotalCandidates).
		Int("returned", len(items)).
		Msg("Recommendations served")

	respondJSON(w, http.StatusOK, &RecommendationsResponse{Items: items})
}

// failureStage labels a pipeline error for curio_recommend_errors_total.
// Requests rejected by an open circuit breaker are labeled circuit_open so
// they are not confused with store failures.
func failureStage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if breaker.IsOpen(err) {
		return "circuit_open"
	}
	if stage := recommend.FailedStage(err); stage != "" {
		return stage
	}
	return "other"
}
