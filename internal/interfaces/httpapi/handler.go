package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
	"github.com/riskibarqy/match-goals/internal/usecase"
)

type Handler struct {
	teamGoalsService *usecase.TeamGoalsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(teamGoalsService *usecase.TeamGoalsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamGoalsService: teamGoalsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetTeamGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamGoals")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	opponent := strings.TrimSpace(r.URL.Query().Get("opponent"))
	rawStartYear := strings.TrimSpace(r.URL.Query().Get("start_year"))
	if rawStartYear == "" {
		writeError(ctx, w, fmt.Errorf("%w: start_year is required", usecase.ErrInvalidInput))
		return
	}
	startYear, err := strconv.Atoi(rawStartYear)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: start_year must be an integer", usecase.ErrInvalidInput))
		return
	}

	report, err := h.teamGoalsService.GetTeamGoals(ctx, matchresult.Query{
		Team:      team,
		Opponent:  opponent,
		StartYear: startYear,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get team goals failed", "team", team, "opponent", opponent, "start_year", startYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, NewTeamGoalsResponse(report))
}

func (h *Handler) GetTeamGoalsBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamGoalsBatch")
	defer span.End()

	var req teamGoalsBatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.teamGoalsService.GetTeamGoalsBatch(ctx, usecase.TeamGoalsBatchInput{
		Team:      req.Team,
		Opponents: req.Opponents,
		StartYear: req.StartYear,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get team goals batch failed", "team", req.Team, "opponents", len(req.Opponents), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, NewTeamGoalsBatchResponse(ctx, req.Team, items))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
