package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fluffyshare/internal/domain"
	"fluffyshare/internal/leaderboard"
	"fluffyshare/internal/service"
)

const (
	defaultLeaderboardDays = 7
	defaultUserDays        = 30
	adminTokenHeader       = "X-Admin-Token"
)

type Reader interface {
	Leaderboard(ctx context.Context, days, limit int) ([]domain.LeaderboardEntry, error)
	Stats(ctx context.Context, days int) (*domain.Stats, error)
	UserDetail(ctx context.Context, userID string, days int) (*domain.UserDetail, error)
}

type Runner interface {
	Trigger(ctx context.Context, runType domain.RunType) (*domain.ProcessingLog, error)
	Running() bool
}

type Handler struct {
	reader     Reader
	runner     Runner
	adminToken string
	logger     *slog.Logger
}

func NewHandler(reader Reader, runner Runner, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{
		reader:     reader,
		runner:     runner,
		adminToken: adminToken,
		logger:     logger.With("component", "api"),
	}
}

func (h *Handler) GetLeaderboard(c *gin.Context) {
	days, err := queryInt(c, "days", defaultLeaderboardDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	limit, err := queryInt(c, "limit", leaderboard.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entries, err := h.reader.Leaderboard(c.Request.Context(), days, limit)
	if err != nil {
		h.writeError(c, "error fetching leaderboard", err)
		return
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		WindowDays: days,
		Limit:      leaderboard.ClampLimit(limit),
		Entries:    entries,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	days, err := queryInt(c, "days", defaultLeaderboardDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.reader.Stats(c.Request.Context(), days)
	if err != nil {
		h.writeError(c, "error fetching stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetUser(c *gin.Context) {
	days, err := queryInt(c, "days", defaultUserDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	detail, err := h.reader.UserDetail(c.Request.Context(), c.Param("id"), days)
	if err != nil {
		h.writeError(c, "error fetching user", err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) TriggerRun(c *gin.Context) {
	if !h.authorized(c) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid admin token"})
		return
	}

	req := TriggerRequest{RunType: domain.RunManualTrigger}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.RunType == "" {
		req.RunType = domain.RunManualTrigger
	}
	if !req.RunType.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown run_type %q", req.RunType)})
		return
	}

	run, err := h.runner.Trigger(c.Request.Context(), req.RunType)
	if errors.Is(err, service.ErrRunInProgress) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("error starting run", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not start run"})
		return
	}

	h.logger.Info("run triggered", "run_id", run.ID, "run_type", run.RunType)

	c.JSON(http.StatusAccepted, TriggerResponse{
		RunID:     run.ID,
		RunType:   run.RunType,
		Status:    run.Status,
		StartedAt: run.StartedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"run_running": h.runner.Running(),
	})
}

func (h *Handler) authorized(c *gin.Context) bool {
	if h.adminToken == "" {
		return true
	}
	got := c.GetHeader(adminTokenHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.adminToken)) == 1
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, leaderboard.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, leaderboard.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error(msg, "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "leaderboard temporarily unavailable"})
	}
}

func queryInt(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}
