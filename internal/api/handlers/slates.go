package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/services"
	"github.com/pucklab/nhl-totals/internal/utils"
)

// SlateHandler exposes the projection pipeline over HTTP: building slates,
// reading projections and rosters, and applying live overrides.
type SlateHandler struct {
	runs     *services.RunService
	registry *services.SlateRegistry
	logger   *logrus.Logger
}

// NewSlateHandler creates a slate handler.
func NewSlateHandler(runs *services.RunService, registry *services.SlateRegistry, logger *logrus.Logger) *SlateHandler {
	return &SlateHandler{runs: runs, registry: registry, logger: logger}
}

// CreateSlate builds a new slate for the requested date (default today).
func (h *SlateHandler) CreateSlate(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.SendBadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	slate, err := h.runs.BuildSlate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, services.ErrNoGames) {
			utils.SendSuccessWithMessage(c, gin.H{"date": date, "games": []services.GameView{}}, "no games scheduled")
			return
		}
		h.logger.WithError(err).WithField("date", date).Error("Failed to build slate")
		utils.SendInternalError(c, "failed to build slate")
		return
	}

	h.registry.Put(slate)
	utils.SendCreated(c, slate.View())
}

// GetSlate returns the current state of a slate.
func (h *SlateHandler) GetSlate(c *gin.Context) {
	slate, ok := h.registry.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "slate not found")
		return
	}
	utils.SendSuccess(c, slate.View())
}

// GetRoster returns the slate's augmented goalie database for dropdowns.
func (h *SlateHandler) GetRoster(c *gin.Context) {
	slate, ok := h.registry.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "slate not found")
		return
	}
	utils.SendSuccess(c, slate.Roster())
}

type goalieOverrideRequest struct {
	Side string `json:"side" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// OverrideGoalie swaps a goalie on one game and returns the recomputed game.
func (h *SlateHandler) OverrideGoalie(c *gin.Context) {
	slate, idx, ok := h.slateAndGame(c)
	if !ok {
		return
	}

	var req goalieOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "body must include side and name")
		return
	}

	if err := h.runs.OverrideGoalie(slate, idx, req.Side, req.Name); err != nil {
		if errors.Is(err, services.ErrUnknownGoalie) {
			utils.SendNotFound(c, err.Error())
			return
		}
		utils.SendBadRequest(c, err.Error())
		return
	}
	utils.SendSuccess(c, slate.View().Games[idx])
}

type lineOverrideRequest struct {
	Line float64 `json:"line" binding:"required"`
}

// OverrideLine replaces a game's market total and returns the recomputed game.
func (h *SlateHandler) OverrideLine(c *gin.Context) {
	slate, idx, ok := h.slateAndGame(c)
	if !ok {
		return
	}

	var req lineOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "body must include line")
		return
	}

	if err := h.runs.OverrideLine(slate, idx, req.Line); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	utils.SendSuccess(c, slate.View().Games[idx])
}

type thresholdRequest struct {
	Threshold *float64 `json:"threshold" binding:"required"`
}

// SetThreshold changes the slate's edge threshold and returns the slate.
func (h *SlateHandler) SetThreshold(c *gin.Context) {
	slate, ok := h.registry.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "slate not found")
		return
	}

	var req thresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Threshold == nil {
		utils.SendBadRequest(c, "body must include threshold")
		return
	}

	if err := h.runs.SetEdgeThreshold(slate, *req.Threshold); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	utils.SendSuccess(c, slate.View())
}

func (h *SlateHandler) slateAndGame(c *gin.Context) (*services.Slate, int, bool) {
	slate, found := h.registry.Get(c.Param("id"))
	if !found {
		utils.SendNotFound(c, "slate not found")
		return nil, 0, false
	}

	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		utils.SendBadRequest(c, "game index must be an integer")
		return nil, 0, false
	}
	return slate, idx, true
}
