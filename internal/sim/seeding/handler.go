package seeding

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/revcycle/revcycle/internal/sim/lifecycle"
	"github.com/revcycle/revcycle/internal/sim/refdata"
)

// Handler provides the HTTP endpoints for the seeding pipeline and the
// lifecycle sweep.
type Handler struct {
	seeder *Seeder
	engine *lifecycle.Engine
	// sweepLimit caps how many claims one sweep request examines.
	sweepLimit int
	mu         sync.Mutex
}

// NewHandler creates a Handler over a seeder and a lifecycle engine.
func NewHandler(seeder *Seeder, engine *lifecycle.Engine, sweepLimit int) *Handler {
	return &Handler{seeder: seeder, engine: engine, sweepLimit: sweepLimit}
}

// RegisterRoutes registers the simulation routes on the given Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/seed", h.handleSeed)
	g.GET("/seed/progress", h.handleProgress)
	g.POST("/seed/reset", h.handleReset)
	g.POST("/claims/daily", h.handleDaily)
	g.POST("/claims/submit", h.handleSubmitReady)
	g.POST("/lifecycle/sweep", h.handleSweep)
}

func (h *Handler) handleSeed(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	orgs, err := h.seeder.SeedAll(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrAlreadySeeded) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	// Batches continue in the background; progress is polled separately.
	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"status":        "seeding",
		"organizations": orgs,
	})
}

func (h *Handler) handleProgress(c echo.Context) error {
	progress, err := h.seeder.Progress(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, progress)
}

func (h *Handler) handleReset(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	confirm := c.QueryParam("confirm") == "true"
	orgs, err := h.seeder.ResetAndReseed(c.Request().Context(), confirm)
	if err != nil {
		if errors.Is(err, ErrConfirmationRequired) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"status":        "reseeding",
		"organizations": orgs,
	})
}

func (h *Handler) handleDaily(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	total, err := h.seeder.GenerateDaily(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"claims_created": total})
}

func (h *Handler) handleSubmitReady(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	code := c.QueryParam("org")
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "org query parameter is required"})
	}
	org, err := h.seeder.repos.Orgs.GetByCode(c.Request().Context(), code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if org == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "organization not seeded: " + code})
	}

	submitted, err := h.engine.SubmitReady(c.Request().Context(), org.ID, h.sweepLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"submitted": submitted})
}

func (h *Handler) handleSweep(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	code := c.QueryParam("org")
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "org query parameter is required"})
	}
	profile, ok := refdata.ProfileByCode(code)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown organization " + code})
	}
	org, err := h.seeder.repos.Orgs.GetByCode(c.Request().Context(), code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if org == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "organization not seeded: " + code})
	}

	result, err := h.engine.Sweep(c.Request().Context(), &profile, org.ID, h.sweepLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
