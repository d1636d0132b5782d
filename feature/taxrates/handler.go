package taxrates

import (
	"taxsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for tax-rate synchronization.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tax routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tax")
	group.Post("/sync", h.HandleSync)
	group.Get("/cache", h.HandleCacheStatus)
	group.Delete("/cache", h.HandleCacheInvalidate)
}

// HandleSync runs one synchronization and returns its instruction set.
// @Summary Run Synchronization
// @Description Enrich the tax export (cached) and diff it against the destination platform.
// @Tags tax
// @Accept json
// @Produce json
// @Param force_refresh query bool false "Rebuild the cache window before reconciling"
// @Param dry_run query bool false "Compute without installing a cache window"
// @Param override_exempt query bool false "Rewrite exempt rates like any other"
// @Success 200 {object} Result "Synchronization Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tax/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	run := RunOptions{
		ForceRefresh:   c.QueryBool("force_refresh"),
		DryRun:         c.QueryBool("dry_run"),
		OverrideExempt: c.QueryBool("override_exempt"),
	}

	result, err := h.service.Sync(c.Context(), run)
	if err != nil {
		l.Error("Synchronization failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleCacheStatus reports the active cache window.
// @Summary Cache Status
// @Description Report the active enriched-export cache window.
// @Tags tax
// @Produce json
// @Success 200 {object} cache.Status "Cache Status"
// @Failure 404 {object} map[string]string "No Cache Window"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tax/cache [get]
func (h *Handler) HandleCacheStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	status, err := h.service.CacheStatus(c.Context())
	if err != nil {
		l.Error("Cache status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if status == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no cache window",
		})
	}

	return c.JSON(status)
}

// HandleCacheInvalidate drops the cache window.
// @Summary Invalidate Cache
// @Description Drop the enriched-export cache window and its snapshot.
// @Tags tax
// @Produce json
// @Success 200 {object} map[string]string "Invalidated"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tax/cache [delete]
func (h *Handler) HandleCacheInvalidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	if err := h.service.InvalidateCache(c.Context()); err != nil {
		l.Error("Cache invalidation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "invalidated"})
}
