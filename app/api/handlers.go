package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/driftapp/drift-parse/app/database"
	"github.com/driftapp/drift-parse/app/linkparse"
	"github.com/driftapp/drift-parse/app/tasks"
	"github.com/gin-gonic/gin"
)

func NewHandler(parser ParserInterface, linkRepo database.ParsedLinkRepository,
	scheduler tasks.TaskSchedulerInterface, cacheTTL time.Duration) *Handler {
	return &Handler{
		parser:    parser,
		linkRepo:  linkRepo,
		scheduler: scheduler,
		cacheTTL:  cacheTTL,
	}
}

// ParseLink resolves a shared URL into draft fields. Extraction failures
// are reported in the body with a 200 status; only a missing or
// malformed URL is a client error.
func (h *Handler) ParseLink(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	url := linkparse.NormalizeURL(rawURL)
	if !linkparse.ValidURL(url) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL"})
		return
	}

	if cached, err := h.linkRepo.Get(url); err != nil {
		slog.Error("Database error", "operation", "get_cached_link", "url", url, "error", err)
	} else if cached != nil && !cached.Expired(time.Now()) {
		if err := h.linkRepo.Touch(url); err != nil {
			slog.Warn("Failed to record cache hit", "url", url, "error", err)
		}
		slog.Debug("Serving cached link", "url", url, "source_type", cached.SourceType)
		c.JSON(http.StatusOK, cached.Link)
		return
	}

	parsed := h.parser.Run(c.Request.Context(), url)

	if parsed.Success {
		if err := h.linkRepo.Put(url, parsed, h.cacheTTL); err != nil {
			slog.Warn("Failed to cache parsed link", "url", url, "error", err)
		}
	}

	c.JSON(http.StatusOK, parsed)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if stats, err := h.linkRepo.Stats(); err == nil {
		health["cached_links"] = stats.Total
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.linkRepo.Stats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIPurgeCache(c *gin.Context) {
	purgeTask := tasks.NewPurgeCacheTask(h.linkRepo)
	if err := h.scheduler.EnqueueTask(purgeTask); err != nil {
		slog.Error("Error enqueueing purge task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue purge task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cache purge enqueued",
		"task": gin.H{
			"id":   purgeTask.ID,
			"type": purgeTask.Type,
		},
	})
}
