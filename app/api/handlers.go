package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/tasks"
)

func NewHandler(teamRepo database.TeamRepository, matchRepo database.MatchRepository,
	logRepo database.SyncLogRepository, runner tasks.SyncRunner, version string) *Handler {
	return &Handler{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		logRepo:   logRepo,
		runner:    runner,
		version:   version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	ctx := c.Request.Context()
	if teamCount, err := h.teamRepo.GetTeamCount(ctx); err == nil {
		health["teams"] = teamCount
	}
	if matchCount, err := h.matchRepo.GetMatchCount(ctx); err == nil {
		health["matches"] = matchCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	teamCount, err := h.teamRepo.GetTeamCount(ctx)
	if err != nil {
		slog.Error("Database error", "operation", "team_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	matchCount, err := h.matchRepo.GetMatchCount(ctx)
	if err != nil {
		slog.Error("Database error", "operation", "match_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	syncableTeams, err := h.teamRepo.GetTeamsWithSourceURL(ctx)
	if err != nil {
		slog.Error("Database error", "operation", "syncable_teams", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams":          teamCount,
		"syncable_teams": len(syncableTeams),
		"matches":        matchCount,
	})
}

// TriggerSync runs a full sync pass synchronously and returns the per-team
// results. Individual team errors show up inside the payload; only a
// failure of the pass itself is an error response.
func (h *Handler) TriggerSync(c *gin.Context) {
	slog.Info("Manual sync triggered", "client", c.ClientIP())

	summary, err := h.runner.SyncAll(c.Request.Context())
	if err != nil {
		slog.Error("Manual sync failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": summary,
	})
}

// ListSyncLogs returns the most recent run records, newest first. Read by
// the admin UI to show last-sync status per team.
func (h *Handler) ListSyncLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	logs, err := h.logRepo.GetRecentLogs(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Database error", "operation", "recent_logs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	payload := make([]gin.H, 0, len(logs))
	for _, entry := range logs {
		payload = append(payload, gin.H{
			"team_id":         entry.TeamID,
			"type":            entry.Type,
			"status":          entry.Status,
			"message":         entry.Message,
			"matches_created": entry.MatchesCreated,
			"matches_updated": entry.MatchesUpdated,
			"matches_skipped": entry.MatchesSkipped,
			"created_at":      entry.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"logs": payload})
}
