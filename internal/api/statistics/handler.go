// Package statistics exposes the read-only counters and breakdowns.
package statistics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MEKSAAA/Anti-Fake/internal/api/response"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

const (
	defaultTrendDays   = 7
	maxTrendDays       = 90
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// Global returns the platform-wide counters.
func Global(c *gin.Context) {
	stats, err := service.GlobalStatistics()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load global statistics")
		return
	}
	response.OK(c, "global statistics", stats)
}

// User returns one user's counters, 404 when the user has no detections.
func User(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	stats, err := service.UserStatistics(uint(userID))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load user statistics")
		return
	}
	if stats == nil {
		response.Fail(c, http.StatusNotFound, "no statistics for this user")
		return
	}
	response.OK(c, "user statistics", stats)
}

// Trend returns per-day detection volume for the last ?days=N days.
func Trend(c *gin.Context) {
	days := defaultTrendDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTrendDays {
			response.Fail(c, http.StatusBadRequest, "days must be between 1 and 90")
			return
		}
		days = parsed
	}

	points, err := service.DetectionTrend(days)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load detection trend")
		return
	}
	response.OK(c, "detection trend", points)
}

// DetectionTypes returns the image/text by fake/real breakdown.
func DetectionTypes(c *gin.Context) {
	stats, err := service.DetectionTypeStats()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load detection type statistics")
		return
	}
	response.OK(c, "detection type statistics", stats)
}

// RecentDetections returns the newest detections across all users.
func RecentDetections(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxRecentLimit {
			response.Fail(c, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	items, err := service.RecentDetections(limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load recent detections")
		return
	}
	response.OK(c, "recent detections", items)
}
