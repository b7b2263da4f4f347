// Package moodhandler exposes mood check-ins and the camp dashboard.
package moodhandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/domain/mood"
	"djigbo-server/internal/infrastructure/metrics"
	"djigbo-server/internal/interfaces/httpserver/middlewares"
	"djigbo-server/internal/interfaces/httpserver/requests"
	"djigbo-server/internal/interfaces/httpserver/responses"
)

// MoodHandler handles mood requests.
type MoodHandler struct {
	service *mood.Service
}

// NewMoodHandler creates a new mood handler.
func NewMoodHandler(service *mood.Service) *MoodHandler {
	return &MoodHandler{service: service}
}

// CheckIn records a mood score for the caller.
func (h *MoodHandler) CheckIn(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	var req requests.MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, "moodScore is required")
		return
	}

	entry, err := h.service.CheckIn(c.Request.Context(), principal.Subject, req.MoodScore, req.Thoughts)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	metrics.MoodCheckinsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"moodId": entry.ID})
}

// History returns the caller's recent check-ins along with their aggregates.
func (h *MoodHandler) History(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.service.History(ctx, principal.Subject, limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	stats, err := h.service.UserStats(ctx, principal.Subject)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "stats": stats})
}

// MyStats aggregates the caller's check-ins.
func (h *MoodHandler) MyStats(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	stats, err := h.service.UserStats(c.Request.Context(), principal.Subject)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CampDaily returns the camp dashboard: the per-day series, the current day's
// snapshot and the overall aggregate in one payload.
func (h *MoodHandler) CampDaily(c *gin.Context) {
	ctx := c.Request.Context()

	days, err := h.service.CampDaily(ctx, dateRange(c))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	today, err := h.service.TodayCamp(ctx)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	overall, err := h.service.CampStats(ctx)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campData": days, "today": today, "overall": overall})
}

// CampToday returns the current day's camp snapshot.
func (h *MoodHandler) CampToday(c *gin.Context) {
	today, err := h.service.TodayCamp(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

// CampStats aggregates the whole mood table.
func (h *MoodHandler) CampStats(c *gin.Context) {
	stats, err := h.service.CampStats(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Participants returns check-ins joined with profiles, optionally grouped by
// date with ?group_by=date.
func (h *MoodHandler) Participants(c *gin.Context) {
	ctx := c.Request.Context()
	rng := dateRange(c)

	if c.Query("group_by") == "date" {
		grouped, err := h.service.ParticipantEntriesByDate(ctx, rng)
		if err != nil {
			responses.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries_by_date": grouped})
		return
	}

	entries, err := h.service.ParticipantEntries(ctx, rng)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func dateRange(c *gin.Context) mood.DateRange {
	return mood.DateRange{
		Start: c.Query("start_date"),
		End:   c.Query("end_date"),
	}
}
