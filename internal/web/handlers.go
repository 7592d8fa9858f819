package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/period"
	"github.com/roach88/habitual/internal/store"
)

// errorStatus maps analysis and store errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, period.ErrInvalidPeriodKind):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrHabitNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func (s *Server) handleActiveHabits(c *gin.Context) {
	habits, err := s.analyzer.ActiveHabitsForPeriod(c.Request.Context(), c.Query("period"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"habits":  habits,
		"count":   len(habits),
	})
}

func (s *Server) handleOverview(c *gin.Context) {
	statuses, err := s.analyzer.Overview(c.Request.Context(), c.Query("period"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"habits":  statuses,
		"count":   len(statuses),
	})
}

func (s *Server) handleStreak(c *gin.Context) {
	name := c.Param("name")
	ctx := c.Request.Context()

	streak, err := s.analyzer.CurrentStreak(ctx, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	done, err := s.analyzer.CompletedThisPeriod(ctx, name)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"name":                  name,
		"current_streak":        streak,
		"completed_this_period": done,
	})
}

func (s *Server) handleComplete(c *gin.Context) {
	ev, err := s.recorder.RecordCompletion(c.Request.Context(), c.Param("name"), time.Time{})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"event":   ev,
	})
}

func (s *Server) handleSeries(c *gin.Context) {
	all, err := strconv.ParseBool(c.DefaultQuery("all", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "all must be a boolean",
		})
		return
	}

	records, err := s.analyzer.Series(c.Request.Context(), analysis.SeriesRequest{
		Habit:     c.DefaultQuery("habit", analysis.AllHabits),
		Period:    c.DefaultQuery("period", analysis.AllHabits),
		ReturnAll: all,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"series":  records,
		"count":   len(records),
	})
}
