package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/services"
)

// GetPublicProfile renders a provider's public page for unauthenticated
// viewing. An absent profile is a stable not-found state, never a crash; a
// malformed id gets the same treatment since it can't match any owner.
func GetPublicProfile(ps *services.PresentationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.Param("owner_id"))

		ownerID, err := uuid.Parse(rawID)
		if err != nil {
			c.JSON(http.StatusNotFound, notFoundBody())
			return
		}

		page, err := ps.GetPublicPage(c.Request.Context(), ownerID)
		if err != nil {
			if errors.Is(err, models.ErrProfileNotFound) {
				c.JSON(http.StatusNotFound, notFoundBody())
				return
			}
			// Transient fetch failure: retryable, distinct from not-found
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse("profile is temporarily unavailable"))
			return
		}

		// View tracking is best effort and never delays the page
		sessionID, _ := c.Cookie("session_id")
		go ps.TrackView(context.Background(), ownerID, sessionID, c.ClientIP(), c.Request.UserAgent())

		c.JSON(http.StatusOK, models.SuccessResponse(page, ""))
	}
}

// GetMyViewStats returns the owner's public page view counters.
func GetMyViewStats(ps *services.PresentationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _, ok := callerID(c)
		if !ok {
			return
		}

		stats, err := ps.ViewStats(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(stats, ""))
	}
}

func notFoundBody() models.ApiResponse {
	return models.ApiResponse{
		Success: false,
		Message: "This profile doesn't exist or is not available.",
		Error:   "profile not found",
	}
}
