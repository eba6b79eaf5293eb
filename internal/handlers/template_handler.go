package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/services"
)

// ListTemplates serves the selectable template catalog in display order.
func ListTemplates(s *services.SelectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(s.Catalog(), ""))
	}
}

// TemplateEvents returns the caller's selection and fallback history so a
// degraded template id is discoverable by its owner.
func TemplateEvents(s *services.SelectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _, ok := callerID(c)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		events, err := s.History(c.Request.Context(), id, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

// PreviewTemplate renders a template against the caller's in-progress record
// at preview context. Nothing is persisted; the client sends whatever it has
// in its form, saved or not.
func PreviewTemplate(p *services.ProfileService, s *services.SelectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			TemplateID string          `json:"template_id" binding:"required"`
			Profile    *models.Profile `json:"profile"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		// Fall back to the persisted record when the client sends no draft
		record := req.Profile
		if record == nil {
			loaded, err := p.GetOrInitProfile(c.Request.Context(), id, callerEmail(c), accessToken)
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
				return
			}
			record = loaded
		}
		record.ID = id

		sess := services.NewEditingSession(record, accessToken)
		s.OpenSelector(sess)
		presentation := s.Preview(c.Request.Context(), sess, req.TemplateID)

		c.JSON(http.StatusOK, models.SuccessResponse(presentation, ""))
	}
}

// SelectTemplate persists the template choice as a decoupled single-field
// save. A persistence failure is reported, but the choice is echoed back so
// the client keeps it in memory and retries on the next full save.
func SelectTemplate(p *services.ProfileService, s *services.SelectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			TemplateID string `json:"template_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		record, err := p.GetOrInitProfile(c.Request.Context(), id, callerEmail(c), accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		sess := services.NewEditingSession(record, accessToken)
		s.OpenSelector(sess)
		if err := s.Select(c.Request.Context(), sess, req.TemplateID); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"success":          false,
				"error":            err.Error(),
				"profile_template": sess.Record.ProfileTemplate,
			})
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"profile_template": sess.Record.ProfileTemplate,
		}, "Template selected"))
	}
}
