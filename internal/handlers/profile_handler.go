package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/helpers"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/services"
)

// callerID pulls the authenticated owner's id and access token out of the
// request context set by the auth middleware.
func callerID(c *gin.Context) (uuid.UUID, string, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return uuid.Nil, "", false
	}
	claims, ok := userClaims.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return uuid.Nil, "", false
	}
	accessToken, err := c.Cookie("access_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("access token not found"))
		return uuid.Nil, "", false
	}
	return id, accessToken, true
}

func callerEmail(c *gin.Context) string {
	if userClaims, exists := c.Get("user"); exists {
		if claims, ok := userClaims.(*helpers.EnhancedClaims); ok {
			return claims.Email
		}
	}
	return ""
}

// GetMyProfile returns the owner's private record, initialized with defaults
// when nothing was saved yet. Email is visible here and only here.
func GetMyProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		profile, err := p.GetOrInitProfile(c.Request.Context(), id, callerEmail(c), accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

// SaveMyProfile upserts the whole form.
func SaveMyProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		var profile models.Profile
		if err := c.ShouldBindJSON(&profile); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		// The path identity wins over whatever id the payload carries
		profile.ID = id
		if profile.Email == "" {
			profile.Email = callerEmail(c)
		}

		saved, err := p.SaveProfile(c.Request.Context(), &profile, accessToken)
		if err != nil {
			if errors.Is(err, models.ErrPortfolioFull) {
				c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(saved, "Profile updated successfully"))
	}
}

// PatchMyProfile updates a subset of fields.
func PatchMyProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := p.UpdateFields(c.Request.Context(), fields, id, accessToken)
		if err != nil {
			if errors.Is(err, models.ErrPortfolioFull) {
				c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Profile updated successfully"))
	}
}

// ProfileMeta serves the static editor catalogs so clients stay in sync.
func ProfileMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"categories":       models.Categories,
			"price_ranges":     models.PriceRanges,
			"week_days":        models.WeekDays,
			"social_platforms": models.SocialPlatforms,
			"max_portfolio":    models.MaxPortfolioImages,
		}, ""))
	}
}

// UploadPortfolioImage accepts one multipart image. The capacity check runs
// before the upload, so an 11th image is rejected without touching storage.
func UploadPortfolioImage(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		file, err := formImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		url, err := p.AddPortfolioImage(c.Request.Context(), id, file, accessToken)
		if err != nil {
			if errors.Is(err, models.ErrPortfolioFull) {
				c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"url": url}, "Image uploaded"))
	}
}

func RemovePortfolioImage(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			Index int `uri:"index"`
		}
		if err := c.ShouldBindUri(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid image index"))
			return
		}

		updated, err := p.RemovePortfolioImage(c.Request.Context(), id, req.Index, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Image removed"))
	}
}

func UploadAvatar(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		file, err := formImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		url, err := p.UploadAvatar(c.Request.Context(), id, file, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"avatar_url": url}, "Avatar uploaded"))
	}
}

func UploadBanner(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, accessToken, ok := callerID(c)
		if !ok {
			return
		}

		file, err := formImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		url, err := p.UploadBanner(c.Request.Context(), id, file, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"banner_url": url}, "Banner uploaded"))
	}
}

// formImage pulls the uploaded file out of a multipart form and opens it for
// streaming to the asset store.
func formImage(c *gin.Context) (interface{}, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, errors.New("image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("failed to open uploaded file")
	}
	return file, nil
}
