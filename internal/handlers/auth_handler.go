package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mawuli-dev/glambook/internal/services"
	"github.com/supabase-community/gotrue-go/types"
)

func SignUp(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		created, err := p.SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(201, created)
	}
}

func Login(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		authResponse, err := p.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(401, gin.H{"error": err.Error(), "message": "invalid email or password"})
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		if tokenRes, ok := authResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			// Access token - expires in 1 hour (3600 seconds)
			c.SetCookie(
				"access_token",
				tokenRes.AccessToken,
				tokenRes.ExpiresIn,
				"/",
				"", // let Gin pick current domain
				isProduction,
				true,
			)

			// Refresh token - expires in 30 days
			c.SetCookie(
				"refresh_token",
				tokenRes.RefreshToken,
				3600*24*30,
				"/",
				"",
				isProduction,
				true,
			)

			// Return user info but not tokens
			c.JSON(200, gin.H{
				"user": tokenRes.User,
			})
			return
		}

		c.JSON(500, gin.H{"error": "invalid token response"})
	}
}

// GoogleAuth initiates Google OAuth flow via Supabase
func GoogleAuth(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirectTo := c.Query("redirect_to")
		if redirectTo == "" {
			frontendURL := os.Getenv("FRONTEND_URL")
			if frontendURL == "" {
				frontendURL = "http://localhost:3000"
			}
			redirectTo = frontendURL + "/auth/callback"
		}

		authURL := p.GetGoogleAuthURL(redirectTo)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// GoogleAuthCallback handles the callback from Google OAuth.
// Supabase sends tokens as URL fragments which are handled client-side; this
// endpoint mainly forwards errors.
func GoogleAuthCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		oauthError := c.Query("error")
		errorDescription := c.Query("error_description")

		frontendURL := os.Getenv("FRONTEND_URL")
		if frontendURL == "" {
			frontendURL = "http://localhost:3000"
		}

		if oauthError != "" {
			redirectURL := fmt.Sprintf("%s/auth/signin?error=%s&error_description=%s",
				frontendURL, oauthError, errorDescription)
			c.Redirect(http.StatusTemporaryRedirect, redirectURL)
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, frontendURL+"/auth/callback")
	}
}

// Logout handler
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out successfully",
		})
	}
}
