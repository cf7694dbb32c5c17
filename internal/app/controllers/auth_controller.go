package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/app/services"
	"github.com/retrieverhq/retriever-study/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// GetGoogleLoginURL handles issuing the provider consent screen URL
// @Summary Get Google login URL
// @Description Returns the Google OAuth consent screen URL the client should redirect to
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse "Login URL"
// @Router /auth/google/url [get]
func (c *AuthController) GetGoogleLoginURL(ctx *gin.Context) {
	state := uuid.New().String()
	url := c.authService.GetLoginURL(state)

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"url":   url,
		"state": state,
	}, "Login URL generated"))
}

// LoginWithGoogle handles the OAuth code exchange
// @Summary Log in with Google
// @Description Exchanges a Google authorization code for an access token. Only campus email accounts are accepted.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "Authorization code"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Google authentication failed"
// @Failure 403 {object} dto.ErrorResponse "Email domain not allowed"
// @Router /auth/google [post]
func (c *AuthController) LoginWithGoogle(ctx *gin.Context) {
	var req dto.GoogleLoginRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	tokens, err := c.authService.LoginWithGoogle(ctx, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens, "Login successful"))
}
