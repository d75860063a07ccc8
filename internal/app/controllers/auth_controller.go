package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
	userService services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, userService services.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

// Signup handles new account registration
// @Summary Register a new account
// @Description Creates a new account with the default role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account information"
// @Success 201 {object} models.User "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	user, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.userService.GetUserWithProfile(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// Login handles credential verification and token issuance
// @Summary Log in
// @Description Verifies credentials and returns a bearer token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} auth.TokenPair "Token pair"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tokens)
}

// Refresh handles refresh token exchange
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a fresh bearer token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} auth.TokenPair "Token pair"
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	tokens, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tokens)
}
