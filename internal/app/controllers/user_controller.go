package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// UserController handles the current user's account and student profile
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Me retrieves the authenticated user's account
// @Summary Get current user
// @Description Retrieves the authenticated user with their student profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Current user"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	withProfile, err := c.userService.GetUserWithProfile(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, withProfile)
}

// CreateStudentProfile creates the authenticated user's student profile
// @Summary Create student profile
// @Description Creates the student profile and promotes the account to the student role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentProfileRequest true "Profile information"
// @Success 201 {object} models.StudentProfile "Profile created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /users/me/student-profile [post]
func (c *UserController) CreateStudentProfile(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	var req dto.CreateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	profile, err := c.userService.CreateStudentProfile(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, profile)
}
