package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// FacultyController handles faculty operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

func parseIDParam(ctx *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(message))
		return 0, false
	}
	return id, true
}

// CreateFaculty handles faculty creation
// @Summary Create a faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty information"
// @Success 201 {object} models.Faculty "Faculty created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /faculties [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, faculty)
}

// ListFaculties retrieves all faculties
// @Summary List faculties
// @Tags faculties
// @Produce json
// @Success 200 {array} models.Faculty "Faculties"
// @Router /faculties [get]
func (c *FacultyController) ListFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.ListFaculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, faculties)
}

// GetFaculty retrieves a faculty by ID
// @Summary Get faculty details
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID"
// @Success 200 {object} models.Faculty "Faculty"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [get]
func (c *FacultyController) GetFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid faculty id")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, faculty)
}

// UpdateFaculty applies a partial faculty update
// @Summary Update a faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Param request body dto.UpdateFacultyRequest true "Updated fields"
// @Success 200 {object} models.Faculty "Faculty updated"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [patch]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid faculty id")
	if !ok {
		return
	}

	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, faculty)
}

// DeleteFaculty removes a faculty
// @Summary Delete a faculty
// @Tags faculties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.SuccessResponse "Faculty deleted"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid faculty id")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Faculty deleted"})
}
