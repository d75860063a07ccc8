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

// DepartmentController handles department operations
type DepartmentController struct {
	facultyService services.FacultyService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(facultyService services.FacultyService) *DepartmentController {
	return &DepartmentController{facultyService: facultyService}
}

// CreateDepartment handles department creation
// @Summary Create a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} models.Department "Department created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	department, err := c.facultyService.CreateDepartment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, department)
}

// ListDepartments retrieves departments, optionally filtered by faculty
// @Summary List departments
// @Tags departments
// @Produce json
// @Param faculty_id query int false "Faculty ID filter"
// @Success 200 {array} models.Department "Departments"
// @Router /departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	var facultyID *int64
	if raw := ctx.Query("faculty_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("faculty_id must be a positive integer"))
			return
		}
		facultyID = &parsed
	}

	departments, err := c.facultyService.ListDepartments(ctx.Request.Context(), facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, departments)
}

// GetDepartment retrieves a department by ID
// @Summary Get department details
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} models.Department "Department"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid department id")
	if !ok {
		return
	}

	department, err := c.facultyService.GetDepartment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, department)
}

// UpdateDepartment applies a partial department update
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Updated fields"
// @Success 200 {object} models.Department "Department updated"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [patch]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid department id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	department, err := c.facultyService.UpdateDepartment(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, department)
}

// DeleteDepartment removes a department
// @Summary Delete a department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.SuccessResponse "Department deleted"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid department id")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteDepartment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Department deleted"})
}
