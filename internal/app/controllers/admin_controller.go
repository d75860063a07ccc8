package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// AdminController handles administrative reporting and user management
type AdminController struct {
	userService         services.UserService
	registrationService services.RegistrationService
}

// NewAdminController creates a new AdminController
func NewAdminController(userService services.UserService, registrationService services.RegistrationService) *AdminController {
	return &AdminController{
		userService:         userService,
		registrationService: registrationService,
	}
}

func parseOptionalID(ctx *gin.Context, name, message string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(message))
		return nil, false
	}
	return &parsed, true
}

// ListStudents retrieves joined student records for the admin listing
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Full name filter"
// @Param matric_no query string false "Matric number filter"
// @Param faculty_id query int false "Faculty filter"
// @Param department_id query int false "Department filter"
// @Success 200 {array} models.StudentRecord "Students"
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	facultyID, ok := parseOptionalID(ctx, "faculty_id", "Invalid faculty_id")
	if !ok {
		return
	}
	departmentID, ok := parseOptionalID(ctx, "department_id", "Invalid department_id")
	if !ok {
		return
	}

	query := &repositories.StudentQuery{
		Name:         strings.TrimSpace(ctx.Query("name")),
		MatricNo:     strings.TrimSpace(ctx.Query("matric_no")),
		FacultyID:    facultyID,
		DepartmentID: departmentID,
	}

	students, err := c.userService.ListStudents(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// ExportStudentsCSV downloads the student roster as a CSV file
// @Summary Export students as CSV
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} binary "Student roster"
// @Router /admin/students/export [get]
func (c *AdminController) ExportStudentsCSV(ctx *gin.Context) {
	data, err := c.userService.ExportStudentsCSV(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="students.csv"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}

// ListSubmittedRegistrations retrieves submitted registrations for review
// @Summary List submitted registrations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param academic_year_id query int false "Academic year filter"
// @Success 200 {array} models.SubmittedRegistration "Submitted registrations"
// @Router /admin/registrations/submitted [get]
func (c *AdminController) ListSubmittedRegistrations(ctx *gin.Context) {
	academicYearID, ok := parseOptionalID(ctx, "academic_year_id", "Invalid academic_year_id")
	if !ok {
		return
	}

	submitted, err := c.registrationService.ListSubmittedRegistrations(ctx.Request.Context(), academicYearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submitted)
}

// UpdateUserRole changes a user's role
// @Summary Update a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.RoleResponse "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid role supplied"
// @Router /admin/users/{id}/role [patch]
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	actor, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid user id")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Role) == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("role is required"))
		return
	}

	user, err := c.userService.UpdateRole(ctx.Request.Context(), actor, id, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RoleResponse{ID: user.ID, Role: string(user.Role)})
}
