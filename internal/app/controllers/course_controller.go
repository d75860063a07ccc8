package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} models.Course "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// ListCourses retrieves courses scoped to the caller's role
// @Summary List courses
// @Description Students see active courses from their own faculty and level; staff may filter freely
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param faculty_id query int false "Faculty ID filter"
// @Param department_id query int false "Department ID filter"
// @Param level query int false "Level filter"
// @Param is_active query bool false "Active flag filter"
// @Param include_inactive query bool false "Include inactive courses"
// @Success 200 {object} dto.ItemsResponse "Courses"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	filters := &dto.CourseFilters{
		FacultyID:       ctx.Query("faculty_id"),
		DepartmentID:    ctx.Query("department_id"),
		Level:           ctx.Query("level"),
		IsActive:        ctx.Query("is_active"),
		IncludeInactive: ctx.Query("include_inactive"),
	}

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), user, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ItemsResponse{Items: courses})
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid course id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// UpdateCourse applies a partial course update
// @Summary Update a course
// @Description Admins may update any course; lecturers only their own
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Updated fields"
// @Success 200 {object} models.Course "Course updated"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid course id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.SuccessResponse "Course deleted"
// @Failure 403 {object} dto.ErrorResponse "Cannot delete this course"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid course id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Course deleted"})
}
