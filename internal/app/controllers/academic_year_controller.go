package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// AcademicYearController handles academic session operations
type AcademicYearController struct {
	academicYearService services.AcademicYearService
}

// NewAcademicYearController creates a new AcademicYearController
func NewAcademicYearController(academicYearService services.AcademicYearService) *AcademicYearController {
	return &AcademicYearController{academicYearService: academicYearService}
}

// ListAcademicYears retrieves all academic years
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ItemsResponse "Academic years"
// @Router /academic-years [get]
func (c *AcademicYearController) ListAcademicYears(ctx *gin.Context) {
	years, err := c.academicYearService.ListAcademicYears(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ItemsResponse{Items: years})
}

// CreateAcademicYear handles academic year creation
// @Summary Create an academic year
// @Description Creates a session; flagging it current clears the flag elsewhere
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year information"
// @Success 201 {object} models.AcademicYear "Academic year created"
// @Failure 403 {object} dto.ErrorResponse "Only administrators can manage academic years"
// @Router /academic-years [post]
func (c *AcademicYearController) CreateAcademicYear(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	var req dto.CreateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	year, err := c.academicYearService.CreateAcademicYear(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, year)
}
