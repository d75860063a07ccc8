package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/pdfgen"
)

// RegistrationController handles course registration operations
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

// CreateRegistration opens a registration for the current student
// @Summary Create a registration
// @Description Opens an unsubmitted registration for an academic year; requires an approved fee payment
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRegistrationRequest true "Registration information"
// @Success 201 {object} models.CourseRegistration "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Fee payment not approved"
// @Router /registrations [post]
func (c *RegistrationController) CreateRegistration(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	var req dto.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	registration, err := c.registrationService.CreateRegistration(ctx.Request.Context(), user, req.AcademicYearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, registration)
}

// ListRegistrations retrieves the current student's registrations
// @Summary List own registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CourseRegistration "Registrations"
// @Router /registrations [get]
func (c *RegistrationController) ListRegistrations(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	registrations, err := c.registrationService.ListRegistrationsForStudent(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, registrations)
}

func (c *RegistrationController) loadViewableRegistration(ctx *gin.Context) (*models.CourseRegistration, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return nil, false
	}
	id, ok := parseIDParam(ctx, "id", "Invalid registration id")
	if !ok {
		return nil, false
	}

	registration, err := c.registrationService.GetRegistrationWithItems(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if registration.StudentID != user.ID && user.Role != models.RoleAdmin {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("Not allowed to view this registration"))
		return nil, false
	}
	return registration, true
}

// GetRegistration retrieves a registration with its items
// @Summary Get registration details
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} models.CourseRegistration "Registration"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this registration"
// @Router /registrations/{id} [get]
func (c *RegistrationController) GetRegistration(ctx *gin.Context) {
	registration, ok := c.loadViewableRegistration(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, registration)
}

// GetRegistrationPDF renders a registration as a printable PDF slip
// @Summary Download registration PDF
// @Tags registrations
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {file} binary "Registration slip"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this registration"
// @Router /registrations/{id}/pdf [get]
func (c *RegistrationController) GetRegistrationPDF(ctx *gin.Context) {
	registration, ok := c.loadViewableRegistration(ctx)
	if !ok {
		return
	}

	pdfBytes, err := pdfgen.RegistrationSlip(registration)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("registration-%d.pdf", registration.ID)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// AddItem adds a course to a registration
// @Summary Add a course to a registration
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body dto.AddRegistrationItemRequest true "Course to add"
// @Success 201 {object} models.RegistrationItem "Item added"
// @Failure 400 {object} dto.ErrorResponse "Course already added"
// @Router /registrations/{id}/items [post]
func (c *RegistrationController) AddItem(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid registration id")
	if !ok {
		return
	}

	var req dto.AddRegistrationItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	item, err := c.registrationService.AddItem(ctx.Request.Context(), user, id, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// RemoveItem soft-deletes a registration item
// @Summary Remove a course from a registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param itemId path int true "Registration item ID"
// @Success 200 {object} models.RegistrationItem "Item removed"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /registrations/items/{itemId} [delete]
func (c *RegistrationController) RemoveItem(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	itemID, ok := parseIDParam(ctx, "itemId", "Invalid registration item id")
	if !ok {
		return
	}

	item, err := c.registrationService.RemoveItem(ctx.Request.Context(), user, itemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// SubmitRegistration sets or clears the submitted flag
// @Summary Submit or reopen a registration
// @Description A missing submitted field counts as submitting
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body dto.SubmitRegistrationRequest false "Submit flag"
// @Success 200 {object} models.CourseRegistration "Registration"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to submit this registration"
// @Router /registrations/{id}/submit [post]
func (c *RegistrationController) SubmitRegistration(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid registration id")
	if !ok {
		return
	}

	var req dto.SubmitRegistrationRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
			return
		}
	}
	submitted := true
	if req.Submitted != nil {
		submitted = *req.Submitted
	}

	registration, err := c.registrationService.SubmitRegistration(ctx.Request.Context(), user, id, submitted)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, registration)
}
