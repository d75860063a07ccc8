package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/middleware"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// SchoolFeeController handles fee policy and payment operations
type SchoolFeeController struct {
	schoolFeeService services.SchoolFeeService
}

// NewSchoolFeeController creates a new SchoolFeeController
func NewSchoolFeeController(schoolFeeService services.SchoolFeeService) *SchoolFeeController {
	return &SchoolFeeController{schoolFeeService: schoolFeeService}
}

// ListPolicies retrieves all fee policies
// @Summary List fee policies
// @Tags school-fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ItemsResponse "Fee policies"
// @Router /school-fees/policies [get]
func (c *SchoolFeeController) ListPolicies(ctx *gin.Context) {
	policies, err := c.schoolFeeService.ListPolicies(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ItemsResponse{Items: policies})
}

// UpsertPolicy creates or updates the fee policy for an academic year
// @Summary Set the fee for an academic year
// @Tags school-fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertPolicyRequest true "Policy information"
// @Success 200 {object} models.SchoolFeePolicy "Fee policy"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /school-fees/policies [put]
func (c *SchoolFeeController) UpsertPolicy(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	var req dto.UpsertPolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	policy, err := c.schoolFeeService.UpsertPolicy(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, policy)
}

// ListPayments retrieves payments scoped to the caller's role
// @Summary List fee payments
// @Description Students see only their own payments; admins may filter by status, year and student
// @Tags school-fees
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param academic_year_id query int false "Academic year filter"
// @Param student_id query int false "Student filter"
// @Success 200 {object} dto.ItemsResponse "Payments"
// @Router /school-fees/payments [get]
func (c *SchoolFeeController) ListPayments(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	filters := &dto.PaymentFilters{
		Status:         ctx.Query("status"),
		AcademicYearID: ctx.Query("academic_year_id"),
		StudentID:      ctx.Query("student_id"),
	}

	payments, err := c.schoolFeeService.ListPayments(ctx.Request.Context(), user, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ItemsResponse{Items: payments})
}

// CreatePayment records the current student's fee payment
// @Summary Declare a fee payment
// @Description Records a pending payment at the policy amount; declined payments are reset in place
// @Tags school-fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Payment information"
// @Success 201 {object} models.SchoolFeePayment "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "A payment already exists for this academic year"
// @Router /school-fees/payments [post]
func (c *SchoolFeeController) CreatePayment(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	payment, err := c.schoolFeeService.CreatePayment(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, payment)
}

// ApprovePayment marks a pending payment approved
// @Summary Approve a fee payment
// @Tags school-fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} models.SchoolFeePayment "Payment approved"
// @Failure 400 {object} dto.ErrorResponse "Payment is already approved"
// @Router /school-fees/payments/{id}/approve [post]
func (c *SchoolFeeController) ApprovePayment(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid payment id supplied")
	if !ok {
		return
	}

	payment, err := c.schoolFeeService.ApprovePayment(ctx.Request.Context(), user, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// DeclinePayment marks a pending payment declined with a reason
// @Summary Decline a fee payment
// @Tags school-fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.DeclinePaymentRequest true "Decline reason"
// @Success 200 {object} models.SchoolFeePayment "Payment declined"
// @Failure 400 {object} dto.ErrorResponse "Provide a reason when declining a payment"
// @Router /school-fees/payments/{id}/decline [post]
func (c *SchoolFeeController) DeclinePayment(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}
	id, ok := parseIDParam(ctx, "id", "Invalid payment id supplied")
	if !ok {
		return
	}

	var req dto.DeclinePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	payment, err := c.schoolFeeService.DeclinePayment(ctx.Request.Context(), user, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, payment)
}
