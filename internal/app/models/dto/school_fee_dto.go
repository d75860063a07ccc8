package dto

// UpsertPolicyRequest represents fee policy creation or update data
type UpsertPolicyRequest struct {
	AcademicYearID int64 `json:"academic_year_id"`
	Amount         int64 `json:"amount"`
}

// CreatePaymentRequest represents a student's fee payment declaration.
// The amount is never client-supplied; it always comes from the policy.
type CreatePaymentRequest struct {
	AcademicYearID   int64  `json:"academic_year_id"`
	PaymentReference string `json:"payment_reference"`
	Reference        string `json:"reference"` // Accepted alias for payment_reference
	Notes            string `json:"notes"`
}

// DeclinePaymentRequest represents a payment decline action
type DeclinePaymentRequest struct {
	Reason        string `json:"reason"`
	DeclineReason string `json:"decline_reason"` // Accepted alias for reason
}

// PaymentFilters represents the admin payment listing query parameters
type PaymentFilters struct {
	Status         string
	AcademicYearID string
	StudentID      string
}
