package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusDeclined = "declined"
)

// AllowedPaymentStatuses is the set accepted by the admin status filter.
var AllowedPaymentStatuses = map[string]bool{
	PaymentStatusPending:  true,
	PaymentStatusApproved: true,
	PaymentStatusDeclined: true,
}

// SchoolFeePolicy fixes the fee amount for one academic year.
type SchoolFeePolicy struct {
	ID               int64     `json:"id"`
	AcademicYearID   int64     `json:"academic_year_id"`
	Amount           int64     `json:"amount"`
	CreatedBy        *int64    `json:"created_by"`
	UpdatedBy        *int64    `json:"updated_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	AcademicYearName string    `json:"academic_year_name,omitempty"` // Joined on reads
}

// UserRef is a compact user reference embedded in joined rows.
type UserRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// SchoolFeePayment records a student's fee payment declaration for an
// academic year. One per student per year; admins approve or decline, and
// only declined payments may be resubmitted.
type SchoolFeePayment struct {
	ID               int64      `json:"id"`
	StudentID        int64      `json:"student_id"`
	AcademicYearID   int64      `json:"academic_year_id"`
	Amount           int64      `json:"amount"`
	Status           string     `json:"status"`
	PaymentReference *string    `json:"payment_reference"`
	Notes            *string    `json:"notes"`
	ApprovedBy       *int64     `json:"approved_by"`
	ApprovedAt       *time.Time `json:"approved_at"`
	DeclinedBy       *int64     `json:"declined_by"`
	DeclinedAt       *time.Time `json:"declined_at"`
	DeclinedReason   *string    `json:"declined_reason"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined on reads.
	AcademicYearName string   `json:"academic_year_name,omitempty"`
	Student          *UserRef `json:"student"`
	ApprovedByUser   *UserRef `json:"approved_by_user"`
	DeclinedByUser   *UserRef `json:"declined_by_user"`
}
