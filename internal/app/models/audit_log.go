package models

import (
	"encoding/json"
	"time"
)

// Audit action types recorded for privileged decisions.
const (
	AuditActionPaymentApproved = "school_fee_payment.approved"
	AuditActionPaymentDeclined = "school_fee_payment.declined"
	AuditActionRoleUpdated     = "user.role_updated"
)

// AuditLog is an append-only record of a privileged action. user_id goes
// NULL if the acting account is later deleted.
type AuditLog struct {
	ID         int64           `json:"id"`
	UserID     *int64          `json:"user_id"`
	ActionType string          `json:"action_type"`
	ActionData json.RawMessage `json:"action_data"`
	CreatedAt  time.Time       `json:"created_at"`
}
