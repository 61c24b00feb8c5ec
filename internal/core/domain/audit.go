package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited API action.
type AuditAction string

const (
	AuditActionVerify        AuditAction = "VERIFY"
	AuditActionVerdictLookup AuditAction = "VERDICT_LOOKUP"
)

// AuditLog records one audited API call made by an authenticated client.
type AuditLog struct {
	ID         uuid.UUID   `json:"id"`
	ClientID   string      `json:"client_id,omitempty"`
	Action     AuditAction `json:"action"`
	ResourceID string      `json:"resource_id,omitempty"` // transaction id when known
	Details    string      `json:"details,omitempty"`     // JSON string
	IPAddress  string      `json:"ip_address"`
	CreatedAt  time.Time   `json:"created_at"`
}
