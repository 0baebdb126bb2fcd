package models

import (
	"time"
)

// AgentTransaction is an append-only commission ledger entry. A credit means
// the company owes the agent; a debit means the agent owes the company.
// After creation only Status and SettledDate may change — corrections are
// made with a reversing entry, never by editing or deleting a past one.
type AgentTransaction struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	AgentID     uint       `gorm:"not null;index" json:"agent_id"`
	TxnType     string     `gorm:"size:10;not null;index" json:"txn_type"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status      string     `gorm:"default:pending;not null;index" json:"status"`
	SettledDate *time.Time `gorm:"type:date" json:"settled_date"`
	Description string     `gorm:"type:text" json:"description"`
	ReversesID  *uint      `gorm:"index" json:"reverses_id"`
	PolicyID    *uint      `gorm:"index" json:"policy_id"`
	VehicleID   *uint      `gorm:"index" json:"vehicle_id"`
	CustomerID  *uint      `gorm:"index" json:"customer_id"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Agent User `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

// TableName specifies the table name for AgentTransaction
func (AgentTransaction) TableName() string {
	return "agent_transactions"
}

// Transaction type constants
const (
	TxnTypeCredit = "credit"
	TxnTypeDebit  = "debit"
)

// Transaction status constants
const (
	TxnStatusPending   = "pending"
	TxnStatusSettled   = "settled"
	TxnStatusCancelled = "cancelled"
)

// MaySettle returns true if the entry can be marked settled
func (t *AgentTransaction) MaySettle() bool {
	return t.Status == TxnStatusPending
}

// MayCancel returns true if the entry can be marked cancelled
func (t *AgentTransaction) MayCancel() bool {
	return t.Status == TxnStatusPending
}

// OppositeType returns the reversing transaction type
func (t *AgentTransaction) OppositeType() string {
	if t.TxnType == TxnTypeCredit {
		return TxnTypeDebit
	}
	return TxnTypeCredit
}

// AgentTransactionResponse is the JSON response format for commission entries
type AgentTransactionResponse struct {
	ID          uint       `json:"id"`
	AgentID     uint       `json:"agent_id"`
	AgentName   string     `json:"agent_name,omitempty"`
	TxnType     string     `json:"txn_type"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	SettledDate *time.Time `json:"settled_date"`
	Description string     `json:"description"`
	ReversesID  *uint      `json:"reverses_id"`
	PolicyID    *uint      `json:"policy_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToResponse converts AgentTransaction to AgentTransactionResponse
func (t *AgentTransaction) ToResponse() AgentTransactionResponse {
	resp := AgentTransactionResponse{
		ID:          t.ID,
		AgentID:     t.AgentID,
		TxnType:     t.TxnType,
		Amount:      t.Amount,
		Status:      t.Status,
		SettledDate: t.SettledDate,
		Description: t.Description,
		ReversesID:  t.ReversesID,
		PolicyID:    t.PolicyID,
		CreatedAt:   t.CreatedAt,
	}
	if t.Agent.ID != 0 {
		resp.AgentName = t.Agent.FullName
	}
	return resp
}
