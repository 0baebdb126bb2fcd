package models

import (
	"time"
)

// Revenue is an agency income record. The ledger services write one row per
// policy payment and per transfer customer fee; the write is best-effort and
// never blocks the policy mutation that produced it.
type Revenue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SourceType  string    `gorm:"size:40;not null;index" json:"source_type"`
	SourceID    uint      `gorm:"index" json:"source_id"`
	Description string    `gorm:"type:text" json:"description"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	EntryDate   time.Time `gorm:"type:date;not null;index" json:"entry_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Revenue
func (Revenue) TableName() string {
	return "revenues"
}

// Expense is an agency outgoing record (policy refunds, transfer company fees).
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SourceType  string    `gorm:"size:40;not null;index" json:"source_type"`
	SourceID    uint      `gorm:"index" json:"source_id"`
	Description string    `gorm:"type:text" json:"description"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	EntryDate   time.Time `gorm:"type:date;not null;index" json:"entry_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// Source type constants for revenue/expense rows
const (
	FinanceSourcePolicyPayment  = "policy_payment"
	FinanceSourcePolicyRefund   = "policy_refund"
	FinanceSourceTransferFee    = "transfer_fee"
	FinanceSourceManual         = "manual"
)
