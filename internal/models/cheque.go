package models

import (
	"time"
)

// Cheque is a bank instrument tracked on its own. It references the policy,
// vehicle and customer it was received for by id only — no ownership, the
// rows survive a policy transfer or cancellation.
type Cheque struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	GUID           string     `gorm:"size:36;uniqueIndex" json:"guid"`
	ChequeNumber   string     `gorm:"size:40;not null;index" json:"cheque_number"`
	BankName       string     `gorm:"size:80" json:"bank_name"`
	DueDate        time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	Amount         float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status         string     `gorm:"default:pending;not null;index" json:"status"`
	ClearedDate    *time.Time `gorm:"type:date" json:"cleared_date"`
	ReturnedDate   *time.Time `gorm:"type:date" json:"returned_date"`
	ReturnedReason *string    `gorm:"type:text" json:"returned_reason"`
	PolicyID       *uint      `gorm:"index" json:"policy_id"`
	VehicleID      *uint      `gorm:"index" json:"vehicle_id"`
	CustomerID     *uint      `gorm:"index" json:"customer_id"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Cheque
func (Cheque) TableName() string {
	return "cheques"
}

// Cheque status constants
const (
	ChequeStatusPending   = "pending"
	ChequeStatusCleared   = "cleared"
	ChequeStatusReturned  = "returned"
	ChequeStatusCancelled = "cancelled"
)

// ValidChequeStatus reports whether s is a known cheque status
func ValidChequeStatus(s string) bool {
	switch s {
	case ChequeStatusPending, ChequeStatusCleared, ChequeStatusReturned, ChequeStatusCancelled:
		return true
	}
	return false
}

// MayTransition returns true if the cheque can move to the target status.
// All transitions leave pending; cleared, returned and cancelled are terminal.
func (c *Cheque) MayTransition(target string) bool {
	if c.Status != ChequeStatusPending {
		return false
	}
	switch target {
	case ChequeStatusCleared, ChequeStatusReturned, ChequeStatusCancelled:
		return true
	}
	return false
}

// IsDue returns true for pending cheques whose due date has passed
func (c *Cheque) IsDue() bool {
	return c.Status == ChequeStatusPending && time.Now().After(c.DueDate)
}

// ChequeResponse is the JSON response format for cheques
type ChequeResponse struct {
	ID             uint       `json:"id"`
	GUID           string     `json:"guid"`
	ChequeNumber   string     `json:"cheque_number"`
	BankName       string     `json:"bank_name"`
	DueDate        time.Time  `json:"due_date"`
	Amount         float64    `json:"amount"`
	Status         string     `json:"status"`
	ClearedDate    *time.Time `json:"cleared_date"`
	ReturnedDate   *time.Time `json:"returned_date"`
	ReturnedReason *string    `json:"returned_reason"`
	PolicyID       *uint      `json:"policy_id"`
	VehicleID      *uint      `json:"vehicle_id"`
	CustomerID     *uint      `json:"customer_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToResponse converts Cheque to ChequeResponse
func (c *Cheque) ToResponse() ChequeResponse {
	return ChequeResponse{
		ID:             c.ID,
		GUID:           c.GUID,
		ChequeNumber:   c.ChequeNumber,
		BankName:       c.BankName,
		DueDate:        c.DueDate,
		Amount:         c.Amount,
		Status:         c.Status,
		ClearedDate:    c.ClearedDate,
		ReturnedDate:   c.ReturnedDate,
		ReturnedReason: c.ReturnedReason,
		PolicyID:       c.PolicyID,
		VehicleID:      c.VehicleID,
		CustomerID:     c.CustomerID,
		CreatedAt:      c.CreatedAt,
	}
}
