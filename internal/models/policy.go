package models

import (
	"time"
)

// Policy represents a vehicle's insurance record and its payment ledger.
// PaidAmount and RemainingDebt are derived: paid == Σ payments.amount and
// remaining == amount − paid. Recompute restores both; every mutation must
// call it before persisting.
type Policy struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	VehicleID     uint       `gorm:"not null;index" json:"vehicle_id"`
	CompanyID     uint       `gorm:"not null;index" json:"company_id"`
	AgentID       *uint      `gorm:"index" json:"agent_id"`
	InsuranceType string     `gorm:"size:40;not null" json:"insurance_type"`
	Amount        float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaidAmount    float64    `gorm:"type:decimal(12,2);default:0;not null" json:"paid_amount"`
	RemainingDebt float64    `gorm:"type:decimal(12,2);default:0;not null" json:"remaining_debt"`
	Status        string     `gorm:"default:active;not null;index" json:"status"`
	RefundAmount  *float64   `gorm:"type:decimal(12,2)" json:"refund_amount"`
	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time  `gorm:"type:date;not null" json:"end_date"`
	CancelledAt   *time.Time `gorm:"index" json:"cancelled_at"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Vehicle  Vehicle          `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Company  InsuranceCompany `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Payments []Payment        `gorm:"foreignKey:PolicyID" json:"payments,omitempty"`
}

// TableName specifies the table name for Policy
func (Policy) TableName() string {
	return "policies"
}

// Policy status constants
const (
	PolicyStatusActive    = "active"
	PolicyStatusCancelled = "cancelled"
)

// MayCancel returns true if the policy can still be cancelled
func (p *Policy) MayCancel() bool {
	return p.Status == PolicyStatusActive
}

// MayTransfer returns true if the policy can be moved to another vehicle
func (p *Policy) MayTransfer() bool {
	return p.Status == PolicyStatusActive
}

// IsFullyPaid returns true when no debt remains
func (p *Policy) IsFullyPaid() bool {
	return p.RemainingDebt <= 0
}

// Recompute rebuilds PaidAmount and RemainingDebt from the payment list.
// Pure over the in-memory struct; callers persist the result inside the
// same transaction that changed the payments.
func (p *Policy) Recompute() {
	var paid float64
	for _, payment := range p.Payments {
		paid += payment.Amount
	}
	p.PaidAmount = paid
	p.RemainingDebt = p.Amount - paid
}

// Payment is a single payment event against a policy. A cheque-backed
// payment carries the cheque id; cash/card/transfer payments do not.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PolicyID      uint      `gorm:"not null;index" json:"policy_id"`
	Amount        float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method        string    `gorm:"size:20;not null" json:"method"`
	PaymentDate   time.Time `gorm:"type:date;not null" json:"payment_date"`
	ReceiptNumber string    `gorm:"size:40;not null" json:"receipt_number"`
	ChequeID      *uint     `gorm:"index" json:"cheque_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Cheque *Cheque `gorm:"foreignKey:ChequeID" json:"cheque,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment method constants
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheque   = "cheque"
)

// ValidPaymentMethod reports whether m is an accepted payment method
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID            uint      `json:"id"`
	PolicyID      uint      `json:"policy_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	PaymentDate   time.Time `json:"payment_date"`
	ReceiptNumber string    `json:"receipt_number"`
	ChequeID      *uint     `json:"cheque_id,omitempty"`
	ChequeNumber  string    `json:"cheque_number,omitempty"`
	ChequeStatus  string    `json:"cheque_status,omitempty"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		PolicyID:      p.PolicyID,
		Amount:        p.Amount,
		Method:        p.Method,
		PaymentDate:   p.PaymentDate,
		ReceiptNumber: p.ReceiptNumber,
		ChequeID:      p.ChequeID,
	}
	if p.Cheque != nil {
		resp.ChequeNumber = p.Cheque.ChequeNumber
		resp.ChequeStatus = p.Cheque.Status
	}
	return resp
}

// PolicyResponse is the JSON response format for policies
type PolicyResponse struct {
	ID            uint              `json:"id"`
	VehicleID     uint              `json:"vehicle_id"`
	CompanyID     uint              `json:"company_id"`
	CompanyName   string            `json:"company_name,omitempty"`
	AgentID       *uint             `json:"agent_id"`
	InsuranceType string            `json:"insurance_type"`
	Amount        float64           `json:"amount"`
	PaidAmount    float64           `json:"paid_amount"`
	RemainingDebt float64           `json:"remaining_debt"`
	Status        string            `json:"status"`
	RefundAmount  *float64          `json:"refund_amount"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	CancelledAt   *time.Time        `json:"cancelled_at"`
	PlateNumber   string            `json:"plate_number,omitempty"`
	CustomerID    uint              `json:"customer_id,omitempty"`
	Payments      []PaymentResponse `json:"payments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToResponse converts Policy to PolicyResponse
func (p *Policy) ToResponse() PolicyResponse {
	resp := PolicyResponse{
		ID:            p.ID,
		VehicleID:     p.VehicleID,
		CompanyID:     p.CompanyID,
		AgentID:       p.AgentID,
		InsuranceType: p.InsuranceType,
		Amount:        p.Amount,
		PaidAmount:    p.PaidAmount,
		RemainingDebt: p.RemainingDebt,
		Status:        p.Status,
		RefundAmount:  p.RefundAmount,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		CancelledAt:   p.CancelledAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if p.Company.ID != 0 {
		resp.CompanyName = p.Company.Name
	}
	if p.Vehicle.ID != 0 {
		resp.PlateNumber = p.Vehicle.PlateNumber
		resp.CustomerID = p.Vehicle.CustomerID
	}

	for _, payment := range p.Payments {
		resp.Payments = append(resp.Payments, payment.ToResponse())
	}

	return resp
}
