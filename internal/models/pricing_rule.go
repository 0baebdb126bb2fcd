package models

import (
	"time"
)

// PricingRule is the quoting configuration for one (company, pricing type)
// pair. The shape is a tagged union keyed by PricingType: matrix rules carry
// ordered rows, fixed-amount rules carry FixedAmount, and "none" rules exist
// only to record that the type is entered manually.
type PricingRule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index:idx_company_pricing,unique" json:"company_id"`
	PricingType string    `gorm:"size:30;not null;index:idx_company_pricing,unique" json:"pricing_type"`
	FixedAmount *float64  `gorm:"type:decimal(12,2)" json:"fixed_amount"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Company InsuranceCompany `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Rows    []PricingRuleRow `gorm:"foreignKey:RuleID" json:"rows,omitempty"`
}

// TableName specifies the table name for PricingRule
func (PricingRule) TableName() string {
	return "pricing_rules"
}

// PricingRuleRow is one matrix row. Rows are scanned in Position order and
// the first exact (vehicle type, age group) match whose range contains the
// offer amount wins — overlapping ranges resolve by insertion order.
type PricingRuleRow struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	RuleID         uint     `gorm:"not null;index" json:"rule_id"`
	Position       int      `gorm:"not null" json:"position"`
	VehicleType    string   `gorm:"size:30;not null" json:"vehicle_type"`
	DriverAgeGroup string   `gorm:"size:30;not null" json:"driver_age_group"`
	OfferAmountMin float64  `gorm:"type:decimal(12,2);not null" json:"offer_amount_min"`
	OfferAmountMax *float64 `gorm:"type:decimal(12,2)" json:"offer_amount_max"`
	Price          float64  `gorm:"type:decimal(12,2);not null" json:"price"`
}

// TableName specifies the table name for PricingRuleRow
func (PricingRuleRow) TableName() string {
	return "pricing_rule_rows"
}

// Matches returns true when the row applies to the given quote parameters.
// A nil OfferAmountMax means the range is unbounded above.
func (r *PricingRuleRow) Matches(vehicleType, ageGroup string, offerAmount float64) bool {
	if r.VehicleType != vehicleType || r.DriverAgeGroup != ageGroup {
		return false
	}
	if offerAmount < r.OfferAmountMin {
		return false
	}
	if r.OfferAmountMax != nil && offerAmount > *r.OfferAmountMax {
		return false
	}
	return true
}

// RoadService is a roadside-assistance product priced by a vehicle-year
// threshold rather than a rule matrix.
type RoadService struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	Name        string    `gorm:"not null" json:"name"`
	NormalPrice float64   `gorm:"type:decimal(12,2);not null" json:"normal_price"`
	OldCarPrice float64   `gorm:"type:decimal(12,2);not null" json:"old_car_price"`
	CutoffYear  int       `gorm:"not null" json:"cutoff_year"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Company InsuranceCompany `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName specifies the table name for RoadService
func (RoadService) TableName() string {
	return "road_services"
}

// PriceFor returns the service price for a vehicle of the given model year.
// Vehicles older than the cutoff pay the old-car price.
func (s *RoadService) PriceFor(vehicleYear int) float64 {
	if vehicleYear < s.CutoffYear {
		return s.OldCarPrice
	}
	return s.NormalPrice
}
