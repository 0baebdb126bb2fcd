package models

import (
	"time"
)

// InsuranceCompany represents an insurer the agency sells policies for
type InsuranceCompany struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	OfferedTypes []CompanyInsuranceType `gorm:"foreignKey:CompanyID" json:"offered_types,omitempty"`
}

// TableName specifies the table name for InsuranceCompany
func (InsuranceCompany) TableName() string {
	return "insurance_companies"
}

// CompanyInsuranceType links a company to an insurance type it offers and
// fixes the pricing mechanism used to quote that type.
type CompanyInsuranceType struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CompanyID     uint      `gorm:"not null;index:idx_company_type,unique" json:"company_id"`
	InsuranceType string    `gorm:"size:40;not null;index:idx_company_type,unique" json:"insurance_type"`
	PricingType   string    `gorm:"size:30;not null" json:"pricing_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for CompanyInsuranceType
func (CompanyInsuranceType) TableName() string {
	return "company_insurance_types"
}

// Insurance type constants
const (
	InsuranceTypeComprehensive    = "comprehensive"
	InsuranceTypeThirdParty       = "third_party"
	InsuranceTypeCompulsory       = "compulsory"
	InsuranceTypeAccidentWaiver   = "accident_fee_waiver"
	InsuranceTypeRoadService      = "road_service"
)

// Pricing type constants. Comprehensive and third-party quote against a rule
// matrix, the accident fee waiver is a flat fee, compulsory is entered
// manually and road service is priced by its own entity.
const (
	PricingTypeMatrix      = "matrix"
	PricingTypeFixedAmount = "fixed_amount"
	PricingTypeNone        = "none"
)

// Offers returns true if the company offers the given insurance type
func (c *InsuranceCompany) Offers(insuranceType string) bool {
	for _, t := range c.OfferedTypes {
		if t.InsuranceType == insuranceType {
			return true
		}
	}
	return false
}

// OffersPricingType returns true if any offered type uses the given pricing type
func (c *InsuranceCompany) OffersPricingType(pricingType string) bool {
	for _, t := range c.OfferedTypes {
		if t.PricingType == pricingType {
			return true
		}
	}
	return false
}

// Driver age group constants used by the pricing matrix
const (
	AgeGroupUnder24 = "under_24"
	AgeGroup24To60  = "24_to_60"
	AgeGroupOver60  = "over_60"
)

// ValidAgeGroup reports whether g is a known driver age group
func ValidAgeGroup(g string) bool {
	switch g {
	case AgeGroupUnder24, AgeGroup24To60, AgeGroupOver60:
		return true
	}
	return false
}
