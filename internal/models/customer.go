package models

import (
	"time"
)

// Customer is the root of the Customer → Vehicle → Policy aggregate.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Identity  string    `gorm:"size:40;index" json:"identity"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Email     *string   `gorm:"size:120" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// Vehicle represents a customer's vehicle. Policies hang off the vehicle.
type Vehicle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	PlateNumber string    `gorm:"size:20;not null;index" json:"plate_number"`
	Make        string    `gorm:"size:60" json:"make"`
	Model       string    `gorm:"size:60" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	VehicleType string    `gorm:"size:30;not null" json:"vehicle_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Policies []Policy `gorm:"foreignKey:VehicleID" json:"policies,omitempty"`
}

// TableName specifies the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

// Vehicle type constants used by the pricing matrix
const (
	VehicleTypeCar       = "car"
	VehicleTypePickup    = "pickup"
	VehicleTypeTruck     = "truck"
	VehicleTypeBus       = "bus"
	VehicleTypeMotorbike = "motorbike"
)

// ValidVehicleType reports whether t is a known vehicle type
func ValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeCar, VehicleTypePickup, VehicleTypeTruck, VehicleTypeBus, VehicleTypeMotorbike:
		return true
	}
	return false
}
