package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingRuleRowMatches(t *testing.T) {
	max := 300000.0
	row := PricingRuleRow{
		VehicleType:    VehicleTypeCar,
		DriverAgeGroup: AgeGroup24To60,
		OfferAmountMin: 100000,
		OfferAmountMax: &max,
		Price:          4500,
	}

	assert.True(t, row.Matches(VehicleTypeCar, AgeGroup24To60, 150000))
	// Range bounds are inclusive.
	assert.True(t, row.Matches(VehicleTypeCar, AgeGroup24To60, 100000))
	assert.True(t, row.Matches(VehicleTypeCar, AgeGroup24To60, 300000))

	assert.False(t, row.Matches(VehicleTypeCar, AgeGroup24To60, 99999.99))
	assert.False(t, row.Matches(VehicleTypeCar, AgeGroup24To60, 300000.01))
	assert.False(t, row.Matches(VehicleTypePickup, AgeGroup24To60, 150000))
	assert.False(t, row.Matches(VehicleTypeCar, AgeGroupUnder24, 150000))
}

func TestPricingRuleRowMatches_UnboundedMax(t *testing.T) {
	row := PricingRuleRow{
		VehicleType:    VehicleTypeTruck,
		DriverAgeGroup: AgeGroupOver60,
		OfferAmountMin: 500000,
		Price:          22000,
	}

	assert.True(t, row.Matches(VehicleTypeTruck, AgeGroupOver60, 500000))
	assert.True(t, row.Matches(VehicleTypeTruck, AgeGroupOver60, 99999999))
	assert.False(t, row.Matches(VehicleTypeTruck, AgeGroupOver60, 499999.99))
}

func TestRoadServicePriceFor(t *testing.T) {
	service := RoadService{
		NormalPrice: 900,
		OldCarPrice: 1400,
		CutoffYear:  2010,
	}

	assert.Equal(t, 1400.0, service.PriceFor(2009))
	assert.Equal(t, 900.0, service.PriceFor(2010))
	assert.Equal(t, 900.0, service.PriceFor(2023))
}
