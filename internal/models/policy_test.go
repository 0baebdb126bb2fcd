package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyRecompute(t *testing.T) {
	policy := Policy{
		Amount: 10000,
		Payments: []Payment{
			{Amount: 2500},
			{Amount: 1500},
		},
	}
	policy.Recompute()

	assert.Equal(t, 4000.0, policy.PaidAmount)
	assert.Equal(t, 6000.0, policy.RemainingDebt)
	assert.False(t, policy.IsFullyPaid())
}

func TestPolicyRecompute_NoPayments(t *testing.T) {
	policy := Policy{Amount: 10000}
	policy.Recompute()

	assert.Equal(t, 0.0, policy.PaidAmount)
	assert.Equal(t, 10000.0, policy.RemainingDebt)
}

func TestPolicyIsFullyPaid(t *testing.T) {
	policy := Policy{
		Amount:   5000,
		Payments: []Payment{{Amount: 5000}},
	}
	policy.Recompute()

	assert.True(t, policy.IsFullyPaid())
	assert.Equal(t, 0.0, policy.RemainingDebt)
}

func TestPolicyMayCancelAndTransfer(t *testing.T) {
	active := Policy{Status: PolicyStatusActive}
	assert.True(t, active.MayCancel())
	assert.True(t, active.MayTransfer())

	cancelled := Policy{Status: PolicyStatusCancelled}
	assert.False(t, cancelled.MayCancel())
	assert.False(t, cancelled.MayTransfer())
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCash))
	assert.True(t, ValidPaymentMethod(PaymentMethodCheque))
	assert.False(t, ValidPaymentMethod("barter"))
	assert.False(t, ValidPaymentMethod(""))
}
