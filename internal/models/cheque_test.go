package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChequeMayTransition(t *testing.T) {
	pending := Cheque{Status: ChequeStatusPending}
	assert.True(t, pending.MayTransition(ChequeStatusCleared))
	assert.True(t, pending.MayTransition(ChequeStatusReturned))
	assert.True(t, pending.MayTransition(ChequeStatusCancelled))
	assert.False(t, pending.MayTransition(ChequeStatusPending))

	for _, terminal := range []string{ChequeStatusCleared, ChequeStatusReturned, ChequeStatusCancelled} {
		cheque := Cheque{Status: terminal}
		assert.False(t, cheque.MayTransition(ChequeStatusCleared), "from %s", terminal)
		assert.False(t, cheque.MayTransition(ChequeStatusPending), "from %s", terminal)
	}
}

func TestChequeIsDue(t *testing.T) {
	overdue := Cheque{Status: ChequeStatusPending, DueDate: time.Now().AddDate(0, 0, -1)}
	assert.True(t, overdue.IsDue())

	upcoming := Cheque{Status: ChequeStatusPending, DueDate: time.Now().AddDate(0, 0, 1)}
	assert.False(t, upcoming.IsDue())

	cleared := Cheque{Status: ChequeStatusCleared, DueDate: time.Now().AddDate(0, 0, -1)}
	assert.False(t, cleared.IsDue())
}
