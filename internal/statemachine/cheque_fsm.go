package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rmedina/segurapp-api/internal/models"
)

// ChequeFSM wraps a cheque with its state machine. Every transition leaves
// pending; cleared, returned and cancelled are terminal states.
type ChequeFSM struct {
	cheque *models.Cheque
	fsm    *fsm.FSM
}

// NewChequeFSM creates a new cheque state machine
func NewChequeFSM(cheque *models.Cheque) *ChequeFSM {
	cfsm := &ChequeFSM{
		cheque: cheque,
	}

	cfsm.fsm = fsm.NewFSM(
		cheque.Status,
		fsm.Events{
			{Name: "clear", Src: []string{models.ChequeStatusPending}, Dst: models.ChequeStatusCleared},
			{Name: "return", Src: []string{models.ChequeStatusPending}, Dst: models.ChequeStatusReturned},
			{Name: "cancel", Src: []string{models.ChequeStatusPending}, Dst: models.ChequeStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Clear transitions the cheque to cleared
func (c *ChequeFSM) Clear(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "clear"); err != nil {
		return fmt.Errorf("cheque cannot be cleared from state %s: %w", c.cheque.Status, err)
	}
	c.cheque.Status = c.fsm.Current()
	return nil
}

// Return transitions the cheque to returned
func (c *ChequeFSM) Return(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "return"); err != nil {
		return fmt.Errorf("cheque cannot be returned from state %s: %w", c.cheque.Status, err)
	}
	c.cheque.Status = c.fsm.Current()
	return nil
}

// Cancel transitions the cheque to cancelled
func (c *ChequeFSM) Cancel(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("cheque cannot be cancelled from state %s: %w", c.cheque.Status, err)
	}
	c.cheque.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ChequeFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ChequeFSM) Can(event string) bool {
	return c.fsm.Can(event)
}

// EventForStatus maps a target cheque status to its transition event name
func EventForStatus(status string) (string, bool) {
	switch status {
	case models.ChequeStatusCleared:
		return "clear", true
	case models.ChequeStatusReturned:
		return "return", true
	case models.ChequeStatusCancelled:
		return "cancel", true
	}
	return "", false
}
