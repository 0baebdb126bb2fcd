package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rmedina/segurapp-api/internal/models"
)

// PolicyFSM wraps a policy with its state machine. Cancellation is terminal
// and one-way.
type PolicyFSM struct {
	policy *models.Policy
	fsm    *fsm.FSM
}

// NewPolicyFSM creates a new policy state machine
func NewPolicyFSM(policy *models.Policy) *PolicyFSM {
	pfsm := &PolicyFSM{
		policy: policy,
	}

	pfsm.fsm = fsm.NewFSM(
		policy.Status,
		fsm.Events{
			{Name: "cancel", Src: []string{models.PolicyStatusActive}, Dst: models.PolicyStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return pfsm
}

// Cancel transitions the policy to cancelled
func (p *PolicyFSM) Cancel(ctx context.Context) error {
	if !p.policy.MayCancel() {
		return fmt.Errorf("policy cannot be cancelled in current state: %s", p.policy.Status)
	}

	if err := p.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel policy: %w", err)
	}

	p.policy.Status = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *PolicyFSM) Current() string {
	return p.fsm.Current()
}
