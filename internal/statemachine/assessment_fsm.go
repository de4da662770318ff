package statemachine

import (
	"context"
	"fmt"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/looplab/fsm"
)

// AssessmentFSM wraps an extraordinary fee assessment with its state machine.
// Lifecycle: pendiente → parcial → pagada, with cancelada reachable from any
// non-terminal state.
type AssessmentFSM struct {
	fee *models.ExtraordinaryFee
	fsm *fsm.FSM
}

// NewAssessmentFSM creates a state machine for an assessment
func NewAssessmentFSM(fee *models.ExtraordinaryFee) *AssessmentFSM {
	a := &AssessmentFSM{fee: fee}

	a.fsm = fsm.NewFSM(
		fee.Status,
		fsm.Events{
			// first payment arrives but the assessment is not fully collected
			{Name: "partial", Src: []string{models.FeeStatusPending}, Dst: models.FeeStatusPartial},

			// every active member has covered the quota
			{Name: "settle", Src: []string{models.FeeStatusPending, models.FeeStatusPartial}, Dst: models.FeeStatusPaid},

			// assessment withdrawn before full collection
			{Name: "cancel", Src: []string{models.FeeStatusPending, models.FeeStatusPartial}, Dst: models.FeeStatusCancelled},

			// reopened when a settling payment is corrected downward
			{Name: "reopen", Src: []string{models.FeeStatusPaid}, Dst: models.FeeStatusPartial},
		},
		fsm.Callbacks{},
	)

	return a
}

// RecordPartial transitions the assessment to partially collected
func (a *AssessmentFSM) RecordPartial(ctx context.Context) error {
	if a.fee.Status == models.FeeStatusPartial {
		return nil
	}
	if err := a.fsm.Event(ctx, "partial"); err != nil {
		return fmt.Errorf("failed to mark assessment partial: %w", err)
	}
	a.fee.Status = a.fsm.Current()
	return nil
}

// Settle transitions the assessment to fully collected
func (a *AssessmentFSM) Settle(ctx context.Context) error {
	if err := a.fsm.Event(ctx, "settle"); err != nil {
		return fmt.Errorf("failed to settle assessment: %w", err)
	}
	a.fee.Status = a.fsm.Current()
	return nil
}

// Cancel withdraws the assessment
func (a *AssessmentFSM) Cancel(ctx context.Context) error {
	if !a.fee.MayCancel() {
		return fmt.Errorf("assessment cannot be cancelled in current state: %s", a.fee.Status)
	}
	if err := a.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel assessment: %w", err)
	}
	a.fee.Status = a.fsm.Current()
	return nil
}

// Reopen moves a settled assessment back to partial
func (a *AssessmentFSM) Reopen(ctx context.Context) error {
	if err := a.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen assessment: %w", err)
	}
	a.fee.Status = a.fsm.Current()
	return nil
}

// Current returns the current state
func (a *AssessmentFSM) Current() string {
	return a.fsm.Current()
}
