package statemachine

import (
	"context"
	"testing"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAssessmentFSM_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPending}
	machine := NewAssessmentFSM(fee)

	assert.Equal(t, models.FeeStatusPending, machine.Current())

	assert.NoError(t, machine.RecordPartial(ctx))
	assert.Equal(t, models.FeeStatusPartial, fee.Status)

	assert.NoError(t, machine.Settle(ctx))
	assert.Equal(t, models.FeeStatusPaid, fee.Status)
}

func TestAssessmentFSM_SettleDirectlyFromPending(t *testing.T) {
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPending}
	machine := NewAssessmentFSM(fee)

	assert.NoError(t, machine.Settle(context.Background()))
	assert.Equal(t, models.FeeStatusPaid, fee.Status)
}

func TestAssessmentFSM_RecordPartialIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPartial}
	machine := NewAssessmentFSM(fee)

	assert.NoError(t, machine.RecordPartial(ctx))
	assert.Equal(t, models.FeeStatusPartial, fee.Status)
}

func TestAssessmentFSM_CancelFromPartial(t *testing.T) {
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPartial}
	machine := NewAssessmentFSM(fee)

	assert.NoError(t, machine.Cancel(context.Background()))
	assert.Equal(t, models.FeeStatusCancelled, fee.Status)
}

func TestAssessmentFSM_CannotCancelSettled(t *testing.T) {
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPaid}
	machine := NewAssessmentFSM(fee)

	err := machine.Cancel(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.FeeStatusPaid, fee.Status)
}

func TestAssessmentFSM_ReopenSettled(t *testing.T) {
	ctx := context.Background()
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPaid}
	machine := NewAssessmentFSM(fee)

	assert.NoError(t, machine.Reopen(ctx))
	assert.Equal(t, models.FeeStatusPartial, fee.Status)

	// A reopened assessment can settle again
	assert.NoError(t, machine.Settle(ctx))
	assert.Equal(t, models.FeeStatusPaid, fee.Status)
}

func TestAssessmentFSM_ReopenRequiresSettled(t *testing.T) {
	fee := &models.ExtraordinaryFee{Status: models.FeeStatusPending}
	machine := NewAssessmentFSM(fee)

	assert.Error(t, machine.Reopen(context.Background()))
	assert.Equal(t, models.FeeStatusPending, fee.Status)
}
