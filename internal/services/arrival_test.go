package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikabapp/sikab-backend/internal/types"
)

func TestCreateArrivalPersistsItemsAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(2),
		[]FileUpload{testUpload("gate.jpg")})
	require.NoError(t, err)

	assert.Equal(t, "20250602-001", arrival.Code)
	assert.Len(t, arrival.Items, 2)
	require.NotNil(t, arrival.Status)
	assert.Equal(t, types.ApprovalPending, arrival.Status.StatusApproval)
	assert.Equal(t, types.WeighingPending, arrival.Status.StatusWeighing)
	assert.Equal(t, types.QcPending, arrival.Status.StatusQc)
	assert.Equal(t, types.StatusWaitingArrival, arrival.Status.Status)

	// Proof landed in storage and a photo row references it.
	assert.Equal(t, 1, env.bucket.count())
	loaded, err := env.arrivals.GetByID(ctx, arrival.ID)
	require.NoError(t, err)
	require.Len(t, loaded.SecurityPhotos, 1)
	assert.Equal(t, "gate.jpg", loaded.SecurityPhotos[0].FileName)

	// One refresh marker for the intake.
	pending, err := env.notificationRepo.GetAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "arrival", pending[0].Table)
}

func TestCreateArrivalRejectsEmptyLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := env.newArrivalInput(0)
	_, err := env.arrivals.Create(ctx, env.actor, input, nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "materials")

	// Nothing persisted.
	var count int64
	require.NoError(t, env.db.Model(&types.Arrival{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateArrivalCollectsPerLineErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := env.newArrivalInput(2)
	input.Materials[1].Quantity = 0
	input.Materials[1].ConditionCategory = "Soggy"

	_, err := env.arrivals.Create(ctx, env.actor, input, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "materials.1.quantity")
	assert.Contains(t, ve.Fields, "materials.1.conditionCategory")
	assert.NotContains(t, ve.Fields, "materials.0.quantity")
}

func TestArrivalCodesIncrementWithinDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)
	second, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	assert.Equal(t, "20250602-001", first.Code)
	assert.Equal(t, "20250602-002", second.Code)
}

func TestApproveIsNotGatedOnOtherSteps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	warnings, err := env.arrivals.Approve(ctx, env.actor, arrival.ID, ApproveInput{Note: "approved at gate"})
	require.NoError(t, err)
	assert.Len(t, warnings, 2)

	status, err := env.statusRepo.GetByArrivalID(ctx, nil, arrival.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, types.ApprovalCompleted, status.StatusApproval)
	assert.Equal(t, types.WeighingPending, status.StatusWeighing)
	assert.Equal(t, types.QcPending, status.StatusQc)

	loaded, err := env.arrivals.GetByID(ctx, arrival.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved at gate", loaded.Note)
}

func TestApproveUnknownArrivalFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.arrivals.Approve(ctx, env.actor, env.actor.ID, ApproveInput{})
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*ValidationError)))
}

func TestSecurityDashboardSplitsOnApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a1, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)
	a2, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	_, err = env.arrivals.Approve(ctx, env.actor, a1.ID, ApproveInput{})
	require.NoError(t, err)

	dash, err := env.arrivals.SecurityDashboard(ctx, a1.ArrivalTime)
	require.NoError(t, err)
	require.Len(t, dash.Completed, 1)
	require.Len(t, dash.Pending, 1)
	assert.Equal(t, a1.ID, dash.Completed[0].Arrival.ID)
	assert.Equal(t, a2.ID, dash.Pending[0].Arrival.ID)
}

func TestListReportsItemCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(3), nil)
	require.NoError(t, err)

	summaries, total, err := env.arrivals.List(ctx, ListArrivalsInput{Day: arrival.ArrivalTime})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].TotalItems)
	assert.Zero(t, summaries[0].QcDone)
	assert.Zero(t, summaries[0].WeighingDone)
}
