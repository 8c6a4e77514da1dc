package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikabapp/sikab-backend/internal/types"
)

func TestRecordWeighingAppendsAndCompletesStep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)
	itemID := arrival.Items[0].ID

	_, err = env.weighing.Record(ctx, env.actor, RecordWeighingInput{ArrivalItemID: itemID, Weight: 950}, nil)
	require.NoError(t, err)
	_, err = env.weighing.Record(ctx, env.actor, RecordWeighingInput{ArrivalItemID: itemID, Weight: 948, Note: "re-weigh"}, nil)
	require.NoError(t, err)

	readings, err := env.weighing.ListByItem(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 950.0, readings[0].Weight)
	assert.Equal(t, 948.0, readings[1].Weight)

	status, err := env.statusRepo.GetByArrivalID(ctx, nil, arrival.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, types.WeighingCompleted, status.StatusWeighing)
	assert.Equal(t, types.ApprovalPending, status.StatusApproval)
}

func TestRecordWeighingRejectsBelowMinimum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	_, err = env.weighing.Record(ctx, env.actor, RecordWeighingInput{
		ArrivalItemID: arrival.Items[0].ID,
		Weight:        0.5,
	}, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "weight")

	var count int64
	require.NoError(t, env.db.Model(&types.Weighing{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordWeighingStoresPhotosAfterCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	_, err = env.weighing.Record(ctx, env.actor, RecordWeighingInput{
		ArrivalItemID: arrival.Items[0].ID,
		Weight:        1200,
	}, []FileUpload{testUpload("scale.jpg")})
	require.NoError(t, err)

	assert.Equal(t, 1, env.bucket.count())
	var photos []types.WeighingPhoto
	require.NoError(t, env.db.Find(&photos).Error)
	require.Len(t, photos, 1)
	assert.Equal(t, arrival.Items[0].ID, photos[0].ArrivalItemID)
}
