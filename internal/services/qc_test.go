package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikabapp/sikab-backend/internal/types"
)

func TestDeriveQcTotals(t *testing.T) {
	tests := []struct {
		name         string
		sample       float64
		values       []float64
		wantNet      float64
		wantImpurity float64
	}{
		{"two reductions", 100, []float64{20, 10}, 70, 0},
		{"no parameters", 50, nil, 50, 0},
		{"single reduction", 80, []float64{5}, 75, 0},
		{"reductions exceed sample", 10, []float64{8, 8}, -6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, impurity := DeriveQcTotals(tt.sample, tt.values)
			assert.Equal(t, tt.wantNet, net)
			assert.Equal(t, tt.wantImpurity, impurity)
		})
	}
}

func (env *testEnv) submitQc(t *testing.T, arrivalID, itemID uuid.UUID, sample float64, values []float64) {
	t.Helper()
	results := make([]QcResultInput, 0, len(values))
	for _, v := range values {
		results = append(results, QcResultInput{ParameterID: env.parameterID, Value: v})
	}
	net, impurity := DeriveQcTotals(sample, values)
	err := env.qc.Submit(context.Background(), env.actor, SubmitQcInput{
		ArrivalID: arrivalID,
		Items: []QcItemInput{{
			ArrivalItemID: itemID,
			QcStatusID:    env.qcStatusID,
			Sample:        sample,
			Impurity:      impurity,
			NetWeight:     net,
			Results:       results,
		}},
	}, nil)
	require.NoError(t, err)
}

func TestSubmitQcWritesHistoryAndLiveFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)
	itemID := arrival.Items[0].ID

	env.submitQc(t, arrival.ID, itemID, 100, []float64{20, 10})

	items, err := env.itemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 100.0, items[0].QcSample)
	assert.Equal(t, 70.0, items[0].QcNetWeight)
	assert.Zero(t, items[0].QcImpurity)
	require.NotNil(t, items[0].QcStatusID)
	assert.Equal(t, env.qcStatusID, *items[0].QcStatusID)

	history, err := env.qc.HistoryByItem(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Len(t, history[0].Results, 2)
	assert.Equal(t, 20.0, history[0].Results[0].Value+history[0].Results[1].Value-10.0)

	status, err := env.statusRepo.GetByArrivalID(ctx, nil, arrival.ID)
	require.NoError(t, err)
	assert.Equal(t, types.QcCompleted, status.StatusQc)
}

func TestResubmitQcKeepsEveryHistoryRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)
	itemID := arrival.Items[0].ID

	env.submitQc(t, arrival.ID, itemID, 100, []float64{20, 10})
	env.submitQc(t, arrival.ID, itemID, 90, []float64{5})

	history, err := env.qc.HistoryByItem(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Live fields reflect the newest submission only.
	items, err := env.itemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	require.NoError(t, err)
	assert.Equal(t, 90.0, items[0].QcSample)
	assert.Equal(t, 85.0, items[0].QcNetWeight)

	// Result rows accumulate across submissions.
	counts, err := env.resultRepo.CountByItemIDs(ctx, nil, []uuid.UUID{itemID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[itemID])
}

func TestSubmitQcRejectsTinySample(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	err = env.qc.Submit(ctx, env.actor, SubmitQcInput{
		ArrivalID: arrival.ID,
		Items: []QcItemInput{{
			ArrivalItemID: arrival.Items[0].ID,
			QcStatusID:    env.qcStatusID,
			Sample:        0.5,
		}},
	}, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items.0.sample")

	var count int64
	require.NoError(t, env.db.Model(&types.QcHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestQcDashboardBucketsOnResultExistence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	scored, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)
	unscored, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(1), nil)
	require.NoError(t, err)

	env.submitQc(t, scored.ID, scored.Items[0].ID, 100, []float64{10})

	dash, err := env.arrivals.QcDashboard(ctx, scored.ArrivalTime)
	require.NoError(t, err)
	require.Len(t, dash.Completed, 1)
	require.Len(t, dash.Pending, 1)
	assert.Equal(t, scored.ID, dash.Completed[0].Arrival.ID)
	assert.Equal(t, unscored.ID, dash.Pending[0].Arrival.ID)
}

func TestFullWorkflowEndsWithNoApprovalWarnings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	arrival, err := env.arrivals.Create(ctx, env.actor, env.newArrivalInput(2), nil)
	require.NoError(t, err)

	for _, item := range arrival.Items {
		_, err := env.weighing.Record(ctx, env.actor, RecordWeighingInput{ArrivalItemID: item.ID, Weight: 500}, nil)
		require.NoError(t, err)
		env.submitQc(t, arrival.ID, item.ID, 100, []float64{20, 10})
	}

	warnings, err := env.arrivals.Approve(ctx, env.actor, arrival.ID, ApproveInput{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	status, err := env.statusRepo.GetByArrivalID(ctx, nil, arrival.ID)
	require.NoError(t, err)
	assert.True(t, status.AllCompleted())
}
