package sse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/db"
	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

func newPollerFixture(t *testing.T) (*SSEHub, *NotificationPoller, repos.NotificationRepo) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	log := logger.NewNop()
	repo := repos.NewNotificationRepo(gdb, log)
	hub := NewSSEHub(log)
	return hub, NewNotificationPoller(hub, repo, time.Second, log), repo
}

func addNotification(t *testing.T, repo repos.NotificationRepo, table, desc string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), nil, &types.Notification{
		ID:          uuid.New(),
		Table:       table,
		Description: desc,
	}))
}

func TestTickBroadcastsBatchAndClears(t *testing.T) {
	hub, poller, repo := newPollerFixture(t)
	ctx := context.Background()

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, ChannelArrivals)
	defer hub.RemoveClient(client)

	addNotification(t, repo, "arrival", "Arrival 20250602-001 registered")
	addNotification(t, repo, "weighing", "Weighing recorded for arrival 20250602-001")

	poller.Tick(ctx)

	select {
	case msg := <-client.Outbound:
		assert.Equal(t, ChannelArrivals, msg.Channel)
		data, ok := msg.Data.(map[string]any)
		require.True(t, ok)
		batch, ok := data["message"].([]*types.Notification)
		require.True(t, ok)
		assert.Len(t, batch, 2)
	default:
		t.Fatal("expected a broadcast message")
	}

	// Rows are gone after delivery; the next tick is silent.
	remaining, err := repo.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	poller.Tick(ctx)
	select {
	case <-client.Outbound:
		t.Fatal("unexpected broadcast on empty table")
	default:
	}
}

func TestTickClearsEvenWithoutSubscribers(t *testing.T) {
	_, poller, repo := newPollerFixture(t)
	ctx := context.Background()

	addNotification(t, repo, "qc", "QC submitted for arrival 20250602-002")
	poller.Tick(ctx)

	remaining, err := repo.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(logger.NewNop())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, ChannelArrivals)

	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.Broadcast(SSEMessage{Channel: ChannelArrivals, Event: SSEEventArrivalsChanged})
	}
	assert.Len(t, client.Outbound, cap(client.Outbound))
	assert.Equal(t, 1, hub.SubscriberCount(ChannelArrivals))
}
