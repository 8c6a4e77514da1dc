package sse

import (
	"context"
	"time"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
)

// NotificationPoller drains the notification table on a fixed interval and
// pushes the batch to every subscribed dashboard as one refresh signal.
//
// Delivery is at-most-once by construction: rows are deleted after each
// tick whether or not anyone is connected, and nothing is redelivered.
type NotificationPoller struct {
	hub      *SSEHub
	repo     repos.NotificationRepo
	interval time.Duration
	log      *logger.Logger
}

func NewNotificationPoller(hub *SSEHub, repo repos.NotificationRepo, interval time.Duration, log *logger.Logger) *NotificationPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &NotificationPoller{
		hub:      hub,
		repo:     repo,
		interval: interval,
		log:      log.With("component", "NotificationPoller"),
	}
}

// Start runs the poll loop until ctx is cancelled.
func (p *NotificationPoller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.log.Info("Notification poller stopped")
				return
			case <-ticker.C:
				p.Tick(ctx)
			}
		}
	}()
}

// Tick performs one poll cycle. Exported so tests can drive it directly.
func (p *NotificationPoller) Tick(ctx context.Context) {
	pending, err := p.repo.GetAll(ctx, nil)
	if err != nil {
		p.log.Warn("Failed to read pending notifications", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}
	p.hub.Broadcast(SSEMessage{
		Channel: ChannelArrivals,
		Event:   SSEEventArrivalsChanged,
		Data:    map[string]any{"message": pending},
	})
	if err := p.repo.DeleteAll(ctx, nil); err != nil {
		p.log.Warn("Failed to clear delivered notifications", "error", err)
	}
}
