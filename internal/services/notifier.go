package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// ArrivalNotifier records refresh markers for the dashboards. Markers are
// written inside the caller's transaction so a rolled-back mutation never
// triggers a refresh.
type ArrivalNotifier interface {
	ArrivalCreated(ctx context.Context, tx *gorm.DB, code string) error
	WeighingRecorded(ctx context.Context, tx *gorm.DB, code string) error
	QcSubmitted(ctx context.Context, tx *gorm.DB, code string) error
	ArrivalApproved(ctx context.Context, tx *gorm.DB, code string) error
}

type arrivalNotifier struct {
	notificationRepo repos.NotificationRepo
}

func NewArrivalNotifier(notificationRepo repos.NotificationRepo) ArrivalNotifier {
	return &arrivalNotifier{notificationRepo: notificationRepo}
}

func (n *arrivalNotifier) record(ctx context.Context, tx *gorm.DB, table, description string) error {
	return n.notificationRepo.Create(ctx, tx, &types.Notification{
		ID:          uuid.New(),
		Table:       table,
		Description: description,
	})
}

func (n *arrivalNotifier) ArrivalCreated(ctx context.Context, tx *gorm.DB, code string) error {
	return n.record(ctx, tx, "arrival", fmt.Sprintf("Arrival %s registered", code))
}

func (n *arrivalNotifier) WeighingRecorded(ctx context.Context, tx *gorm.DB, code string) error {
	return n.record(ctx, tx, "weighing", fmt.Sprintf("Weighing recorded for arrival %s", code))
}

func (n *arrivalNotifier) QcSubmitted(ctx context.Context, tx *gorm.DB, code string) error {
	return n.record(ctx, tx, "qc", fmt.Sprintf("QC submitted for arrival %s", code))
}

func (n *arrivalNotifier) ArrivalApproved(ctx context.Context, tx *gorm.DB, code string) error {
	return n.record(ctx, tx, "arrival", fmt.Sprintf("Arrival %s approved", code))
}
