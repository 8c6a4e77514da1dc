package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type ArrivalStatusRepo interface {
	Create(ctx context.Context, tx *gorm.DB, status *types.ArrivalStatus) error
	// GetByArrivalID returns (nil, nil) when no status row exists; downstream
	// actions no-op their status update in that case.
	GetByArrivalID(ctx context.Context, tx *gorm.DB, arrivalID uuid.UUID) (*types.ArrivalStatus, error)
	Update(ctx context.Context, tx *gorm.DB, status *types.ArrivalStatus) error
}

type arrivalStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArrivalStatusRepo(db *gorm.DB, baseLog *logger.Logger) ArrivalStatusRepo {
	return &arrivalStatusRepo{db: db, log: baseLog.With("repo", "ArrivalStatusRepo")}
}

func (r *arrivalStatusRepo) Create(ctx context.Context, tx *gorm.DB, status *types.ArrivalStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(status).Error
}

func (r *arrivalStatusRepo) GetByArrivalID(ctx context.Context, tx *gorm.DB, arrivalID uuid.UUID) (*types.ArrivalStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var status types.ArrivalStatus
	err := transaction.WithContext(ctx).First(&status, "arrival_id = ?", arrivalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *arrivalStatusRepo) Update(ctx context.Context, tx *gorm.DB, status *types.ArrivalStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(status).Error
}
