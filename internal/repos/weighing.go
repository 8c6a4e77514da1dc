package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type WeighingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, weighing *types.Weighing) error
	ListByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.Weighing, error)
}

type weighingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeighingRepo(db *gorm.DB, baseLog *logger.Logger) WeighingRepo {
	return &weighingRepo{db: db, log: baseLog.With("repo", "WeighingRepo")}
}

func (r *weighingRepo) Create(ctx context.Context, tx *gorm.DB, weighing *types.Weighing) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(weighing).Error
}

func (r *weighingRepo) ListByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.Weighing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Weighing
	if err := transaction.WithContext(ctx).
		Where("arrival_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
