package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type QcHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, history *types.QcHistory) error
	ListByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.QcHistory, error)
	// GetLatestByItemIDs is the authoritative derived read for "the current
	// QC outcome": the newest history row per item, results included.
	GetLatestByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) (map[uuid.UUID]*types.QcHistory, error)
}

type qcHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQcHistoryRepo(db *gorm.DB, baseLog *logger.Logger) QcHistoryRepo {
	return &qcHistoryRepo{db: db, log: baseLog.With("repo", "QcHistoryRepo")}
}

func (r *qcHistoryRepo) Create(ctx context.Context, tx *gorm.DB, history *types.QcHistory) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Omit("User", "QcStatus", "Results").Create(history).Error
}

func (r *qcHistoryRepo) ListByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.QcHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QcHistory
	if err := transaction.WithContext(ctx).
		Preload("Results").
		Preload("QcStatus").
		Where("arrival_item_id = ?", itemID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *qcHistoryRepo) GetLatestByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) (map[uuid.UUID]*types.QcHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uuid.UUID]*types.QcHistory, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	var rows []*types.QcHistory
	if err := transaction.WithContext(ctx).
		Preload("Results").
		Where("arrival_item_id IN ?", itemIDs).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		if _, seen := out[row.ArrivalItemID]; !seen {
			out[row.ArrivalItemID] = row
		}
	}
	return out, nil
}

type QcResultRepo interface {
	CreateMany(ctx context.Context, tx *gorm.DB, results []*types.QcResult) error
	CountByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type qcResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQcResultRepo(db *gorm.DB, baseLog *logger.Logger) QcResultRepo {
	return &qcResultRepo{db: db, log: baseLog.With("repo", "QcResultRepo")}
}

func (r *qcResultRepo) CreateMany(ctx context.Context, tx *gorm.DB, results []*types.QcResult) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(results) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Omit("Parameter").Create(&results).Error
}

func (r *qcResultRepo) CountByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uuid.UUID]int64, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ArrivalItemID uuid.UUID
		Total         int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.QcResult{}).
		Select("arrival_item_id, COUNT(*) AS total").
		Where("arrival_item_id IN ?", itemIDs).
		Group("arrival_item_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ArrivalItemID] = row.Total
	}
	return out, nil
}
