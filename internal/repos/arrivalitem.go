package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// ItemCounts carries the per-arrival derived quantities for the dashboards.
// QcDone/WeighingDone count items with at least one result/weighing row;
// the enum flags on ArrivalStatus are only a cached summary of these.
type ItemCounts struct {
	ArrivalID    uuid.UUID `json:"arrival_id"`
	TotalItems   int       `json:"total_items"`
	QcDone       int       `json:"qc_done"`
	WeighingDone int       `json:"weighing_done"`
}

type ArrivalItemRepo interface {
	CreateMany(ctx context.Context, tx *gorm.DB, items []*types.ArrivalItem) error
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ArrivalItem, error)
	UpdateQcFields(ctx context.Context, tx *gorm.DB, item *types.ArrivalItem) error
	CountsByArrivalIDs(ctx context.Context, tx *gorm.DB, arrivalIDs []uuid.UUID) (map[uuid.UUID]ItemCounts, error)
}

type arrivalItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArrivalItemRepo(db *gorm.DB, baseLog *logger.Logger) ArrivalItemRepo {
	return &arrivalItemRepo{db: db, log: baseLog.With("repo", "ArrivalItemRepo")}
}

func (r *arrivalItemRepo) CreateMany(ctx context.Context, tx *gorm.DB, items []*types.ArrivalItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Omit("Arrival", "Material", "Condition", "QcStatus", "Weighings", "QcResults", "QcHistory", "QcPhotos").
		Create(&items).Error
}

func (r *arrivalItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ArrivalItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ArrivalItem
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateQcFields overwrites only the denormalized "live" QC columns.
func (r *arrivalItemRepo) UpdateQcFields(ctx context.Context, tx *gorm.DB, item *types.ArrivalItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ArrivalItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"qc_status_id":    item.QcStatusID,
			"qc_sample":       item.QcSample,
			"qc_impurity":     item.QcImpurity,
			"qc_net_weight":   item.QcNetWeight,
			"qc_drying_hours": item.QcDryingHours,
			"qc_note":         item.QcNote,
			"updated_by":      item.UpdatedBy,
		}).Error
}

func (r *arrivalItemRepo) CountsByArrivalIDs(ctx context.Context, tx *gorm.DB, arrivalIDs []uuid.UUID) (map[uuid.UUID]ItemCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uuid.UUID]ItemCounts, len(arrivalIDs))
	if len(arrivalIDs) == 0 {
		return out, nil
	}
	var rows []ItemCounts
	err := transaction.WithContext(ctx).Raw(`
		SELECT ai.arrival_id AS arrival_id,
		       COUNT(*) AS total_items,
		       SUM(CASE WHEN EXISTS (SELECT 1 FROM qc_result qr WHERE qr.arrival_item_id = ai.id) THEN 1 ELSE 0 END) AS qc_done,
		       SUM(CASE WHEN EXISTS (SELECT 1 FROM weighing w WHERE w.arrival_item_id = ai.id) THEN 1 ELSE 0 END) AS weighing_done
		FROM arrival_item ai
		WHERE ai.arrival_id IN ?
		GROUP BY ai.arrival_id`, arrivalIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ArrivalID] = row
	}
	return out, nil
}
