package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type ArrivalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, arrival *types.Arrival) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Arrival, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Arrival, error)
	List(ctx context.Context, tx *gorm.DB, filter ArrivalFilter) ([]*types.Arrival, int64, error)
	Update(ctx context.Context, tx *gorm.DB, arrival *types.Arrival) error
}

// ArrivalFilter narrows List. Zero values mean "no filter".
type ArrivalFilter struct {
	DayStart time.Time
	DayEnd   time.Time
	Offset   int
	Limit    int
}

type arrivalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArrivalRepo(db *gorm.DB, baseLog *logger.Logger) ArrivalRepo {
	return &arrivalRepo{db: db, log: baseLog.With("repo", "ArrivalRepo")}
}

func (r *arrivalRepo) Create(ctx context.Context, tx *gorm.DB, arrival *types.Arrival) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Omit("Supplier", "Items", "Status", "SecurityPhotos").Create(arrival).Error
}

func (r *arrivalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Arrival, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var arrival types.Arrival
	if err := transaction.WithContext(ctx).
		Preload("Supplier").
		Preload("Status").
		Preload("SecurityPhotos").
		Preload("Items").
		Preload("Items.Material").
		Preload("Items.Condition").
		Preload("Items.QcStatus").
		Preload("Items.Weighings").
		Preload("Items.QcPhotos").
		First(&arrival, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &arrival, nil
}

func (r *arrivalRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Arrival, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var arrival types.Arrival
	if err := transaction.WithContext(ctx).
		Preload("Supplier").
		Preload("Status").
		Preload("Items").
		First(&arrival, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &arrival, nil
}

func (r *arrivalRepo) List(ctx context.Context, tx *gorm.DB, filter ArrivalFilter) ([]*types.Arrival, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.Arrival{})
	if !filter.DayStart.IsZero() {
		q = q.Where("arrival_time >= ?", filter.DayStart)
	}
	if !filter.DayEnd.IsZero() {
		q = q.Where("arrival_time < ?", filter.DayEnd)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q = q.Preload("Supplier").Preload("Status").Order("arrival_time DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	var results []*types.Arrival
	if err := q.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *arrivalRepo) Update(ctx context.Context, tx *gorm.DB, arrival *types.Arrival) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Omit("Supplier", "Items", "Status", "SecurityPhotos").Save(arrival).Error
}
