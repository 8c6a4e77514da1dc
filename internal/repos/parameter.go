package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type ParameterRepo interface {
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Parameter, int64, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Parameter, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Parameter, error)
	Create(ctx context.Context, tx *gorm.DB, p *types.Parameter) error
	Update(ctx context.Context, tx *gorm.DB, p *types.Parameter) error
	ReplaceSettings(ctx context.Context, tx *gorm.DB, parameterID uuid.UUID, settings []types.ParameterSetting) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type parameterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParameterRepo(db *gorm.DB, baseLog *logger.Logger) ParameterRepo {
	return &parameterRepo{db: db, log: baseLog.With("repo", "ParameterRepo")}
}

func (r *parameterRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Parameter, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total int64
	if err := transaction.WithContext(ctx).Model(&types.Parameter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.Parameter
	if err := transaction.WithContext(ctx).
		Preload("Settings").
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *parameterRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Parameter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Parameter
	if err := transaction.WithContext(ctx).
		Preload("Settings").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *parameterRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Parameter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Parameter
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Settings").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *parameterRepo) Create(ctx context.Context, tx *gorm.DB, p *types.Parameter) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(p).Error
}

func (r *parameterRepo) Update(ctx context.Context, tx *gorm.DB, p *types.Parameter) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Omit("Settings").Save(p).Error
}

func (r *parameterRepo) ReplaceSettings(ctx context.Context, tx *gorm.DB, parameterID uuid.UUID, settings []types.ParameterSetting) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Delete(&types.ParameterSetting{}, "parameter_id = ?", parameterID).Error; err != nil {
		return err
	}
	if len(settings) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&settings).Error
}

func (r *parameterRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Delete(&types.ParameterSetting{}, "parameter_id = ?", id).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).Delete(&types.Parameter{}, "id = ?", id).Error
}
