package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// Master data repos share the same list/create/update/delete surface.

type SupplierRepo interface {
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Supplier, int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Supplier, error)
	Create(ctx context.Context, tx *gorm.DB, s *types.Supplier) error
	Update(ctx context.Context, tx *gorm.DB, s *types.Supplier) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type supplierRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSupplierRepo(db *gorm.DB, baseLog *logger.Logger) SupplierRepo {
	return &supplierRepo{db: db, log: baseLog.With("repo", "SupplierRepo")}
}

func (r *supplierRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Supplier, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total int64
	if err := transaction.WithContext(ctx).Model(&types.Supplier{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.Supplier
	if err := transaction.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *supplierRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Supplier
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *supplierRepo) Create(ctx context.Context, tx *gorm.DB, s *types.Supplier) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) Update(ctx context.Context, tx *gorm.DB, s *types.Supplier) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.Supplier{}, "id = ?", id).Error
}

type MaterialRepo interface {
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Material, int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Material, error)
	Create(ctx context.Context, tx *gorm.DB, m *types.Material) error
	Update(ctx context.Context, tx *gorm.DB, m *types.Material) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (r *materialRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Material, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total int64
	if err := transaction.WithContext(ctx).Model(&types.Material{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.Material
	if err := transaction.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *materialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Material
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) Create(ctx context.Context, tx *gorm.DB, m *types.Material) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) Update(ctx context.Context, tx *gorm.DB, m *types.Material) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.Material{}, "id = ?", id).Error
}

type ConditionRepo interface {
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Condition, int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Condition, error)
	Create(ctx context.Context, tx *gorm.DB, c *types.Condition) error
	Update(ctx context.Context, tx *gorm.DB, c *types.Condition) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type conditionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConditionRepo(db *gorm.DB, baseLog *logger.Logger) ConditionRepo {
	return &conditionRepo{db: db, log: baseLog.With("repo", "ConditionRepo")}
}

func (r *conditionRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Condition, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total int64
	if err := transaction.WithContext(ctx).Model(&types.Condition{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.Condition
	if err := transaction.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *conditionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Condition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Condition
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *conditionRepo) Create(ctx context.Context, tx *gorm.DB, c *types.Condition) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(c).Error
}

func (r *conditionRepo) Update(ctx context.Context, tx *gorm.DB, c *types.Condition) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(c).Error
}

func (r *conditionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.Condition{}, "id = ?", id).Error
}

type QcStatusRepo interface {
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.QcStatus, int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.QcStatus, error)
	Create(ctx context.Context, tx *gorm.DB, s *types.QcStatus) error
	Update(ctx context.Context, tx *gorm.DB, s *types.QcStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type qcStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQcStatusRepo(db *gorm.DB, baseLog *logger.Logger) QcStatusRepo {
	return &qcStatusRepo{db: db, log: baseLog.With("repo", "QcStatusRepo")}
}

func (r *qcStatusRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.QcStatus, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total int64
	if err := transaction.WithContext(ctx).Model(&types.QcStatus{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.QcStatus
	if err := transaction.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *qcStatusRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.QcStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QcStatus
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *qcStatusRepo) Create(ctx context.Context, tx *gorm.DB, s *types.QcStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(s).Error
}

func (r *qcStatusRepo) Update(ctx context.Context, tx *gorm.DB, s *types.QcStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(s).Error
}

func (r *qcStatusRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.QcStatus{}, "id = ?", id).Error
}
