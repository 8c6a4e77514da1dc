package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// Photo rows only ever get appended, one table per checkpoint.

type PhotoRepo interface {
	CreateSecurityPhotos(ctx context.Context, tx *gorm.DB, photos []*types.SecurityPhoto) error
	CreateWeighingPhoto(ctx context.Context, tx *gorm.DB, photo *types.WeighingPhoto) error
	CreateQcPhoto(ctx context.Context, tx *gorm.DB, photo *types.QcPhoto) error
}

type photoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	return &photoRepo{db: db, log: baseLog.With("repo", "PhotoRepo")}
}

func (r *photoRepo) CreateSecurityPhotos(ctx context.Context, tx *gorm.DB, photos []*types.SecurityPhoto) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(photos) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&photos).Error
}

func (r *photoRepo) CreateWeighingPhoto(ctx context.Context, tx *gorm.DB, photo *types.WeighingPhoto) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(photo).Error
}

func (r *photoRepo) CreateQcPhoto(ctx context.Context, tx *gorm.DB, photo *types.QcPhoto) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(photo).Error
}
