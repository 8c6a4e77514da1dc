package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type SequenceRepo interface {
	// Next atomically bumps and returns the running number for the given day
	// (day formatted YYYYMMDD). Safe under concurrent intakes: the upsert is
	// a single statement, so two callers can never observe the same value.
	Next(ctx context.Context, tx *gorm.DB, day string) (int, error)
	DeleteBefore(ctx context.Context, tx *gorm.DB, day string) (int64, error)
}

type sequenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSequenceRepo(db *gorm.DB, baseLog *logger.Logger) SequenceRepo {
	return &sequenceRepo{db: db, log: baseLog.With("repo", "SequenceRepo")}
}

func (r *sequenceRepo) Next(ctx context.Context, tx *gorm.DB, day string) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var value int
	err := transaction.WithContext(ctx).Raw(`
		INSERT INTO arrival_sequence (day, value) VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET value = arrival_sequence.value + 1
		RETURNING value`, day).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *sequenceRepo) DeleteBefore(ctx context.Context, tx *gorm.DB, day string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).Where("day < ?", day).Delete(&types.ArrivalSequence{})
	return res.RowsAffected, res.Error
}
