package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type RecordWeighingInput struct {
	ArrivalItemID uuid.UUID `json:"arrivalItemId"`
	Weight        float64   `json:"weight"`
	Note          string    `json:"note"`
}

type WeighingService interface {
	// Record appends one weight reading and marks the arrival's weighing step
	// done. Photos are stored best-effort after the reading is committed.
	Record(ctx context.Context, actor *SessionUser, input RecordWeighingInput, photos []FileUpload) (*types.Weighing, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*types.Weighing, error)
}

type weighingService struct {
	log          *logger.Logger
	db           *gorm.DB
	weighingRepo repos.WeighingRepo
	itemRepo     repos.ArrivalItemRepo
	arrivalRepo  repos.ArrivalRepo
	statusRepo   repos.ArrivalStatusRepo
	photoRepo    repos.PhotoRepo
	bucket       BucketService
	notifier     ArrivalNotifier
}

func NewWeighingService(
	db *gorm.DB,
	weighingRepo repos.WeighingRepo,
	itemRepo repos.ArrivalItemRepo,
	arrivalRepo repos.ArrivalRepo,
	statusRepo repos.ArrivalStatusRepo,
	photoRepo repos.PhotoRepo,
	bucket BucketService,
	notifier ArrivalNotifier,
	log *logger.Logger,
) WeighingService {
	return &weighingService{
		log:          log.With("service", "WeighingService"),
		db:           db,
		weighingRepo: weighingRepo,
		itemRepo:     itemRepo,
		arrivalRepo:  arrivalRepo,
		statusRepo:   statusRepo,
		photoRepo:    photoRepo,
		bucket:       bucket,
		notifier:     notifier,
	}
}

func (ws *weighingService) Record(ctx context.Context, actor *SessionUser, input RecordWeighingInput, photos []FileUpload) (*types.Weighing, error) {
	ve := NewValidationError()
	if input.ArrivalItemID == uuid.Nil {
		ve.Add("arrivalItemId", "Arrival item is required.")
	}
	if input.Weight < 1 {
		ve.Add("weight", "Weight must be at least 1.")
	}
	validateUploads("weighingProof", photos, ve)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	items, err := ws.itemRepo.GetByIDs(ctx, nil, []uuid.UUID{input.ArrivalItemID})
	if err != nil {
		return nil, fmt.Errorf("failed to load arrival item: %w", err)
	}
	if len(items) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	item := items[0]

	arrival, err := ws.arrivalRepo.GetByID(ctx, nil, item.ArrivalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load arrival: %w", err)
	}

	weighing := &types.Weighing{
		ID:            uuid.New(),
		ArrivalItemID: item.ID,
		Weight:        input.Weight,
		Note:          input.Note,
		CreatedBy:     actor.ID,
		UpdatedBy:     actor.ID,
	}

	err = ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ws.weighingRepo.Create(ctx, tx, weighing); err != nil {
			return fmt.Errorf("failed to record weighing: %w", err)
		}
		status, err := ws.statusRepo.GetByArrivalID(ctx, tx, item.ArrivalID)
		if err != nil {
			return fmt.Errorf("failed to load arrival status: %w", err)
		}
		if status == nil {
			ws.log.Warn("Weighing on arrival without status row; skipping status update", "arrivalID", item.ArrivalID)
		} else {
			if err := status.CompleteWeighing(); err != nil {
				return err
			}
			status.UpdatedBy = actor.ID
			if err := ws.statusRepo.Update(ctx, tx, status); err != nil {
				return fmt.Errorf("failed to update arrival status: %w", err)
			}
		}
		return ws.notifier.WeighingRecorded(ctx, tx, arrival.Code)
	})
	if err != nil {
		return nil, err
	}

	// The reading is committed; photo failures only cost the attachment.
	for _, photo := range photos {
		key := storageKey("weighing", photo.Name)
		rc, err := photo.Open()
		if err != nil {
			ws.log.Warn("Failed to open weighing photo", "file", photo.Name, "error", err)
			continue
		}
		err = ws.bucket.UploadFile(ctx, key, photo.ContentType, rc)
		rc.Close()
		if err != nil {
			ws.log.Warn("Failed to store weighing photo", "file", photo.Name, "error", err)
			continue
		}
		if err := ws.photoRepo.CreateWeighingPhoto(ctx, nil, &types.WeighingPhoto{
			ID:            uuid.New(),
			ArrivalItemID: item.ID,
			StorageKey:    key,
			FileName:      photo.Name,
			CreatedBy:     actor.ID,
		}); err != nil {
			ws.log.Warn("Failed to record weighing photo", "file", photo.Name, "error", err)
		}
	}

	ws.log.Info("Weighing recorded", "arrivalItemID", item.ID, "weight", input.Weight)
	return weighing, nil
}

func (ws *weighingService) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*types.Weighing, error) {
	return ws.weighingRepo.ListByItemID(ctx, nil, itemID)
}
