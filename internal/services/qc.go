package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type QcResultInput struct {
	ParameterID uuid.UUID      `json:"parameterId"`
	Value       float64        `json:"value"`
	Additional  map[string]any `json:"additional,omitempty"`
}

type QcItemInput struct {
	ArrivalItemID uuid.UUID       `json:"arrivalItemId"`
	QcStatusID    uuid.UUID       `json:"qcStatusId"`
	Sample        float64         `json:"sample"`
	Impurity      float64         `json:"impurity"`
	NetWeight     float64         `json:"netWeight"`
	DryingHours   float64         `json:"dryingHours"`
	Note          string          `json:"note"`
	Results       []QcResultInput `json:"results"`
}

type SubmitQcInput struct {
	ArrivalID uuid.UUID     `json:"arrivalId"`
	City      string        `json:"city"`
	Items     []QcItemInput `json:"items"`
}

type QcService interface {
	// Submit records one full QC pass over an arrival: per item it overwrites
	// the live qc_* fields, appends a history row and its result rows, then
	// marks the arrival's QC step done. Photos are stored best-effort after
	// the commit, keyed by arrival item.
	Submit(ctx context.Context, actor *SessionUser, input SubmitQcInput, photos map[uuid.UUID][]FileUpload) error
	HistoryByItem(ctx context.Context, itemID uuid.UUID) ([]*types.QcHistory, error)
	LatestByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.QcHistory, error)
}

type qcService struct {
	log         *logger.Logger
	db          *gorm.DB
	historyRepo repos.QcHistoryRepo
	resultRepo  repos.QcResultRepo
	itemRepo    repos.ArrivalItemRepo
	arrivalRepo repos.ArrivalRepo
	statusRepo  repos.ArrivalStatusRepo
	photoRepo   repos.PhotoRepo
	bucket      BucketService
	notifier    ArrivalNotifier
}

func NewQcService(
	db *gorm.DB,
	historyRepo repos.QcHistoryRepo,
	resultRepo repos.QcResultRepo,
	itemRepo repos.ArrivalItemRepo,
	arrivalRepo repos.ArrivalRepo,
	statusRepo repos.ArrivalStatusRepo,
	photoRepo repos.PhotoRepo,
	bucket BucketService,
	notifier ArrivalNotifier,
	log *logger.Logger,
) QcService {
	return &qcService{
		log:         log.With("service", "QcService"),
		db:          db,
		historyRepo: historyRepo,
		resultRepo:  resultRepo,
		itemRepo:    itemRepo,
		arrivalRepo: arrivalRepo,
		statusRepo:  statusRepo,
		photoRepo:   photoRepo,
		bucket:      bucket,
		notifier:    notifier,
	}
}

// DeriveQcTotals reproduces the QC form arithmetic: the net weight is the
// sample with each parameter reading subtracted in turn, and the impurity is
// whatever remains after the net weight and the readings are both taken out
// of the sample. With exact figures the impurity is therefore zero; a nonzero
// value signals rounding or manual adjustment on the form.
func DeriveQcTotals(sample float64, values []float64) (net, impurity float64) {
	net = sample
	var sum float64
	for _, v := range values {
		net -= v
		sum += v
	}
	impurity = sample - net - sum
	return net, impurity
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateSubmitQc(input SubmitQcInput) error {
	ve := NewValidationError()
	if input.ArrivalID == uuid.Nil {
		ve.Add("arrivalId", "Arrival is required.")
	}
	if len(input.Items) == 0 {
		ve.Add("items", "At least one item is required.")
	}
	for i, item := range input.Items {
		if item.ArrivalItemID == uuid.Nil {
			ve.Add(fmt.Sprintf("items.%d.arrivalItemId", i), "Arrival item is required.")
		}
		if item.QcStatusID == uuid.Nil {
			ve.Add(fmt.Sprintf("items.%d.qcStatusId", i), "QC status is required.")
		}
		if item.Sample < 1 {
			ve.Add(fmt.Sprintf("items.%d.sample", i), "Sample weight must be at least 1.")
		}
		for j, r := range item.Results {
			if r.ParameterID == uuid.Nil {
				ve.Add(fmt.Sprintf("items.%d.results.%d.parameterId", i, j), "Parameter is required.")
			}
		}
	}
	return ve.OrNil()
}

func (qs *qcService) Submit(ctx context.Context, actor *SessionUser, input SubmitQcInput, photos map[uuid.UUID][]FileUpload) error {
	if err := validateSubmitQc(input); err != nil {
		return err
	}

	arrival, err := qs.arrivalRepo.GetByID(ctx, nil, input.ArrivalID)
	if err != nil {
		return fmt.Errorf("failed to load arrival: %w", err)
	}

	// Submitted totals are trusted as entered on the form; a derivation
	// mismatch is only flagged in the logs.
	for _, item := range input.Items {
		values := make([]float64, 0, len(item.Results))
		for _, r := range item.Results {
			values = append(values, r.Value)
		}
		net, impurity := DeriveQcTotals(item.Sample, values)
		if round2(net) != round2(item.NetWeight) || round2(impurity) != round2(item.Impurity) {
			qs.log.Warn("QC totals differ from derivation",
				"arrivalItemID", item.ArrivalItemID,
				"submittedNet", item.NetWeight, "derivedNet", net,
				"submittedImpurity", item.Impurity, "derivedImpurity", impurity)
		}
	}

	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Items {
			statusID := item.QcStatusID
			if err := qs.itemRepo.UpdateQcFields(ctx, tx, &types.ArrivalItem{
				ID:            item.ArrivalItemID,
				QcStatusID:    &statusID,
				QcSample:      item.Sample,
				QcImpurity:    item.Impurity,
				QcNetWeight:   item.NetWeight,
				QcDryingHours: item.DryingHours,
				QcNote:        item.Note,
				UpdatedBy:     actor.ID,
			}); err != nil {
				return fmt.Errorf("failed to update item qc fields: %w", err)
			}

			history := &types.QcHistory{
				ID:            uuid.New(),
				ArrivalID:     input.ArrivalID,
				ArrivalItemID: item.ArrivalItemID,
				UserID:        actor.ID,
				QcStatusID:    item.QcStatusID,
				Sample:        item.Sample,
				Impurity:      item.Impurity,
				NetWeight:     item.NetWeight,
				DryingHours:   item.DryingHours,
				Note:          item.Note,
			}
			if err := qs.historyRepo.Create(ctx, tx, history); err != nil {
				return fmt.Errorf("failed to create qc history: %w", err)
			}

			results := make([]*types.QcResult, 0, len(item.Results))
			for _, r := range item.Results {
				var additional datatypes.JSON
				if len(r.Additional) > 0 {
					raw, err := json.Marshal(r.Additional)
					if err != nil {
						return fmt.Errorf("failed to encode result extras: %w", err)
					}
					additional = datatypes.JSON(raw)
				}
				var pct float64
				if item.Sample > 0 {
					pct = round2(r.Value / item.Sample * 100)
				}
				results = append(results, &types.QcResult{
					ID:            uuid.New(),
					ArrivalItemID: item.ArrivalItemID,
					ParameterID:   r.ParameterID,
					HistoryID:     history.ID,
					Value:         r.Value,
					Percentage:    pct,
					Additional:    additional,
					CreatedBy:     actor.ID,
				})
			}
			if err := qs.resultRepo.CreateMany(ctx, tx, results); err != nil {
				return fmt.Errorf("failed to create qc results: %w", err)
			}
		}

		if input.City != "" && input.City != arrival.City {
			arrival.City = input.City
			arrival.UpdatedBy = actor.ID
			if err := qs.arrivalRepo.Update(ctx, tx, arrival); err != nil {
				return fmt.Errorf("failed to update arrival city: %w", err)
			}
		}

		status, err := qs.statusRepo.GetByArrivalID(ctx, tx, input.ArrivalID)
		if err != nil {
			return fmt.Errorf("failed to load arrival status: %w", err)
		}
		if status == nil {
			qs.log.Warn("QC on arrival without status row; skipping status update", "arrivalID", input.ArrivalID)
		} else {
			if err := status.CompleteQc(); err != nil {
				return err
			}
			status.UpdatedBy = actor.ID
			if err := qs.statusRepo.Update(ctx, tx, status); err != nil {
				return fmt.Errorf("failed to update arrival status: %w", err)
			}
		}

		return qs.notifier.QcSubmitted(ctx, tx, arrival.Code)
	})
	if err != nil {
		return err
	}

	for itemID, uploads := range photos {
		for _, photo := range uploads {
			key := storageKey("qc", photo.Name)
			rc, err := photo.Open()
			if err != nil {
				qs.log.Warn("Failed to open qc photo", "file", photo.Name, "error", err)
				continue
			}
			err = qs.bucket.UploadFile(ctx, key, photo.ContentType, rc)
			rc.Close()
			if err != nil {
				qs.log.Warn("Failed to store qc photo", "file", photo.Name, "error", err)
				continue
			}
			if err := qs.photoRepo.CreateQcPhoto(ctx, nil, &types.QcPhoto{
				ID:            uuid.New(),
				ArrivalItemID: itemID,
				StorageKey:    key,
				FileName:      photo.Name,
				CreatedBy:     actor.ID,
			}); err != nil {
				qs.log.Warn("Failed to record qc photo", "file", photo.Name, "error", err)
			}
		}
	}

	qs.log.Info("QC submitted", "arrivalID", input.ArrivalID, "code", arrival.Code, "items", len(input.Items))
	return nil
}

func (qs *qcService) HistoryByItem(ctx context.Context, itemID uuid.UUID) ([]*types.QcHistory, error) {
	return qs.historyRepo.ListByItemID(ctx, nil, itemID)
}

func (qs *qcService) LatestByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.QcHistory, error) {
	return qs.historyRepo.GetLatestByItemIDs(ctx, nil, itemIDs)
}
