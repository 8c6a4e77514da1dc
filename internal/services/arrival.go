package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type ArrivalLineInput struct {
	MaterialID        uuid.UUID `json:"materialId"`
	ConditionID       uuid.UUID `json:"conditionId"`
	ConditionCategory string    `json:"conditionCategory"`
	Quantity          float64   `json:"quantity"`
	ItemName          string    `json:"itemName"`
	Note              string    `json:"note"`
}

type CreateArrivalInput struct {
	SupplierID    uuid.UUID          `json:"supplierId"`
	VehiclePlate  string             `json:"vehiclePlate"`
	DeliveryOrder string             `json:"deliveryOrder"`
	ArrivalTime   time.Time          `json:"arrivalTime"`
	City          string             `json:"city"`
	Note          string             `json:"note"`
	Materials     []ArrivalLineInput `json:"materials"`
}

type ApproveInput struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type ListArrivalsInput struct {
	Day    time.Time // zero means no day filter
	Offset int
	Limit  int
}

// ArrivalSummary is one list/dashboard row: the arrival plus its derived
// per-item progress counts.
type ArrivalSummary struct {
	Arrival      *types.Arrival `json:"arrival"`
	TotalItems   int            `json:"total_items"`
	QcDone       int            `json:"qc_done"`
	WeighingDone int            `json:"weighing_done"`
}

// Dashboard is the two-bucket view each role page renders.
type Dashboard struct {
	Pending   []*ArrivalSummary `json:"pending"`
	Completed []*ArrivalSummary `json:"completed"`
}

type ArrivalService interface {
	Create(ctx context.Context, actor *SessionUser, input CreateArrivalInput, proofs []FileUpload) (*types.Arrival, error)
	// Approve marks the approval step done. It is not gated on weighing/QC;
	// instead it returns human-readable warnings when either is still pending.
	Approve(ctx context.Context, actor *SessionUser, arrivalID uuid.UUID, input ApproveInput) ([]string, error)
	List(ctx context.Context, input ListArrivalsInput) ([]*ArrivalSummary, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Arrival, error)
	GetByCode(ctx context.Context, code string) (*types.Arrival, error)
	SecurityDashboard(ctx context.Context, day time.Time) (*Dashboard, error)
	WeighingDashboard(ctx context.Context, day time.Time) (*Dashboard, error)
	QcDashboard(ctx context.Context, day time.Time) (*Dashboard, error)
	// CleanupSequences drops per-day counter rows older than retention.
	CleanupSequences(ctx context.Context, retention time.Duration) error
}

type arrivalService struct {
	log          *logger.Logger
	db           *gorm.DB
	arrivalRepo  repos.ArrivalRepo
	itemRepo     repos.ArrivalItemRepo
	statusRepo   repos.ArrivalStatusRepo
	sequenceRepo repos.SequenceRepo
	photoRepo    repos.PhotoRepo
	bucket       BucketService
	notifier     ArrivalNotifier
}

func NewArrivalService(
	db *gorm.DB,
	arrivalRepo repos.ArrivalRepo,
	itemRepo repos.ArrivalItemRepo,
	statusRepo repos.ArrivalStatusRepo,
	sequenceRepo repos.SequenceRepo,
	photoRepo repos.PhotoRepo,
	bucket BucketService,
	notifier ArrivalNotifier,
	log *logger.Logger,
) ArrivalService {
	return &arrivalService{
		log:          log.With("service", "ArrivalService"),
		db:           db,
		arrivalRepo:  arrivalRepo,
		itemRepo:     itemRepo,
		statusRepo:   statusRepo,
		sequenceRepo: sequenceRepo,
		photoRepo:    photoRepo,
		bucket:       bucket,
		notifier:     notifier,
	}
}

func validateCreateArrival(input CreateArrivalInput, proofs []FileUpload) error {
	ve := NewValidationError()
	if input.SupplierID == uuid.Nil {
		ve.Add("supplierId", "Supplier is required.")
	}
	if strings.TrimSpace(input.VehiclePlate) == "" {
		ve.Add("vehiclePlate", "Vehicle plate is required.")
	}
	if input.ArrivalTime.IsZero() {
		ve.Add("arrivalTime", "Arrival time is required.")
	}
	if len(input.Materials) == 0 {
		ve.Add("materials", "At least one material line is required.")
	}
	for i, line := range input.Materials {
		if line.MaterialID == uuid.Nil {
			ve.Add(fmt.Sprintf("materials.%d.materialId", i), "Material is required.")
		}
		if line.ConditionID == uuid.Nil {
			ve.Add(fmt.Sprintf("materials.%d.conditionId", i), "Condition is required.")
		}
		if !types.ValidConditionCategory(line.ConditionCategory) {
			ve.Add(fmt.Sprintf("materials.%d.conditionCategory", i), "Condition category must be Wet or Dry.")
		}
		if line.Quantity <= 0 {
			ve.Add(fmt.Sprintf("materials.%d.quantity", i), "Quantity must be greater than zero.")
		}
	}
	validateUploads("securityProof", proofs, ve)
	return ve.OrNil()
}

func (s *arrivalService) Create(ctx context.Context, actor *SessionUser, input CreateArrivalInput, proofs []FileUpload) (*types.Arrival, error) {
	if err := validateCreateArrival(input, proofs); err != nil {
		return nil, err
	}

	// Proofs go to storage before anything is written: a failed upload aborts
	// the whole intake, leaving no arrival behind.
	type uploaded struct {
		key  string
		name string
	}
	var stored []uploaded
	for _, proof := range proofs {
		key := storageKey("security", proof.Name)
		rc, err := proof.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %q: %w", proof.Name, err)
		}
		err = s.bucket.UploadFile(ctx, key, proof.ContentType, rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to store proof %q: %w", proof.Name, err)
		}
		stored = append(stored, uploaded{key: key, name: proof.Name})
	}

	arrival := &types.Arrival{
		ID:            uuid.New(),
		SupplierID:    input.SupplierID,
		VehiclePlate:  strings.TrimSpace(input.VehiclePlate),
		DeliveryOrder: strings.TrimSpace(input.DeliveryOrder),
		ArrivalTime:   input.ArrivalTime,
		City:          input.City,
		Note:          input.Note,
		CreatedBy:     actor.ID,
		UpdatedBy:     actor.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		day := input.ArrivalTime.Format("20060102")
		seq, err := s.sequenceRepo.Next(ctx, tx, day)
		if err != nil {
			return fmt.Errorf("failed to allocate arrival number: %w", err)
		}
		arrival.Code = fmt.Sprintf("%s-%03d", day, seq)

		if err := s.arrivalRepo.Create(ctx, tx, arrival); err != nil {
			return fmt.Errorf("failed to create arrival: %w", err)
		}

		items := make([]*types.ArrivalItem, 0, len(input.Materials))
		for _, line := range input.Materials {
			items = append(items, &types.ArrivalItem{
				ID:                uuid.New(),
				ArrivalID:         arrival.ID,
				MaterialID:        line.MaterialID,
				ConditionID:       line.ConditionID,
				ConditionCategory: line.ConditionCategory,
				Quantity:          line.Quantity,
				ItemName:          line.ItemName,
				Note:              line.Note,
				CreatedBy:         actor.ID,
				UpdatedBy:         actor.ID,
			})
		}
		if err := s.itemRepo.CreateMany(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to create arrival items: %w", err)
		}
		arrival.Items = make([]types.ArrivalItem, 0, len(items))
		for _, it := range items {
			arrival.Items = append(arrival.Items, *it)
		}

		status := types.NewArrivalStatus(arrival.ID, actor.ID)
		if err := s.statusRepo.Create(ctx, tx, status); err != nil {
			return fmt.Errorf("failed to create arrival status: %w", err)
		}
		arrival.Status = status

		photos := make([]*types.SecurityPhoto, 0, len(stored))
		for _, up := range stored {
			photos = append(photos, &types.SecurityPhoto{
				ID:         uuid.New(),
				ArrivalID:  arrival.ID,
				StorageKey: up.key,
				FileName:   up.name,
				CreatedBy:  actor.ID,
			})
		}
		if err := s.photoRepo.CreateSecurityPhotos(ctx, tx, photos); err != nil {
			return fmt.Errorf("failed to record proof photos: %w", err)
		}

		return s.notifier.ArrivalCreated(ctx, tx, arrival.Code)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Arrival registered", "arrivalID", arrival.ID, "code", arrival.Code, "items", len(arrival.Items))
	return arrival, nil
}

func (s *arrivalService) Approve(ctx context.Context, actor *SessionUser, arrivalID uuid.UUID, input ApproveInput) ([]string, error) {
	arrival, err := s.arrivalRepo.GetByID(ctx, nil, arrivalID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Note != "" {
			arrival.Note = input.Note
			arrival.UpdatedBy = actor.ID
			if err := s.arrivalRepo.Update(ctx, tx, arrival); err != nil {
				return fmt.Errorf("failed to update arrival note: %w", err)
			}
		}

		status, err := s.statusRepo.GetByArrivalID(ctx, tx, arrivalID)
		if err != nil {
			return fmt.Errorf("failed to load arrival status: %w", err)
		}
		if status == nil {
			s.log.Warn("Approve on arrival without status row; skipping status update", "arrivalID", arrivalID)
		} else {
			if status.StatusWeighing != types.WeighingCompleted {
				warnings = append(warnings, "Weighing has not been completed for this arrival.")
			}
			if status.StatusQc != types.QcCompleted {
				warnings = append(warnings, "QC has not been completed for this arrival.")
			}
			if err := status.CompleteApproval(input.Status); err != nil {
				return err
			}
			status.UpdatedBy = actor.ID
			if err := s.statusRepo.Update(ctx, tx, status); err != nil {
				return fmt.Errorf("failed to update arrival status: %w", err)
			}
		}

		return s.notifier.ArrivalApproved(ctx, tx, arrival.Code)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Arrival approved", "arrivalID", arrivalID, "code", arrival.Code, "warnings", len(warnings))
	return warnings, nil
}

func dayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24 * time.Hour)
}

func (s *arrivalService) summarize(ctx context.Context, arrivals []*types.Arrival) ([]*ArrivalSummary, error) {
	ids := make([]uuid.UUID, 0, len(arrivals))
	for _, a := range arrivals {
		ids = append(ids, a.ID)
	}
	counts, err := s.itemRepo.CountsByArrivalIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load item counts: %w", err)
	}
	out := make([]*ArrivalSummary, 0, len(arrivals))
	for _, a := range arrivals {
		c := counts[a.ID]
		out = append(out, &ArrivalSummary{
			Arrival:      a,
			TotalItems:   c.TotalItems,
			QcDone:       c.QcDone,
			WeighingDone: c.WeighingDone,
		})
	}
	return out, nil
}

func (s *arrivalService) List(ctx context.Context, input ListArrivalsInput) ([]*ArrivalSummary, int64, error) {
	filter := repos.ArrivalFilter{Offset: input.Offset, Limit: input.Limit}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 10
	}
	if !input.Day.IsZero() {
		filter.DayStart, filter.DayEnd = dayRange(input.Day)
	}
	arrivals, total, err := s.arrivalRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, 0, err
	}
	summaries, err := s.summarize(ctx, arrivals)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (s *arrivalService) GetByID(ctx context.Context, id uuid.UUID) (*types.Arrival, error) {
	return s.arrivalRepo.GetByID(ctx, nil, id)
}

func (s *arrivalService) GetByCode(ctx context.Context, code string) (*types.Arrival, error) {
	return s.arrivalRepo.GetByCode(ctx, nil, code)
}

func (s *arrivalService) todaySummaries(ctx context.Context, day time.Time) ([]*ArrivalSummary, error) {
	if day.IsZero() {
		day = time.Now()
	}
	start, end := dayRange(day)
	arrivals, _, err := s.arrivalRepo.List(ctx, nil, repos.ArrivalFilter{DayStart: start, DayEnd: end})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, arrivals)
}

// SecurityDashboard splits the day's arrivals on the approval sub-status.
func (s *arrivalService) SecurityDashboard(ctx context.Context, day time.Time) (*Dashboard, error) {
	summaries, err := s.todaySummaries(ctx, day)
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{Pending: []*ArrivalSummary{}, Completed: []*ArrivalSummary{}}
	for _, sum := range summaries {
		if sum.Arrival.Status != nil && sum.Arrival.Status.StatusApproval == types.ApprovalCompleted {
			dash.Completed = append(dash.Completed, sum)
		} else {
			dash.Pending = append(dash.Pending, sum)
		}
	}
	return dash, nil
}

// WeighingDashboard buckets on recorded weighings per arrival, not the enum
// flag: an arrival is pending until at least one of its items has a reading.
func (s *arrivalService) WeighingDashboard(ctx context.Context, day time.Time) (*Dashboard, error) {
	summaries, err := s.todaySummaries(ctx, day)
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{Pending: []*ArrivalSummary{}, Completed: []*ArrivalSummary{}}
	for _, sum := range summaries {
		if sum.WeighingDone > 0 {
			dash.Completed = append(dash.Completed, sum)
		} else {
			dash.Pending = append(dash.Pending, sum)
		}
	}
	return dash, nil
}

// QcDashboard works the same way off QC result existence.
func (s *arrivalService) QcDashboard(ctx context.Context, day time.Time) (*Dashboard, error) {
	summaries, err := s.todaySummaries(ctx, day)
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{Pending: []*ArrivalSummary{}, Completed: []*ArrivalSummary{}}
	for _, sum := range summaries {
		if sum.QcDone > 0 {
			dash.Completed = append(dash.Completed, sum)
		} else {
			dash.Pending = append(dash.Pending, sum)
		}
	}
	return dash, nil
}

func (s *arrivalService) CleanupSequences(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().Add(-retention).Format("20060102")
	deleted, err := s.sequenceRepo.DeleteBefore(ctx, nil, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up sequences: %w", err)
	}
	if deleted > 0 {
		s.log.Info("Stale arrival sequences removed", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}
