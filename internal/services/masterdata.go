package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// MasterDataService covers the four simple reference catalogs: suppliers,
// materials, conditions and QC statuses. Parameters live in their own
// service because of the settings sub-resource.

type SupplierInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type NamedInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MasterDataService interface {
	ListSuppliers(ctx context.Context, offset, limit int) ([]*types.Supplier, int64, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (*types.Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, input SupplierInput) (*types.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	ListMaterials(ctx context.Context, offset, limit int) ([]*types.Material, int64, error)
	CreateMaterial(ctx context.Context, input NamedInput) (*types.Material, error)
	UpdateMaterial(ctx context.Context, id uuid.UUID, input NamedInput) (*types.Material, error)
	DeleteMaterial(ctx context.Context, id uuid.UUID) error

	ListConditions(ctx context.Context, offset, limit int) ([]*types.Condition, int64, error)
	CreateCondition(ctx context.Context, input NamedInput) (*types.Condition, error)
	UpdateCondition(ctx context.Context, id uuid.UUID, input NamedInput) (*types.Condition, error)
	DeleteCondition(ctx context.Context, id uuid.UUID) error

	ListQcStatuses(ctx context.Context, offset, limit int) ([]*types.QcStatus, int64, error)
	CreateQcStatus(ctx context.Context, input NamedInput) (*types.QcStatus, error)
	UpdateQcStatus(ctx context.Context, id uuid.UUID, input NamedInput) (*types.QcStatus, error)
	DeleteQcStatus(ctx context.Context, id uuid.UUID) error
}

type masterDataService struct {
	log          *logger.Logger
	supplierRepo repos.SupplierRepo
	materialRepo repos.MaterialRepo
	conditionRepo repos.ConditionRepo
	qcStatusRepo repos.QcStatusRepo
}

func NewMasterDataService(
	supplierRepo repos.SupplierRepo,
	materialRepo repos.MaterialRepo,
	conditionRepo repos.ConditionRepo,
	qcStatusRepo repos.QcStatusRepo,
	log *logger.Logger,
) MasterDataService {
	return &masterDataService{
		log:           log.With("service", "MasterDataService"),
		supplierRepo:  supplierRepo,
		materialRepo:  materialRepo,
		conditionRepo: conditionRepo,
		qcStatusRepo:  qcStatusRepo,
	}
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

func requireName(name string) error {
	ve := NewValidationError()
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "Name is required.")
	}
	return ve.OrNil()
}

// Suppliers

func (ms *masterDataService) ListSuppliers(ctx context.Context, offset, limit int) ([]*types.Supplier, int64, error) {
	offset, limit = clampPage(offset, limit)
	return ms.supplierRepo.List(ctx, nil, offset, limit)
}

func (ms *masterDataService) CreateSupplier(ctx context.Context, input SupplierInput) (*types.Supplier, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	s := &types.Supplier{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(input.Name),
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
	}
	if err := ms.supplierRepo.Create(ctx, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (ms *masterDataService) UpdateSupplier(ctx context.Context, id uuid.UUID, input SupplierInput) (*types.Supplier, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	existing, err := ms.supplierRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	s := existing[0]
	s.Name = strings.TrimSpace(input.Name)
	s.Address = input.Address
	s.Phone = input.Phone
	s.Email = input.Email
	if err := ms.supplierRepo.Update(ctx, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (ms *masterDataService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return ms.supplierRepo.Delete(ctx, nil, id)
}

// Materials

func (ms *masterDataService) ListMaterials(ctx context.Context, offset, limit int) ([]*types.Material, int64, error) {
	offset, limit = clampPage(offset, limit)
	return ms.materialRepo.List(ctx, nil, offset, limit)
}

func (ms *masterDataService) CreateMaterial(ctx context.Context, input NamedInput) (*types.Material, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	m := &types.Material{ID: uuid.New(), Name: strings.TrimSpace(input.Name), Description: input.Description}
	if err := ms.materialRepo.Create(ctx, nil, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (ms *masterDataService) UpdateMaterial(ctx context.Context, id uuid.UUID, input NamedInput) (*types.Material, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	existing, err := ms.materialRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	m := existing[0]
	m.Name = strings.TrimSpace(input.Name)
	m.Description = input.Description
	if err := ms.materialRepo.Update(ctx, nil, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (ms *masterDataService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return ms.materialRepo.Delete(ctx, nil, id)
}

// Conditions

func (ms *masterDataService) ListConditions(ctx context.Context, offset, limit int) ([]*types.Condition, int64, error) {
	offset, limit = clampPage(offset, limit)
	return ms.conditionRepo.List(ctx, nil, offset, limit)
}

func (ms *masterDataService) CreateCondition(ctx context.Context, input NamedInput) (*types.Condition, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	c := &types.Condition{ID: uuid.New(), Name: strings.TrimSpace(input.Name), Description: input.Description}
	if err := ms.conditionRepo.Create(ctx, nil, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (ms *masterDataService) UpdateCondition(ctx context.Context, id uuid.UUID, input NamedInput) (*types.Condition, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	existing, err := ms.conditionRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	c := existing[0]
	c.Name = strings.TrimSpace(input.Name)
	c.Description = input.Description
	if err := ms.conditionRepo.Update(ctx, nil, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (ms *masterDataService) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	return ms.conditionRepo.Delete(ctx, nil, id)
}

// QC statuses

func (ms *masterDataService) ListQcStatuses(ctx context.Context, offset, limit int) ([]*types.QcStatus, int64, error) {
	offset, limit = clampPage(offset, limit)
	return ms.qcStatusRepo.List(ctx, nil, offset, limit)
}

func (ms *masterDataService) CreateQcStatus(ctx context.Context, input NamedInput) (*types.QcStatus, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	s := &types.QcStatus{ID: uuid.New(), Name: strings.TrimSpace(input.Name), Description: input.Description}
	if err := ms.qcStatusRepo.Create(ctx, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (ms *masterDataService) UpdateQcStatus(ctx context.Context, id uuid.UUID, input NamedInput) (*types.QcStatus, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	existing, err := ms.qcStatusRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	s := existing[0]
	s.Name = strings.TrimSpace(input.Name)
	s.Description = input.Description
	if err := ms.qcStatusRepo.Update(ctx, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (ms *masterDataService) DeleteQcStatus(ctx context.Context, id uuid.UUID) error {
	return ms.qcStatusRepo.Delete(ctx, nil, id)
}
