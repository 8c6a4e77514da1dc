package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// Parameter types: whether a reading counts against the sample or is merely
// recorded alongside it.
const (
	ParameterTypeReduction   = "reduction"
	ParameterTypeInformation = "information"
)

type ParameterSettingInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ParameterInput struct {
	Name     string                  `json:"name"`
	Unit     string                  `json:"unit"`
	Type     string                  `json:"type"`
	Settings []ParameterSettingInput `json:"settings"`
}

type ParameterService interface {
	List(ctx context.Context, offset, limit int) ([]*types.Parameter, int64, error)
	GetAll(ctx context.Context) ([]*types.Parameter, error)
	Create(ctx context.Context, input ParameterInput) (*types.Parameter, error)
	Update(ctx context.Context, id uuid.UUID, input ParameterInput) (*types.Parameter, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type parameterService struct {
	log           *logger.Logger
	db            *gorm.DB
	parameterRepo repos.ParameterRepo
}

func NewParameterService(db *gorm.DB, parameterRepo repos.ParameterRepo, log *logger.Logger) ParameterService {
	return &parameterService{
		log:           log.With("service", "ParameterService"),
		db:            db,
		parameterRepo: parameterRepo,
	}
}

func (ps *parameterService) List(ctx context.Context, offset, limit int) ([]*types.Parameter, int64, error) {
	offset, limit = clampPage(offset, limit)
	return ps.parameterRepo.List(ctx, nil, offset, limit)
}

func (ps *parameterService) GetAll(ctx context.Context) ([]*types.Parameter, error) {
	return ps.parameterRepo.GetAll(ctx, nil)
}

func validateParameterInput(input ParameterInput) error {
	ve := NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		ve.Add("name", "Name is required.")
	}
	if strings.TrimSpace(input.Unit) == "" {
		ve.Add("unit", "Unit is required.")
	}
	if input.Type != ParameterTypeReduction && input.Type != ParameterTypeInformation {
		ve.Add("type", "Type must be reduction or information.")
	}
	for i, s := range input.Settings {
		if strings.TrimSpace(s.Key) == "" {
			ve.Add(fmt.Sprintf("settings.%d.key", i), "Key is required.")
		}
	}
	return ve.OrNil()
}

func buildSettings(parameterID uuid.UUID, inputs []ParameterSettingInput) []types.ParameterSetting {
	settings := make([]types.ParameterSetting, 0, len(inputs))
	for _, s := range inputs {
		settings = append(settings, types.ParameterSetting{
			ID:          uuid.New(),
			ParameterID: parameterID,
			Key:         strings.TrimSpace(s.Key),
			Value:       s.Value,
		})
	}
	return settings
}

func (ps *parameterService) Create(ctx context.Context, input ParameterInput) (*types.Parameter, error) {
	if err := validateParameterInput(input); err != nil {
		return nil, err
	}
	param := &types.Parameter{
		ID:   uuid.New(),
		Name: strings.TrimSpace(input.Name),
		Unit: strings.TrimSpace(input.Unit),
		Type: input.Type,
	}
	param.Settings = buildSettings(param.ID, input.Settings)
	if err := ps.parameterRepo.Create(ctx, nil, param); err != nil {
		return nil, fmt.Errorf("failed to create parameter: %w", err)
	}
	return param, nil
}

func (ps *parameterService) Update(ctx context.Context, id uuid.UUID, input ParameterInput) (*types.Parameter, error) {
	if err := validateParameterInput(input); err != nil {
		return nil, err
	}
	existing, err := ps.parameterRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	param := existing[0]
	param.Name = strings.TrimSpace(input.Name)
	param.Unit = strings.TrimSpace(input.Unit)
	param.Type = input.Type
	settings := buildSettings(param.ID, input.Settings)

	// Settings are replaced wholesale together with the parameter row.
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.parameterRepo.Update(ctx, tx, param); err != nil {
			return err
		}
		return ps.parameterRepo.ReplaceSettings(ctx, tx, param.ID, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update parameter: %w", err)
	}
	param.Settings = settings
	return param, nil
}

func (ps *parameterService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ps.parameterRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete parameter: %w", err)
	}
	return nil
}
