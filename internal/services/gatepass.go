package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
)

// GatePassService renders the printable gate pass QR. The QR encodes only
// the arrival code; the scanner resolves it through the by-code lookup.
type GatePassService interface {
	QRPng(ctx context.Context, arrivalID uuid.UUID) ([]byte, error)
}

type gatePassService struct {
	log         *logger.Logger
	arrivalRepo repos.ArrivalRepo
}

func NewGatePassService(arrivalRepo repos.ArrivalRepo, log *logger.Logger) GatePassService {
	return &gatePassService{
		log:         log.With("service", "GatePassService"),
		arrivalRepo: arrivalRepo,
	}
}

func (gs *gatePassService) QRPng(ctx context.Context, arrivalID uuid.UUID) ([]byte, error) {
	arrival, err := gs.arrivalRepo.GetByID(ctx, nil, arrivalID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(arrival.Code, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gate pass QR: %w", err)
	}
	return png, nil
}
