package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/db"
	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache DSN keeps every pooled connection on one database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	return gdb
}

// stubBucket keeps uploads in memory so tests never reach real storage.
type stubBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newStubBucket() *stubBucket {
	return &stubBucket{objects: make(map[string][]byte)}
}

func (b *stubBucket) UploadFile(_ context.Context, key string, _ string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *stubBucket) DownloadFile(_ context.Context, key string) (io.ReadCloser, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return io.NopCloser(bytes.NewReader(b.objects[key])), "image/jpeg", nil
}

func (b *stubBucket) DeleteFile(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *stubBucket) GetPublicURL(key string) string { return "https://cdn.test/" + key }

func (b *stubBucket) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// testEnv wires the full workflow service graph over one in-memory database.
type testEnv struct {
	db       *gorm.DB
	bucket   *stubBucket
	arrivals ArrivalService
	weighing WeighingService
	qc       QcService

	arrivalRepo      repos.ArrivalRepo
	itemRepo         repos.ArrivalItemRepo
	statusRepo       repos.ArrivalStatusRepo
	weighingRepo     repos.WeighingRepo
	historyRepo      repos.QcHistoryRepo
	resultRepo       repos.QcResultRepo
	notificationRepo repos.NotificationRepo

	actor *SessionUser

	supplierID uuid.UUID
	materialID uuid.UUID
	conditionID uuid.UUID
	qcStatusID uuid.UUID
	parameterID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()
	bucket := newStubBucket()

	arrivalRepo := repos.NewArrivalRepo(gdb, log)
	itemRepo := repos.NewArrivalItemRepo(gdb, log)
	statusRepo := repos.NewArrivalStatusRepo(gdb, log)
	sequenceRepo := repos.NewSequenceRepo(gdb, log)
	photoRepo := repos.NewPhotoRepo(gdb, log)
	weighingRepo := repos.NewWeighingRepo(gdb, log)
	historyRepo := repos.NewQcHistoryRepo(gdb, log)
	resultRepo := repos.NewQcResultRepo(gdb, log)
	notificationRepo := repos.NewNotificationRepo(gdb, log)
	notifier := NewArrivalNotifier(notificationRepo)

	env := &testEnv{
		db:               gdb,
		bucket:           bucket,
		arrivals:         NewArrivalService(gdb, arrivalRepo, itemRepo, statusRepo, sequenceRepo, photoRepo, bucket, notifier, log),
		weighing:         NewWeighingService(gdb, weighingRepo, itemRepo, arrivalRepo, statusRepo, photoRepo, bucket, notifier, log),
		qc:               NewQcService(gdb, historyRepo, resultRepo, itemRepo, arrivalRepo, statusRepo, photoRepo, bucket, notifier, log),
		arrivalRepo:      arrivalRepo,
		itemRepo:         itemRepo,
		statusRepo:       statusRepo,
		weighingRepo:     weighingRepo,
		historyRepo:      historyRepo,
		resultRepo:       resultRepo,
		notificationRepo: notificationRepo,
		actor: &SessionUser{
			ID:       uuid.New(),
			Email:    "tester@example.com",
			Username: "tester",
			Role:     types.RoleSecurity,
		},
	}
	env.seedMasterData(t)
	return env
}

func (env *testEnv) seedMasterData(t *testing.T) {
	t.Helper()
	supplier := &types.Supplier{ID: uuid.New(), Name: "PT Sumber Karet"}
	material := &types.Material{ID: uuid.New(), Name: "Cup Lump"}
	condition := &types.Condition{ID: uuid.New(), Name: "Fresh"}
	qcStatus := &types.QcStatus{ID: uuid.New(), Name: "Lolos"}
	parameter := &types.Parameter{ID: uuid.New(), Name: "Moisture", Unit: "gr", Type: ParameterTypeReduction}
	require.NoError(t, env.db.Create(supplier).Error)
	require.NoError(t, env.db.Create(material).Error)
	require.NoError(t, env.db.Create(condition).Error)
	require.NoError(t, env.db.Create(qcStatus).Error)
	require.NoError(t, env.db.Create(parameter).Error)
	env.supplierID = supplier.ID
	env.materialID = material.ID
	env.conditionID = condition.ID
	env.qcStatusID = qcStatus.ID
	env.parameterID = parameter.ID
}

func (env *testEnv) newArrivalInput(lines int) CreateArrivalInput {
	materials := make([]ArrivalLineInput, 0, lines)
	for i := 0; i < lines; i++ {
		materials = append(materials, ArrivalLineInput{
			MaterialID:        env.materialID,
			ConditionID:       env.conditionID,
			ConditionCategory: types.ConditionWet,
			Quantity:          1000,
		})
	}
	return CreateArrivalInput{
		SupplierID:   env.supplierID,
		VehiclePlate: "BM 1234 XY",
		ArrivalTime:  time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
		City:         "Pekanbaru",
		Materials:    materials,
	}
}

func testUpload(name string) FileUpload {
	return FileUpload{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        1024,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("jpegdata"))), nil
		},
	}
}
