package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/sikabapp/sikab-backend/internal/db"
	"github.com/sikabapp/sikab-backend/internal/handlers"
	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/server"
	"github.com/sikabapp/sikab-backend/internal/services"
	"github.com/sikabapp/sikab-backend/internal/sse"
	"github.com/sikabapp/sikab-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(utils.GetEnv("LOG_MODE", "development", nil), utils.GetEnv("LOG_FILE", "", nil))
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}
	gdb := pg.DB()

	// Repos
	userRepo := repos.NewUserRepo(gdb, log)
	supplierRepo := repos.NewSupplierRepo(gdb, log)
	materialRepo := repos.NewMaterialRepo(gdb, log)
	conditionRepo := repos.NewConditionRepo(gdb, log)
	qcStatusRepo := repos.NewQcStatusRepo(gdb, log)
	parameterRepo := repos.NewParameterRepo(gdb, log)
	arrivalRepo := repos.NewArrivalRepo(gdb, log)
	itemRepo := repos.NewArrivalItemRepo(gdb, log)
	statusRepo := repos.NewArrivalStatusRepo(gdb, log)
	sequenceRepo := repos.NewSequenceRepo(gdb, log)
	photoRepo := repos.NewPhotoRepo(gdb, log)
	weighingRepo := repos.NewWeighingRepo(gdb, log)
	historyRepo := repos.NewQcHistoryRepo(gdb, log)
	resultRepo := repos.NewQcResultRepo(gdb, log)
	notificationRepo := repos.NewNotificationRepo(gdb, log)

	// Services
	bucket, err := services.NewBucketService(log)
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	authService, err := services.NewAuthService(userRepo, log)
	if err != nil {
		log.Fatal("Failed to initialize auth", "error", err)
	}
	if err := authService.EnsureDefaultSuperadmin(context.Background()); err != nil {
		log.Fatal("Failed to bootstrap superadmin", "error", err)
	}
	notifier := services.NewArrivalNotifier(notificationRepo)
	userService := services.NewUserService(gdb, userRepo, log)
	masterService := services.NewMasterDataService(supplierRepo, materialRepo, conditionRepo, qcStatusRepo, log)
	parameterService := services.NewParameterService(gdb, parameterRepo, log)
	arrivalService := services.NewArrivalService(gdb, arrivalRepo, itemRepo, statusRepo, sequenceRepo, photoRepo, bucket, notifier, log)
	weighingService := services.NewWeighingService(gdb, weighingRepo, itemRepo, arrivalRepo, statusRepo, photoRepo, bucket, notifier, log)
	qcService := services.NewQcService(gdb, historyRepo, resultRepo, itemRepo, arrivalRepo, statusRepo, photoRepo, bucket, notifier, log)
	gatePassService := services.NewGatePassService(arrivalRepo, log)

	// SSE refresh channel
	hub := sse.NewSSEHub(log)
	pollInterval := time.Duration(utils.GetEnvAsInt("SSE_POLL_SECONDS", 5, log)) * time.Second
	poller := sse.NewNotificationPoller(hub, notificationRepo, pollInterval, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)

	// Nightly housekeeping: stale counter rows and orphaned refresh markers.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("15 2 * * *", func() {
		hctx, hcancel := context.WithTimeout(context.Background(), time.Minute)
		defer hcancel()
		if err := arrivalService.CleanupSequences(hctx, 7*24*time.Hour); err != nil {
			log.Warn("Sequence cleanup failed", "error", err)
		}
		if deleted, err := notificationRepo.DeleteOlderThan(hctx, nil, time.Now().Add(-24*time.Hour)); err != nil {
			log.Warn("Notification cleanup failed", "error", err)
		} else if deleted > 0 {
			log.Info("Orphaned notifications removed", "deleted", deleted)
		}
	}); err != nil {
		log.Fatal("Failed to schedule housekeeping", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	var origins []string
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		origins = strings.Split(raw, ",")
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:          log,
		AuthService:     authService,
		AuthHandler:     handlers.NewAuthHandler(authService, log),
		UserHandler:     handlers.NewUserHandler(userService, log),
		MasterHandler:   handlers.NewMasterDataHandler(masterService, log),
		ParamHandler:    handlers.NewParameterHandler(parameterService, log),
		ArrivalHandler:  handlers.NewArrivalHandler(arrivalService, gatePassService, log),
		WeighingHandler: handlers.NewWeighingHandler(weighingService, log),
		QcHandler:       handlers.NewQcHandler(qcService, log),
		FileHandler:     handlers.NewFileHandler(bucket, log),
		SSEHandler:      handlers.NewSSEHandler(hub, log),
		AllowedOrigins:  origins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
