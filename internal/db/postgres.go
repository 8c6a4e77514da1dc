package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/types"
	"github.com/sikabapp/sikab-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "sikab", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	return AutoMigrate(s.db)
}

// AutoMigrate is shared between the postgres service and the sqlite test
// harness so both always migrate the same model set.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.Supplier{},
		&types.Material{},
		&types.Condition{},
		&types.QcStatus{},
		&types.Parameter{},
		&types.ParameterSetting{},
		&types.Arrival{},
		&types.ArrivalStatus{},
		&types.ArrivalItem{},
		&types.SecurityPhoto{},
		&types.Weighing{},
		&types.WeighingPhoto{},
		&types.QcHistory{},
		&types.QcResult{},
		&types.QcPhoto{},
		&types.Notification{},
		&types.ArrivalSequence{},
	)
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
