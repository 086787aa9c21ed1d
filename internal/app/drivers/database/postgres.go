package database

import (
	"context"
	"database/sql"
	"ehr-bundle-service/internal/app/config"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func NewPostgresDB(driverConfig *config.DriverConfig, logger *zap.Logger) *sql.DB {
	connectionString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		driverConfig.PostgresDB.Host,
		driverConfig.PostgresDB.Port,
		driverConfig.PostgresDB.Username,
		driverConfig.PostgresDB.Password,
		driverConfig.PostgresDB.DBName,
		driverConfig.PostgresDB.SSLMode)

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		logger.Fatal("Failed to open postgres database connection", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		logger.Fatal("Failed to connect to postgres database", zap.Error(err))
	}
	logger.Info("Successfully connected to postgres database",
		zap.String("database", driverConfig.PostgresDB.DBName),
	)
	return db
}
