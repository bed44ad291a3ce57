package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/appstore-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database described by settings. Postgres is used for
// DB_TYPE "postgres" (or "supa"); "sqlite" opens a local file. When a replica
// DSN is configured, reads outside transactions are routed to it.
func Open(settings config.DatabaseSettings) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	}

	var db *gorm.DB
	var err error
	switch settings.Type {
	case "postgres", "supa":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  settings.DSN(),
			PreferSimpleProtocol: true,
		}), gormConfig)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(settings.SQLitePath), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", settings.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", settings.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if settings.Type == "sqlite" {
		// sqlite allows a single writer; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(60 * time.Minute)
	}

	if settings.ReplicaDSN != "" {
		if settings.Type == "sqlite" {
			return nil, fmt.Errorf("DB_REPLICA_DSN is only supported with postgres")
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  settings.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
