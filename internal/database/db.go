// Package database holds the Postgres stores, migrations and seeding.
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-tracker/internal/models"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to Postgres, retrying while the server comes up.
func Open(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		log.Infof("connecting to database (attempt %d/%d)", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			log.Info("connected to database")
			return db, nil
		}

		log.WithError(err).Warn("database connection failed")
		time.Sleep(retryBackoff)
	}
	return nil, fmt.Errorf("connect after %d attempts: %w", maxAttempts, err)
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
}

// OpenAudit opens the audit connection. It may point at the same server as
// the relational stores; nothing ever joins across the two.
func OpenAudit(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := Open(dsn, log.WithField("db", "audit"))
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.AuditRecord{}); err != nil {
		return nil, fmt.Errorf("migrate audit log: %w", err)
	}
	return db, nil
}

// notFound maps gorm's missing-row error to the (nil, nil) finder contract.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
