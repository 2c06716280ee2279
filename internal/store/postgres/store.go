// Package postgres implements the calsync store on PostgreSQL using gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/calsync/calsync-server/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store provides PostgreSQL-backed persistence for users and calendar events.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

type userRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"not null"`
	Email      string    `gorm:"not null"`
	EmailLower string    `gorm:"not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

type eventRecord struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"`
	UserID      int64       `gorm:"not null;index:idx_calendar_events_user_id"`
	User        *userRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string      `gorm:"not null"`
	Date        time.Time   `gorm:"type:date;not null"`
	CountryCode string      `gorm:"not null;default:''"`
	SyncID      string      `gorm:"not null;default:''"`
	CreatedAt   time.Time   `gorm:"not null"`
}

func (eventRecord) TableName() string { return "calendar_events" }

// Open connects to PostgreSQL and migrates the schema.
func Open(dsn string, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)

	if err := db.AutoMigrate(&userRecord{}, &eventRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debug("postgres store opened")

	return &Store{db: db, logger: log}, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound.WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrAlreadyExists.WithCause(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return store.ErrNotFound.WithCause(err)
	default:
		return err
	}
}
