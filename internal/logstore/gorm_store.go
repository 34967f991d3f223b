package logstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PencariData/search-service-api/internal/config"
	"github.com/PencariData/search-service-api/internal/domain"
)

// Open connects GORM to the configured database and migrates the log tables.
// Postgres is the production target; sqlite serves local runs.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)

	case "sqlite":
		dialector = sqlite.Open(cfg.FilePath)

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.SearchLog{}, &domain.SuggestionLog{}, &domain.ClickLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate log tables: %w", err)
	}

	return db, nil
}

// GormSearchLogStore persists search logs through GORM.
type GormSearchLogStore struct {
	db *gorm.DB
}

func NewGormSearchLogStore(db *gorm.DB) *GormSearchLogStore {
	return &GormSearchLogStore{db: db}
}

func (s *GormSearchLogStore) Append(ctx context.Context, record *domain.SearchLog) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to store search log: %w", err)
	}
	return nil
}

// FindBySearchID returns the first record logged under searchID, or
// domain.ErrNotFound when none exists.
func (s *GormSearchLogStore) FindBySearchID(ctx context.Context, searchID uuid.UUID) (*domain.SearchLog, error) {
	var record domain.SearchLog
	err := s.db.WithContext(ctx).
		Where("search_id = ?", searchID).
		Order("timestamp asc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up search log: %w", err)
	}
	return &record, nil
}

// GormSuggestionLogStore persists suggestion logs through GORM.
type GormSuggestionLogStore struct {
	db *gorm.DB
}

func NewGormSuggestionLogStore(db *gorm.DB) *GormSuggestionLogStore {
	return &GormSuggestionLogStore{db: db}
}

func (s *GormSuggestionLogStore) Append(ctx context.Context, record *domain.SuggestionLog) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to store suggestion log: %w", err)
	}
	return nil
}

// GormClickLogStore persists click logs through GORM.
type GormClickLogStore struct {
	db *gorm.DB
}

func NewGormClickLogStore(db *gorm.DB) *GormClickLogStore {
	return &GormClickLogStore{db: db}
}

func (s *GormClickLogStore) Append(ctx context.Context, record *domain.ClickLog) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to store click log: %w", err)
	}
	return nil
}
