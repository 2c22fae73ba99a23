package persist

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coopstore/coopstore/internal/domain"
	"github.com/coopstore/coopstore/internal/grocery"
)

// DefaultKeep is how many snapshot rows GormStore retains
const DefaultKeep = 10

// GormStore appends snapshots to the store_snapshots table; the newest row
// wins and only the last Keep rows are retained.
type GormStore struct {
	db   *gorm.DB
	Keep int
}

// OpenPostgres connects with dsn and migrates the snapshot table
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "migrate snapshot table")
	}
	return &GormStore{db: db, Keep: DefaultKeep}, nil
}

func (s *GormStore) Save(ctx context.Context, snap *grocery.Snapshot) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &domain.SnapshotRecord{
			Version:   snap.Version,
			Payload:   payload,
			CreatedAt: snap.SavedAt,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if s.Keep <= 0 {
			return nil
		}
		recent := tx.Model(&domain.SnapshotRecord{}).Select("id").Order("id DESC").Limit(s.Keep)
		return tx.Where("id NOT IN (?)", recent).Delete(&domain.SnapshotRecord{}).Error
	})
	return errors.Wrap(err, "gorm save")
}

func (s *GormStore) latest(ctx context.Context) (*domain.SnapshotRecord, error) {
	var record domain.SnapshotRecord
	err := s.db.WithContext(ctx).Order("id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, errors.Wrap(err, "query snapshot")
	}
	return &record, nil
}

func (s *GormStore) Load(ctx context.Context) (*grocery.Snapshot, error) {
	record, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	return decode(record.Payload)
}

func (s *GormStore) LastSaved(ctx context.Context) (time.Time, error) {
	record, err := s.latest(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return record.CreatedAt, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
