package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doubtsolver/models"
)

// DB persists entries in the entries table through gorm. It works with any
// dialect that supports upserts, which covers postgres and sqlite.
type DB struct {
	db *gorm.DB
}

// NewDB wraps a gorm handle. The entries table must already be migrated.
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (s *DB) Save(ctx context.Context, key string, value any) error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	data, err := encode(value)
	if err != nil {
		return err
	}
	entry := models.Entry{Key: key, Value: string(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *DB) Load(ctx context.Context, key string, dst any) (bool, error) {
	if s == nil || s.db == nil {
		return false, gorm.ErrInvalidDB
	}
	var entry models.Entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := decode([]byte(entry.Value), dst); err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return true, nil
}

func (s *DB) Remove(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&models.Entry{}).Error; err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
