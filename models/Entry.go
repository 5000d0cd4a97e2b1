package models

import "time"

// Entry is a single persisted key/value pair. Values hold JSON text.
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
