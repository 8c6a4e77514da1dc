package types

import (
	"time"

	"github.com/google/uuid"
)

// Weighing is one recorded weight reading for an item. Readings append;
// a re-weigh never overwrites the earlier rows.
type Weighing struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"arrival_item_id"`
	Weight        float64   `gorm:"not null;column:weight" json:"weight"`
	Note          string    `gorm:"column:note" json:"note"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	UpdatedBy     uuid.UUID `gorm:"type:uuid;column:updated_by" json:"updated_by"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Weighing) TableName() string { return "weighing" }

type WeighingPhoto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"arrival_item_id"`
	StorageKey    string    `gorm:"not null;column:storage_key" json:"storage_key"`
	FileName      string    `gorm:"column:file_name" json:"file_name"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (WeighingPhoto) TableName() string { return "weighing_photo" }
