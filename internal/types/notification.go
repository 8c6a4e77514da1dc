package types

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a transient "please refresh" marker. The SSE poller drains
// the whole table every tick, so rows normally live only a few seconds.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Table       string    `gorm:"not null;column:source_table" json:"table"`
	Description string    `gorm:"not null;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
}

func (Notification) TableName() string { return "notification" }

// ArrivalSequence backs the per-day running number in arrival codes. The
// value is bumped with an atomic upsert so concurrent intakes on the same
// day cannot collide.
type ArrivalSequence struct {
	Day   string `gorm:"primaryKey;column:day"`
	Value int    `gorm:"not null;column:value"`
}

func (ArrivalSequence) TableName() string { return "arrival_sequence" }
