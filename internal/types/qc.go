package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QcHistory is the append-only audit record of one full QC submission for
// one item: who scored it, the chosen outcome, and the raw figures entered
// that time. The live qc_* columns on ArrivalItem cache the newest row.
type QcHistory struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"arrival_id"`
	ArrivalItemID uuid.UUID  `gorm:"type:uuid;not null;index" json:"arrival_item_id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	QcStatusID    uuid.UUID  `gorm:"type:uuid;not null" json:"qc_status_id"`
	QcStatus      *QcStatus  `gorm:"foreignKey:QcStatusID;references:ID" json:"qc_status,omitempty"`
	Sample        float64    `gorm:"not null;column:sample" json:"sample"`
	Impurity      float64    `gorm:"column:impurity" json:"impurity"`
	NetWeight     float64    `gorm:"column:net_weight" json:"net_weight"`
	DryingHours   float64    `gorm:"column:drying_hours" json:"drying_hours"`
	Note          string     `gorm:"column:note" json:"note"`
	Results       []QcResult `gorm:"foreignKey:HistoryID;references:ID" json:"results,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}

func (QcHistory) TableName() string { return "qc_history" }

// QcResult is one parameter's measured value within a QC submission. Rows
// accumulate across submissions; readers reconstruct the current result set
// from the newest history row, never by truncating.
type QcResult struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"arrival_item_id"`
	ParameterID   uuid.UUID      `gorm:"type:uuid;not null" json:"parameter_id"`
	Parameter     *Parameter     `gorm:"foreignKey:ParameterID;references:ID" json:"parameter,omitempty"`
	HistoryID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"history_id"`
	Value         float64        `gorm:"not null;column:value" json:"value"`
	Percentage    float64        `gorm:"column:percentage" json:"percentage"`
	Additional    datatypes.JSON `gorm:"column:additional;type:jsonb" json:"additional,omitempty"`
	CreatedBy     uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

func (QcResult) TableName() string { return "qc_result" }

type QcPhoto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"arrival_item_id"`
	StorageKey    string    `gorm:"not null;column:storage_key" json:"storage_key"`
	FileName      string    `gorm:"column:file_name" json:"file_name"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (QcPhoto) TableName() string { return "qc_photo" }
