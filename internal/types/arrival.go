package types

import (
	"time"

	"github.com/google/uuid"
)

// Arrival is one intake event: one truckload from one supplier on one date.
// Code is the human-readable identity, YYYYMMDD-NNN, unique per day.
type Arrival struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;not null;column:code" json:"code"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier       *Supplier       `gorm:"foreignKey:SupplierID;references:ID" json:"supplier,omitempty"`
	VehiclePlate   string          `gorm:"not null;column:vehicle_plate" json:"vehicle_plate"`
	DeliveryOrder  string          `gorm:"column:delivery_order" json:"delivery_order"`
	ArrivalTime    time.Time       `gorm:"not null;column:arrival_time;index" json:"arrival_time"`
	City           string          `gorm:"column:city" json:"city"`
	Note           string          `gorm:"column:note" json:"note"`
	Items          []ArrivalItem   `gorm:"foreignKey:ArrivalID;references:ID" json:"items,omitempty"`
	Status         *ArrivalStatus  `gorm:"foreignKey:ArrivalID;references:ID" json:"status,omitempty"`
	SecurityPhotos []SecurityPhoto `gorm:"foreignKey:ArrivalID;references:ID" json:"security_photos,omitempty"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by"`
	UpdatedBy      uuid.UUID       `gorm:"type:uuid;column:updated_by" json:"updated_by"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

func (Arrival) TableName() string { return "arrival" }

// ArrivalStatus holds the aggregate workflow state for one arrival (1:1).
// The three sub-statuses progress independently; Status tracks the coarse
// queue position.
type ArrivalStatus struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"arrival_id"`
	Status         string    `gorm:"not null;column:status" json:"status"`
	StatusApproval string    `gorm:"not null;column:status_approval" json:"status_approval"`
	StatusWeighing string    `gorm:"not null;column:status_weighing" json:"status_weighing"`
	StatusQc       string    `gorm:"not null;column:status_qc" json:"status_qc"`
	UpdatedBy      uuid.UUID `gorm:"type:uuid;column:updated_by" json:"updated_by"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (ArrivalStatus) TableName() string { return "arrival_status" }

// NewArrivalStatus is the only way an arrival enters the workflow: every
// sub-status starts PENDING.
func NewArrivalStatus(arrivalID, actorID uuid.UUID) *ArrivalStatus {
	return &ArrivalStatus{
		ID:             uuid.New(),
		ArrivalID:      arrivalID,
		Status:         StatusWaitingArrival,
		StatusApproval: ApprovalPending,
		StatusWeighing: WeighingPending,
		StatusQc:       QcPending,
		UpdatedBy:      actorID,
	}
}

// ArrivalItem is one material line within an arrival. The qc_* columns are a
// denormalized copy of the latest QcHistory outcome, kept for fast reads; the
// history rows remain the source of truth.
type ArrivalItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"arrival_id"`
	Arrival           *Arrival   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArrivalID;references:ID" json:"-"`
	MaterialID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"material_id"`
	Material          *Material  `gorm:"foreignKey:MaterialID;references:ID" json:"material,omitempty"`
	ConditionID       uuid.UUID  `gorm:"type:uuid;not null" json:"condition_id"`
	Condition         *Condition `gorm:"foreignKey:ConditionID;references:ID" json:"condition,omitempty"`
	ConditionCategory string     `gorm:"not null;column:condition_category" json:"condition_category"`
	Quantity          float64    `gorm:"not null;column:quantity" json:"quantity"`
	ItemName          string     `gorm:"column:item_name" json:"item_name"`
	Note              string     `gorm:"column:note" json:"note"`

	QcStatusID    *uuid.UUID `gorm:"type:uuid;column:qc_status_id" json:"qc_status_id,omitempty"`
	QcStatus      *QcStatus  `gorm:"foreignKey:QcStatusID;references:ID" json:"qc_status,omitempty"`
	QcSample      float64    `gorm:"column:qc_sample" json:"qc_sample"`
	QcImpurity    float64    `gorm:"column:qc_impurity" json:"qc_impurity"`
	QcNetWeight   float64    `gorm:"column:qc_net_weight" json:"qc_net_weight"`
	QcDryingHours float64    `gorm:"column:qc_drying_hours" json:"qc_drying_hours"`
	QcNote        string     `gorm:"column:qc_note" json:"qc_note"`

	Weighings []Weighing  `gorm:"foreignKey:ArrivalItemID;references:ID" json:"weighings,omitempty"`
	QcResults []QcResult  `gorm:"foreignKey:ArrivalItemID;references:ID" json:"qc_results,omitempty"`
	QcHistory []QcHistory `gorm:"foreignKey:ArrivalItemID;references:ID" json:"qc_history,omitempty"`
	QcPhotos  []QcPhoto   `gorm:"foreignKey:ArrivalItemID;references:ID" json:"qc_photos,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	UpdatedBy uuid.UUID `gorm:"type:uuid;column:updated_by" json:"updated_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ArrivalItem) TableName() string { return "arrival_item" }

// SecurityPhoto references one intake proof upload by its storage key.
type SecurityPhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArrivalID  uuid.UUID `gorm:"type:uuid;not null;index" json:"arrival_id"`
	StorageKey string    `gorm:"not null;column:storage_key" json:"storage_key"`
	FileName   string    `gorm:"column:file_name" json:"file_name"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (SecurityPhoto) TableName() string { return "security_photo" }
