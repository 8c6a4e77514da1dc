package types

import (
	"time"

	"github.com/google/uuid"
)

// Master data: referenced by the workflow tables, never owned by them.

type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Address   string    `gorm:"column:address" json:"address"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Supplier) TableName() string { return "supplier" }

type Material struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Material) TableName() string { return "material" }

type Condition struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Condition) TableName() string { return "condition" }

// QcStatus is a configurable QC outcome, e.g. pass / fail / quarantine.
type QcStatus struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (QcStatus) TableName() string { return "qc_status" }

// Parameter is a reusable QC measurement definition ("Moisture", unit "gr").
// Type records whether the reading adds to or subtracts from the sample.
type Parameter struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string             `gorm:"not null;column:name" json:"name"`
	Unit      string             `gorm:"not null;column:unit" json:"unit"`
	Type      string             `gorm:"not null;column:type" json:"type"`
	Settings  []ParameterSetting `gorm:"foreignKey:ParameterID;references:ID" json:"settings,omitempty"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null" json:"updated_at"`
}

func (Parameter) TableName() string { return "parameter" }

// ParameterSetting asks the QC form for one extra structured sub-field.
type ParameterSetting struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParameterID uuid.UUID  `gorm:"type:uuid;not null;index" json:"parameter_id"`
	Parameter   *Parameter `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParameterID;references:ID" json:"-"`
	Key         string     `gorm:"not null;column:key" json:"key"`
	Value       string     `gorm:"not null;column:value" json:"value"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (ParameterSetting) TableName() string { return "parameter_setting" }
