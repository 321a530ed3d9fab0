package model

import (
	"time"

	"gorm.io/gorm"
)

// Batch Status
type BatchStatus string

const (
	BatchPlanned    BatchStatus = "planejado"
	BatchInProgress BatchStatus = "em_andamento"
	BatchDone       BatchStatus = "concluido"
)

// ProductionBatch is one planned production run. ProductID is optional;
// ad hoc runs carry only a free-text product name.
type ProductionBatch struct {
	gorm.Model
	ConfectionerID uint   `json:"confectioner_id" gorm:"index;not null"`
	ProductID      *uint  `json:"product_id"`
	ProductName    string `json:"product_name" gorm:"not null"`

	PlannedQuantity  int `json:"planned_quantity" gorm:"not null"`
	ProducedQuantity int `json:"produced_quantity"`

	ProductionDate time.Time `json:"production_date" gorm:"index;not null"`
	TotalCost      float64   `json:"total_cost"`
	Status         string    `json:"status" gorm:"type:varchar(16);default:'planejado';not null"`
	Notes          string    `json:"notes" gorm:"type:text"`
}
