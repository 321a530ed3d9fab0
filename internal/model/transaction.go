package model

import (
	"time"

	"gorm.io/gorm"
)

// Transaction Types
type TransactionType string

const (
	TransactionIncome  TransactionType = "receita"
	TransactionExpense TransactionType = "despesa"
)

// Transaction is one ledger line. Delivered orders write their income
// line automatically with OrderID set; manual entries leave it nil.
type Transaction struct {
	gorm.Model
	ConfectionerID uint   `json:"confectioner_id" gorm:"index;not null"`
	Type           string `json:"type" gorm:"type:varchar(16);not null"`
	Category       string `json:"category" gorm:"not null"`
	Description    string `json:"description"`

	Amount float64   `json:"amount" gorm:"not null"`
	Date   time.Time `json:"date" gorm:"index;not null"`

	OrderID *uint `json:"order_id"`
}

// FinancialSummary aggregates the ledger over a period.
type FinancialSummary struct {
	TotalIncome     float64 `json:"total_income"`
	TotalExpenses   float64 `json:"total_expenses"`
	NetProfit       float64 `json:"net_profit"`
	PaidOrdersCount int64   `json:"paid_orders_count"`
	AverageTicket   float64 `json:"average_ticket"`
}
