package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction represents a financial transaction in the system
type Transaction struct {
	Base
	AccountID       string          `gorm:"type:uuid;not null" json:"account_id"`
	CategoryID      string          `gorm:"type:uuid;not null" json:"category_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description     string          `gorm:"not null" json:"description"`
	TransactionDate time.Time       `gorm:"type:date;not null" json:"transaction_date"`
	Type            TransactionType `gorm:"not null" json:"type"`

	// Relationships
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
