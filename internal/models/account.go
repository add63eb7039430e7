package models

import "github.com/shopspring/decimal"

// Account represents a financial account such as a checking account or a
// credit card.
type Account struct {
	Base
	Name          string          `gorm:"not null" json:"name"`
	AccountTypeID string          `gorm:"type:uuid;not null" json:"account_type_id"`
	Balance       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	Institution   string          `json:"institution"`
	AccountNumber string          `json:"account_number"`
	Currency      string          `gorm:"not null;default:CAD" json:"currency"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`

	// Relationships
	AccountType *AccountType `gorm:"foreignKey:AccountTypeID" json:"account_type,omitempty"`
}
