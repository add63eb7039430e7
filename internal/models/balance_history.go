package models

import "github.com/shopspring/decimal"

// BalanceHistory records a change to an account's balance.
type BalanceHistory struct {
	Base
	AccountID       string          `gorm:"type:uuid;not null" json:"account_id"`
	PreviousBalance decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"previous_balance"`
	NewBalance      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"new_balance"`
	ChangeAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"change_amount"`
	ChangeReason    string          `json:"change_reason"`
	Notes           string          `json:"notes"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
