package models

import "github.com/shopspring/decimal"

// Budget represents a yearly spending plan. TotalAmount is kept equal to the
// sum of its line items' yearly amounts by the budget service.
type Budget struct {
	Base
	Year        int             `gorm:"uniqueIndex;not null" json:"year"`
	Name        string          `gorm:"not null" json:"name"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	// Relationships
	LineItems []BudgetLineItem `gorm:"foreignKey:BudgetID" json:"line_items,omitempty"`
}

// BudgetLineItem is one category's allocation within a budget.
// A category may appear at most once per budget.
type BudgetLineItem struct {
	Base
	BudgetID      string          `gorm:"type:uuid;not null;uniqueIndex:idx_budget_category" json:"budget_id"`
	CategoryID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_budget_category" json:"category_id"`
	YearlyAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"yearly_amount"`
	MonthlyAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"monthly_amount"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
