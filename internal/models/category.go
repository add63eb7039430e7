package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Category represents a transaction category
type Category struct {
	Base
	Name  string       `gorm:"uniqueIndex;not null" json:"name"`
	Type  CategoryType `gorm:"not null" json:"type"`
	Color string       `json:"color"`
}
