package models

// AccountTypeCategory classifies an account type as an asset or a liability.
type AccountTypeCategory string

const (
	AccountTypeCategoryAsset     AccountTypeCategory = "ASSET"
	AccountTypeCategoryLiability AccountTypeCategory = "LIABILITY"
)

// AccountType describes a kind of account, e.g. "Checking" or "Credit Card".
type AccountType struct {
	Base
	Name        string              `gorm:"uniqueIndex;not null" json:"name"`
	Category    AccountTypeCategory `gorm:"not null" json:"category"`
	SubCategory string              `gorm:"not null" json:"sub_category"`
}
