package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccountType creates an asset account type with a unique name.
func CreateTestAccountType(t *testing.T, db *gorm.DB) *models.AccountType {
	t.Helper()

	accountType := &models.AccountType{
		Name:        fmt.Sprintf("Test Account Type %d", nextID()),
		Category:    models.AccountTypeCategoryAsset,
		SubCategory: "cash",
	}
	if err := db.Create(accountType).Error; err != nil {
		t.Fatalf("failed to create test account type: %v", err)
	}
	return accountType
}

// CreateTestAccount creates an account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, accountTypeID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, accountTypeID, decimal.Zero)
}

// CreateTestAccountWithBalance creates an account with the given balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, accountTypeID string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:          fmt.Sprintf("Test Account %d", nextID()),
		AccountTypeID: accountTypeID,
		Balance:       balance,
		Currency:      "CAD",
		IsActive:      true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type, amount, and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID, categoryID string, txType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Type:            txType,
		Amount:          amount,
		TransactionDate: date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates an active budget for the given year with no line items.
func CreateTestBudget(t *testing.T, db *gorm.DB, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Year:        year,
		Name:        fmt.Sprintf("Test Budget %d", nextID()),
		TotalAmount: decimal.Zero,
		IsActive:    true,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestLineItem creates a budget line item and grows the budget total by
// the yearly amount.
func CreateTestLineItem(t *testing.T, db *gorm.DB, budgetID, categoryID string, yearlyAmount decimal.Decimal) *models.BudgetLineItem {
	t.Helper()

	item := &models.BudgetLineItem{
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		YearlyAmount:  yearlyAmount,
		MonthlyAmount: yearlyAmount.DivRound(decimal.NewFromInt(12), 2),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test line item: %v", err)
	}

	if err := db.Model(&models.Budget{}).Where("id = ?", budgetID).
		Update("total_amount", gorm.Expr("total_amount + ?", yearlyAmount)).Error; err != nil {
		t.Fatalf("failed to grow budget total: %v", err)
	}
	return item
}
