package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// LineItemInput is one category allocation supplied when creating a budget.
type LineItemInput struct {
	CategoryID   string
	YearlyAmount decimal.Decimal
}

// BudgetPatch holds optional fields for a partial budget update.
// Only non-nil fields are applied.
type BudgetPatch struct {
	Year     *int
	Name     *string
	IsActive *bool
}

// LineItemPatch holds optional fields for a partial line item update.
type LineItemPatch struct {
	YearlyAmount *decimal.Decimal
}

// CategorySummary contains actual-vs-budget figures for one line item over a
// budget's year.
type CategorySummary struct {
	CategoryID         string          `json:"category_id"`
	CategoryName       string          `json:"category_name"`
	Budgeted           decimal.Decimal `json:"budgeted"`
	Spent              decimal.Decimal `json:"spent"`
	Remaining          decimal.Decimal `json:"remaining"`
	ProgressPercentage float64         `json:"progress_percentage"`
}

// BudgetSummary contains spend-vs-budget data for a budget's full year.
type BudgetSummary struct {
	Budget             *models.Budget    `json:"budget"`
	TotalSpent         decimal.Decimal   `json:"total_spent"`
	Remaining          decimal.Decimal   `json:"remaining"`
	ProgressPercentage float64           `json:"progress_percentage"`
	Categories         []CategorySummary `json:"categories_summary"`
}

// MonthlyCategoryProgress contains one line item's figures for a single month.
type MonthlyCategoryProgress struct {
	CategoryID         string          `json:"category_id"`
	CategoryName       string          `json:"category_name"`
	MonthlyBudget      decimal.Decimal `json:"monthly_budget"`
	Spent              decimal.Decimal `json:"spent"`
	Remaining          decimal.Decimal `json:"remaining"`
	ProgressPercentage float64         `json:"progress_percentage"`
}

// MonthlyBudgetProgress contains spend-vs-budget data for a single month of a
// budget's year.
type MonthlyBudgetProgress struct {
	Month              int                       `json:"month"`
	Year               int                       `json:"year"`
	BudgetedAmount     decimal.Decimal           `json:"budgeted_amount"`
	SpentAmount        decimal.Decimal           `json:"spent_amount"`
	RemainingAmount    decimal.Decimal           `json:"remaining_amount"`
	ProgressPercentage float64                   `json:"progress_percentage"`
	Categories         []MonthlyCategoryProgress `json:"categories"`
}

// DashboardCategory contains year-to-date figures for one budgeted category.
type DashboardCategory struct {
	CategoryID    string          `json:"id"`
	CategoryName  string          `json:"name"`
	YearlyBudget  decimal.Decimal `json:"yearly_budget"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	YTDBudget     decimal.Decimal `json:"ytd_budget"`
	YTDActual     decimal.Decimal `json:"ytd_actual"`
	YTDDifference decimal.Decimal `json:"ytd_difference"`
}

// DashboardData contains year-to-date figures for the active budget through a
// given month.
type DashboardData struct {
	Budget            *models.Budget      `json:"budget"`
	CurrentMonth      int                 `json:"current_month"`
	CurrentYear       int                 `json:"current_year"`
	YTDIncomeBudget   decimal.Decimal     `json:"ytd_income_budget"`
	YTDIncomeActual   decimal.Decimal     `json:"ytd_income_actual"`
	YTDExpenseBudget  decimal.Decimal     `json:"ytd_expense_budget"`
	YTDExpenseActual  decimal.Decimal     `json:"ytd_expense_actual"`
	IncomeCategories  []DashboardCategory `json:"income_categories"`
	ExpenseCategories []DashboardCategory `json:"expense_categories"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(year int, name string, items []LineItemInput) (*models.Budget, error)
	GetAllBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(id string) (*models.Budget, error)
	GetBudgetByYear(year int) (*models.Budget, error)
	GetActiveBudget() (*models.Budget, error)
	UpdateBudget(id string, patch BudgetPatch) (*models.Budget, error)
	DeleteBudget(id string) error
	AddLineItem(budgetID, categoryID string, yearlyAmount decimal.Decimal) (*models.BudgetLineItem, error)
	UpdateLineItem(id string, patch LineItemPatch) (*models.BudgetLineItem, error)
	DeleteLineItem(id string) error
	SetActiveBudget(id string) (*models.Budget, error)
	GetBudgetSummary(budgetID string) (*BudgetSummary, error)
	GetMonthlyBudgetProgress(budgetID string, month int) (*MonthlyBudgetProgress, error)
	GetDashboardData(month int) (*DashboardData, error)
}

// CategoryPatch holds optional fields for a partial category update.
type CategoryPatch struct {
	Name  *string
	Type  *models.CategoryType
	Color *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, color string) (*models.Category, error)
	GetAllCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id string, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(id string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string
}

// TransactionPatch holds optional fields for a partial transaction update.
type TransactionPatch struct {
	AccountID       *string
	CategoryID      *string
	Amount          *decimal.Decimal
	Description     *string
	TransactionDate *time.Time
	Type            *models.TransactionType
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(accountID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// AccountPatch holds optional fields for a partial account update. A balance
// change is recorded in the account's balance history.
type AccountPatch struct {
	Name          *string
	AccountTypeID *string
	Balance       *decimal.Decimal
	Institution   *string
	AccountNumber *string
	Currency      *string
	IsActive      *bool
	BalanceNotes  string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name, accountTypeID string, balance decimal.Decimal, institution, accountNumber, currency string) (*models.Account, error)
	GetAllAccounts(page pagination.PageRequest, includeInactive bool) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(id string) (*models.Account, error)
	UpdateAccount(id string, patch AccountPatch) (*models.Account, error)
	DeactivateAccount(id string) error
	GetBalanceHistory(accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.BalanceHistory], error)
}

// AccountTypeServicer defines the contract for account type lookups.
type AccountTypeServicer interface {
	CreateAccountType(name string, category models.AccountTypeCategory, subCategory string) (*models.AccountType, error)
	GetAllAccountTypes() ([]models.AccountType, error)
	GetAccountTypeByID(id string) (*models.AccountType, error)
}
