package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	oneHundred    = decimal.NewFromInt(100)
)

// unknownCategoryName is reported when a line item's category no longer resolves.
const unknownCategoryName = "Unknown"

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// monthlyFromYearly derives a line item's monthly allocation. NUMERIC(12,2)
// columns hold two decimal places, so the division rounds to cents.
func monthlyFromYearly(yearly decimal.Decimal) decimal.Decimal {
	return yearly.DivRound(monthsPerYear, 2)
}

// percentOf returns part/whole as a percentage, or 0 when whole is not
// positive. The decimal division completes before the float conversion.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct, _ := part.Div(whole).Mul(oneHundred).Float64()
	return pct
}

// yearWindow returns the half-open [start, end) range covering a calendar year.
func yearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// monthWindow returns the half-open [start, end) range covering one month.
func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// CreateBudget creates a budget for a year together with its line items as one
// unit. The budget's total amount is the sum of the line items' yearly amounts.
// The one-budget-per-year rule rides on the budgets.year unique index rather
// than a pre-check, so concurrent creates for the same year cannot slip past
// it; the loser gets ErrBudgetYearConflict.
func (s *budgetService) CreateBudget(year int, name string, items []LineItemInput) (*models.Budget, error) {
	total := decimal.Zero
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !item.YearlyAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "yearly amount must be positive")
		}
		if seen[item.CategoryID] {
			return nil, apperrors.ErrDuplicateLineItem
		}
		seen[item.CategoryID] = true
		total = total.Add(item.YearlyAmount)
	}

	budget := &models.Budget{
		Year:        year,
		Name:        name,
		TotalAmount: total,
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrBudgetYearConflict
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, item := range items {
			lineItem := &models.BudgetLineItem{
				BudgetID:      budget.ID,
				CategoryID:    item.CategoryID,
				YearlyAmount:  item.YearlyAmount,
				MonthlyAmount: monthlyFromYearly(item.YearlyAmount),
			}
			if err := tx.Create(lineItem).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBudgetByID(budget.ID)
}

// GetAllBudgets returns a paginated list of budgets.
func (s *budgetService) GetAllBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Ordered(page, "year DESC")).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget with its line items and their categories.
func (s *budgetService) GetBudgetByID(id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("LineItems.Category").Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetBudgetByYear returns the budget for a year with its line items.
func (s *budgetService) GetBudgetByYear(year int) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("LineItems.Category").Where("year = ?", year).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetActiveBudget returns the currently active budget.
func (s *budgetService) GetActiveBudget() (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("LineItems.Category").Where("is_active = ?", true).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoActiveBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies the provided patch fields to an existing budget.
func (s *budgetService) UpdateBudget(id string, patch BudgetPatch) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Year != nil {
		var count int64
		if err := s.db.Model(&models.Budget{}).
			Where("year = ? AND id <> ?", *patch.Year, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrBudgetYearConflict
		}
		updates["year"] = *patch.Year
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrBudgetYearConflict
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget removes a budget and all of its line items in one transaction.
func (s *budgetService) DeleteBudget(id string) error {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.BudgetLineItem{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddLineItem adds a category allocation to an existing budget and increments
// the budget's total amount, atomically.
func (s *budgetService) AddLineItem(budgetID, categoryID string, yearlyAmount decimal.Decimal) (*models.BudgetLineItem, error) {
	if !yearlyAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "yearly amount must be positive")
	}

	lineItem := &models.BudgetLineItem{
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		YearlyAmount:  yearlyAmount,
		MonthlyAmount: monthlyFromYearly(yearlyAmount),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.Where("id = ?", budgetID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := tx.Model(&models.BudgetLineItem{}).
			Where("budget_id = ? AND category_id = ?", budgetID, categoryID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateLineItem
		}

		if err := tx.Create(lineItem).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateLineItem
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		newTotal := budget.TotalAmount.Add(yearlyAmount)
		if err := tx.Model(&budget).Update("total_amount", newTotal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lineItem, nil
}

// UpdateLineItem applies the provided patch to a line item. A yearly amount
// change recomputes the monthly amount and shifts the parent budget's total by
// the delta, atomically. Setting the same value is a no-op.
func (s *budgetService) UpdateLineItem(id string, patch LineItemPatch) (*models.BudgetLineItem, error) {
	var lineItem models.BudgetLineItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&lineItem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLineItemNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if patch.YearlyAmount == nil {
			return nil
		}
		newYearly := *patch.YearlyAmount
		if !newYearly.IsPositive() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "yearly amount must be positive")
		}

		delta := newYearly.Sub(lineItem.YearlyAmount)
		newMonthly := monthlyFromYearly(newYearly)

		if err := tx.Model(&lineItem).Updates(map[string]interface{}{
			"yearly_amount":  newYearly,
			"monthly_amount": newMonthly,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		lineItem.YearlyAmount = newYearly
		lineItem.MonthlyAmount = newMonthly

		if delta.IsZero() {
			return nil
		}

		var budget models.Budget
		if err := tx.Where("id = ?", lineItem.BudgetID).First(&budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		newTotal := budget.TotalAmount.Add(delta)
		if err := tx.Model(&budget).Update("total_amount", newTotal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &lineItem, nil
}

// DeleteLineItem removes a line item and decrements the parent budget's total
// by the item's yearly amount, atomically.
func (s *budgetService) DeleteLineItem(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var lineItem models.BudgetLineItem
		if err := tx.Where("id = ?", id).First(&lineItem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLineItemNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var budget models.Budget
		if err := tx.Where("id = ?", lineItem.BudgetID).First(&budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		newTotal := budget.TotalAmount.Sub(lineItem.YearlyAmount)
		if err := tx.Model(&budget).Update("total_amount", newTotal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&lineItem).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SetActiveBudget activates a budget after deactivating any other budget for
// the same year. Exactly one budget per year is active once it returns. The
// invariant is per-year only; budgets for other years are untouched.
func (s *budgetService) SetActiveBudget(id string) (*models.Budget, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.Where("id = ?", id).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Budget{}).
			Where("year = ? AND id <> ?", budget.Year, budget.ID).
			Update("is_active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&budget).Update("is_active", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBudgetByID(id)
}

// sumTransactions returns the total transaction amount of the given type in
// the half-open [from, to) date window.
func (s *budgetService) sumTransactions(transactionType models.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("type = ? AND transaction_date >= ? AND transaction_date < ?", transactionType, from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Total, nil
}

// sumByCategory returns per-category transaction totals in the [from, to)
// window, keyed by category id. A nil transactionType includes both income and
// expense rows.
func (s *budgetService) sumByCategory(transactionType *models.TransactionType, from, to time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		CategoryID string
		Total      decimal.Decimal
	}

	query := s.db.Model(&models.Transaction{}).
		Select("category_id, SUM(amount) AS total").
		Where("transaction_date >= ? AND transaction_date < ?", from, to)
	if transactionType != nil {
		query = query.Where("type = ?", *transactionType)
	}
	if err := query.Group("category_id").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.CategoryID] = row.Total
	}
	return totals, nil
}

// GetBudgetSummary computes actual-vs-budget figures for a budget's year:
// total expense spend, remaining amount, overall progress, and a per-line-item
// breakdown. Zero budget totals yield a progress of 0 rather than an error.
func (s *budgetService) GetBudgetSummary(budgetID string) (*BudgetSummary, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	from, to := yearWindow(budget.Year)

	totalSpent, err := s.sumTransactions(models.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	expense := models.TransactionTypeExpense
	spentByCategory, err := s.sumByCategory(&expense, from, to)
	if err != nil {
		return nil, err
	}

	categories := make([]CategorySummary, 0, len(budget.LineItems))
	for _, lineItem := range budget.LineItems {
		spent, ok := spentByCategory[lineItem.CategoryID]
		if !ok {
			spent = decimal.Zero
		}

		name := unknownCategoryName
		if lineItem.Category != nil {
			name = lineItem.Category.Name
		}

		categories = append(categories, CategorySummary{
			CategoryID:         lineItem.CategoryID,
			CategoryName:       name,
			Budgeted:           lineItem.YearlyAmount,
			Spent:              spent,
			Remaining:          lineItem.YearlyAmount.Sub(spent),
			ProgressPercentage: percentOf(spent, lineItem.YearlyAmount),
		})
	}

	return &BudgetSummary{
		Budget:             budget,
		TotalSpent:         totalSpent,
		Remaining:          budget.TotalAmount.Sub(totalSpent),
		ProgressPercentage: percentOf(totalSpent, budget.TotalAmount),
		Categories:         categories,
	}, nil
}

// GetMonthlyBudgetProgress computes actual-vs-budget figures for one month of
// a budget's year. The monthly budget is the total amount spread uniformly
// across twelve months; per-category baselines use each line item's stored
// monthly amount.
func (s *budgetService) GetMonthlyBudgetProgress(budgetID string, month int) (*MonthlyBudgetProgress, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	from, to := monthWindow(budget.Year, month)

	spent, err := s.sumTransactions(models.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	expense := models.TransactionTypeExpense
	spentByCategory, err := s.sumByCategory(&expense, from, to)
	if err != nil {
		return nil, err
	}

	monthlyBudgeted := budget.TotalAmount.DivRound(monthsPerYear, 2)

	categories := make([]MonthlyCategoryProgress, 0, len(budget.LineItems))
	for _, lineItem := range budget.LineItems {
		categorySpent, ok := spentByCategory[lineItem.CategoryID]
		if !ok {
			categorySpent = decimal.Zero
		}

		name := unknownCategoryName
		if lineItem.Category != nil {
			name = lineItem.Category.Name
		}

		categories = append(categories, MonthlyCategoryProgress{
			CategoryID:         lineItem.CategoryID,
			CategoryName:       name,
			MonthlyBudget:      lineItem.MonthlyAmount,
			Spent:              categorySpent,
			Remaining:          lineItem.MonthlyAmount.Sub(categorySpent),
			ProgressPercentage: percentOf(categorySpent, lineItem.MonthlyAmount),
		})
	}

	return &MonthlyBudgetProgress{
		Month:              month,
		Year:               budget.Year,
		BudgetedAmount:     monthlyBudgeted,
		SpentAmount:        spent,
		RemainingAmount:    monthlyBudgeted.Sub(spent),
		ProgressPercentage: percentOf(spent, monthlyBudgeted),
		Categories:         categories,
	}, nil
}

// GetDashboardData computes year-to-date figures for the active budget through
// the given month. Budgeted YTD accrues linearly (monthly amount times month),
// independent of how many calendar days have elapsed.
func (s *budgetService) GetDashboardData(month int) (*DashboardData, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	budget, err := s.GetActiveBudget()
	if err != nil {
		return nil, err
	}

	yearStart, _ := yearWindow(budget.Year)
	_, ytdEnd := monthWindow(budget.Year, month)

	incomeActual, err := s.sumTransactions(models.TransactionTypeIncome, yearStart, ytdEnd)
	if err != nil {
		return nil, err
	}
	expenseActual, err := s.sumTransactions(models.TransactionTypeExpense, yearStart, ytdEnd)
	if err != nil {
		return nil, err
	}

	actualByCategory, err := s.sumByCategory(nil, yearStart, ytdEnd)
	if err != nil {
		return nil, err
	}

	months := decimal.NewFromInt(int64(month))
	incomeBudget := decimal.Zero
	expenseBudget := decimal.Zero
	incomeCategories := make([]DashboardCategory, 0)
	expenseCategories := make([]DashboardCategory, 0)

	for _, lineItem := range budget.LineItems {
		if lineItem.Category == nil {
			continue
		}

		ytdBudget := lineItem.MonthlyAmount.Mul(months)
		ytdActual, ok := actualByCategory[lineItem.CategoryID]
		if !ok {
			ytdActual = decimal.Zero
		}

		category := DashboardCategory{
			CategoryID:    lineItem.CategoryID,
			CategoryName:  lineItem.Category.Name,
			YearlyBudget:  lineItem.YearlyAmount,
			MonthlyBudget: lineItem.MonthlyAmount,
			YTDBudget:     ytdBudget,
			YTDActual:     ytdActual,
			YTDDifference: ytdBudget.Sub(ytdActual),
		}

		switch lineItem.Category.Type {
		case models.CategoryTypeIncome:
			incomeBudget = incomeBudget.Add(ytdBudget)
			incomeCategories = append(incomeCategories, category)
		case models.CategoryTypeExpense:
			expenseBudget = expenseBudget.Add(ytdBudget)
			expenseCategories = append(expenseCategories, category)
		}
	}

	return &DashboardData{
		Budget:            budget,
		CurrentMonth:      month,
		CurrentYear:       budget.Year,
		YTDIncomeBudget:   incomeBudget,
		YTDIncomeActual:   incomeActual,
		YTDExpenseBudget:  expenseBudget,
		YTDExpenseActual:  expenseActual,
		IncomeCategories:  incomeCategories,
		ExpenseCategories: expenseCategories,
	}, nil
}
