package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new transaction against an account and category.
func (s *transactionService) CreateTransaction(
	accountID, categoryID string,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	var account models.Account
	if err := s.db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     description,
		TransactionDate: date,
		Type:            transactionType,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactions returns a paginated list of transactions matching the
// filter, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FromDate != nil {
		base = base.Where("transaction_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("transaction_date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.MinAmount != nil {
		base = base.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		base = base.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		base = base.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Preload("Account").
		Scopes(pagination.Ordered(page, "transaction_date DESC")).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Preload("Account").Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the provided patch fields to a transaction.
func (s *transactionService) UpdateTransaction(id string, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.AccountID != nil {
		var count int64
		if err := s.db.Model(&models.Account{}).Where("id = ?", *patch.AccountID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrAccountNotFound
		}
		updates["account_id"] = *patch.AccountID
	}
	if patch.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *patch.CategoryID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.TransactionDate != nil {
		updates["transaction_date"] = *patch.TransactionDate
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
