package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account with the given opening balance.
func (s *accountService) CreateAccount(name, accountTypeID string, balance decimal.Decimal, institution, accountNumber, currency string) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if currency == "" {
		currency = "CAD"
	}

	var accountType models.AccountType
	if err := s.db.Where("id = ?", accountTypeID).First(&accountType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account := &models.Account{
		Name:          name,
		AccountTypeID: accountTypeID,
		Balance:       balance,
		Institution:   institution,
		AccountNumber: accountNumber,
		Currency:      currency,
		IsActive:      true,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetAllAccounts returns a paginated list of accounts, active only unless
// includeInactive is set.
func (s *accountService) GetAllAccounts(page pagination.PageRequest, includeInactive bool) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{})
	if !includeInactive {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Preload("AccountType").Scopes(pagination.Ordered(page, "name")).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID returns an account by ID.
func (s *accountService) GetAccountByID(id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Preload("AccountType").Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount applies the provided patch fields to an account. A balance
// change appends a balance history row in the same transaction.
func (s *accountService) UpdateAccount(id string, patch AccountPatch) (*models.Account, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.AccountTypeID != nil {
		var count int64
		if err := s.db.Model(&models.AccountType{}).Where("id = ?", *patch.AccountTypeID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrAccountTypeNotFound
		}
		updates["account_type_id"] = *patch.AccountTypeID
	}
	if patch.Institution != nil {
		updates["institution"] = *patch.Institution
	}
	if patch.AccountNumber != nil {
		updates["account_number"] = *patch.AccountNumber
	}
	if patch.Currency != nil {
		updates["currency"] = *patch.Currency
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.Balance != nil {
		updates["balance"] = *patch.Balance
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if patch.Balance != nil && !patch.Balance.Equal(account.Balance) {
			history := &models.BalanceHistory{
				AccountID:       account.ID,
				PreviousBalance: account.Balance,
				NewBalance:      *patch.Balance,
				ChangeAmount:    patch.Balance.Sub(account.Balance),
				ChangeReason:    "manual_update",
				Notes:           patch.BalanceNotes,
			}
			if err := tx.Create(history).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(account).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// DeactivateAccount marks an account inactive. Transactions keep referencing
// it for historical records.
func (s *accountService) DeactivateAccount(id string) error {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(account).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBalanceHistory returns the balance change log for an account, newest first.
func (s *accountService) GetBalanceHistory(accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.BalanceHistory], error) {
	if _, err := s.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.BalanceHistory{}).Where("account_id = ?", accountID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var history []models.BalanceHistory
	if err := base.Scopes(pagination.Ordered(page, "created_at DESC")).Find(&history).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(history, page.Page, page.PageSize, totalItems)
	return &result, nil
}
