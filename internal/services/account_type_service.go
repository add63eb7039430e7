package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// accountTypeService handles account type lookups.
type accountTypeService struct {
	db *gorm.DB
}

// NewAccountTypeService creates a new AccountTypeServicer.
func NewAccountTypeService(db *gorm.DB) AccountTypeServicer {
	return &accountTypeService{db: db}
}

// CreateAccountType creates a new account type. Names are unique.
func (s *accountTypeService) CreateAccountType(name string, category models.AccountTypeCategory, subCategory string) (*models.AccountType, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type name is required")
	}

	var count int64
	if err := s.db.Model(&models.AccountType{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type with this name already exists")
	}

	accountType := &models.AccountType{
		Name:        name,
		Category:    category,
		SubCategory: subCategory,
	}

	if err := s.db.Create(accountType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return accountType, nil
}

// GetAllAccountTypes returns all account types.
func (s *accountTypeService) GetAllAccountTypes() ([]models.AccountType, error) {
	var accountTypes []models.AccountType
	if err := s.db.Order("name").Find(&accountTypes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accountTypes, nil
}

// GetAccountTypeByID returns an account type by ID.
func (s *accountTypeService) GetAccountTypeByID(id string) (*models.AccountType, error) {
	var accountType models.AccountType
	if err := s.db.Where("id = ?", id).First(&accountType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &accountType, nil
}
