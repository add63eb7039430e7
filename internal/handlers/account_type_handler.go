package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// AccountTypeHandler handles account type requests.
type AccountTypeHandler struct {
	accountTypeService services.AccountTypeServicer
}

// NewAccountTypeHandler creates a new AccountTypeHandler.
func NewAccountTypeHandler(accountTypeService services.AccountTypeServicer) *AccountTypeHandler {
	return &AccountTypeHandler{accountTypeService: accountTypeService}
}

// CreateAccountTypeRequest represents the request payload for creating an account type.
type CreateAccountTypeRequest struct {
	Name        string                     `json:"name" binding:"required,min=1,max=100"`
	Category    models.AccountTypeCategory `json:"category" binding:"required,account_type_category"`
	SubCategory string                     `json:"sub_category" binding:"omitempty,account_sub_category"`
}

// CreateAccountType handles the creation of a new account type.
// @Summary     Create an account type
// @Description Create a new account type (asset or liability)
// @Tags        account-types
// @Accept      json
// @Produce     json
// @Param       request body CreateAccountTypeRequest true "Account type details"
// @Success     201 {object} models.AccountType "Account type created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account-types [post]
func (h *AccountTypeHandler) CreateAccountType(c *gin.Context) {
	var req CreateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	accountType, err := h.accountTypeService.CreateAccountType(req.Name, req.Category, req.SubCategory)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account_type": accountType})
}

// GetAccountTypes handles listing account types.
// @Summary     Get account types
// @Description Get all account types sorted by name
// @Tags        account-types
// @Accept      json
// @Produce     json
// @Success     200 {array} models.AccountType "Account types"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account-types [get]
func (h *AccountTypeHandler) GetAccountTypes(c *gin.Context) {
	accountTypes, err := h.accountTypeService.GetAllAccountTypes()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_types": accountTypes})
}

// GetAccountType handles retrieving a specific account type.
// @Summary     Get account type by ID
// @Description Get a specific account type by ID
// @Tags        account-types
// @Accept      json
// @Produce     json
// @Param       id path string true "Account type ID"
// @Success     200 {object} models.AccountType "Account type details"
// @Failure     400 {object} ErrorResponse "Invalid account type ID"
// @Failure     404 {object} ErrorResponse "Account type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account-types/{id} [get]
func (h *AccountTypeHandler) GetAccountType(c *gin.Context) {
	accountTypeID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountType, err := h.accountTypeService.GetAccountTypeByID(accountTypeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_type": accountType})
}
