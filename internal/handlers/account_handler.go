package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	AccountTypeID string          `json:"account_type_id" binding:"required,uuid"`
	Balance       decimal.Decimal `json:"balance"`
	Institution   string          `json:"institution" binding:"omitempty,max=100"`
	AccountNumber string          `json:"account_number" binding:"omitempty,max=50"`
	Currency      string          `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	AccountTypeID *string          `json:"account_type_id" binding:"omitempty,uuid"`
	Balance       *decimal.Decimal `json:"balance"`
	BalanceNotes  string           `json:"balance_notes" binding:"omitempty,max=255"`
	Institution   *string          `json:"institution" binding:"omitempty,max=100"`
	AccountNumber *string          `json:"account_number" binding:"omitempty,max=50"`
	Currency      *string          `json:"currency" binding:"omitempty,iso4217"`
	IsActive      *bool            `json:"is_active"`
}

// CreateAccount handles the creation of a new account.
// @Summary     Create an account
// @Description Create a new account with an opening balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(
		req.Name,
		req.AccountTypeID,
		req.Balance,
		req.Institution,
		req.AccountNumber,
		req.Currency,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts handles listing accounts.
// @Summary     Get accounts
// @Description Get a paginated list of accounts, active only by default
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       page             query int  false "Page number (default 1)"
// @Param       page_size        query int  false "Items per page (default 20, max 100)"
// @Param       include_inactive query bool false "Include deactivated accounts"
// @Success     200 {object} pagination.PageResponse[models.Account] "Paginated accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	includeInactive := false
	if v := c.Query("include_inactive"); v != "" {
		switch v {
		case "true":
			includeInactive = true
		case "false":
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "include_inactive must be 'true' or 'false'"))
			return
		}
	}

	result, err := h.accountService.GetAllAccounts(page, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccount handles retrieving a specific account.
// @Summary     Get account by ID
// @Description Get a specific account by ID
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {object} models.Account "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount handles updating an existing account.
// @Summary     Update account
// @Description Update an account's fields. A balance change is recorded in the balance history
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Account ID"
// @Param       request body UpdateAccountRequest true "Updated account details"
// @Success     200 {object} models.Account "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input or account ID"
// @Failure     404 {object} ErrorResponse "Account or account type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(accountID, services.AccountPatch{
		Name:          req.Name,
		AccountTypeID: req.AccountTypeID,
		Balance:       req.Balance,
		BalanceNotes:  req.BalanceNotes,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
		Currency:      req.Currency,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeactivateAccount handles deactivating an account.
// @Summary     Deactivate account
// @Description Mark an account inactive. Its transactions are kept for history
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {object} MessageResponse "Account deactivated"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	accountID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeactivateAccount(accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated successfully"})
}

// GetBalanceHistory handles retrieving an account's balance change log.
// @Summary     Get account balance history
// @Description Get a paginated log of balance changes for an account, newest first
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id        path  string true  "Account ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BalanceHistory] "Paginated balance history"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/balance-history [get]
func (h *AccountHandler) GetBalanceHistory(c *gin.Context) {
	accountID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.accountService.GetBalanceHistory(accountID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
