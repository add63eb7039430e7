package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

const testAccountTypeID = "66666666-6666-6666-6666-666666666666"

type mockAccountService struct {
	createAccountFn     func(name, accountTypeID string, balance decimal.Decimal, institution, accountNumber, currency string) (*models.Account, error)
	getAllAccountsFn    func(page pagination.PageRequest, includeInactive bool) (*pagination.PageResponse[models.Account], error)
	getAccountByIDFn    func(id string) (*models.Account, error)
	updateAccountFn     func(id string, patch services.AccountPatch) (*models.Account, error)
	deactivateAccountFn func(id string) error
	getBalanceHistoryFn func(accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.BalanceHistory], error)
}

func (m *mockAccountService) CreateAccount(name, accountTypeID string, balance decimal.Decimal, institution, accountNumber, currency string) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(name, accountTypeID, balance, institution, accountNumber, currency)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) GetAllAccounts(page pagination.PageRequest, includeInactive bool) (*pagination.PageResponse[models.Account], error) {
	if m.getAllAccountsFn != nil {
		return m.getAllAccountsFn(page, includeInactive)
	}
	resp := pagination.NewPageResponse([]models.Account{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockAccountService) GetAccountByID(id string) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(id)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) UpdateAccount(id string, patch services.AccountPatch) (*models.Account, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(id, patch)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) DeactivateAccount(id string) error {
	if m.deactivateAccountFn != nil {
		return m.deactivateAccountFn(id)
	}
	return nil
}

func (m *mockAccountService) GetBalanceHistory(accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.BalanceHistory], error) {
	if m.getBalanceHistoryFn != nil {
		return m.getBalanceHistoryFn(accountID, page)
	}
	resp := pagination.NewPageResponse([]models.BalanceHistory{}, 1, 20, 0)
	return &resp, nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	r.POST("/accounts", handler.CreateAccount)
	r.GET("/accounts", handler.GetAccounts)
	r.GET("/accounts/:id", handler.GetAccount)
	r.PUT("/accounts/:id", handler.UpdateAccount)
	r.DELETE("/accounts/:id", handler.DeactivateAccount)
	r.GET("/accounts/:id/balance-history", handler.GetBalanceHistory)
	return r
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockAccountService{
			createAccountFn: func(name, accountTypeID string, balance decimal.Decimal, institution, accountNumber, currency string) (*models.Account, error) {
				return &models.Account{
					Base:          models.Base{ID: testAccountID},
					Name:          name,
					AccountTypeID: accountTypeID,
					Balance:       balance,
					Currency:      currency,
					IsActive:      true,
				}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "POST", "/accounts",
			`{"name":"Chequing","account_type_id":"`+testAccountTypeID+`","balance":"1500.00","currency":"CAD"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on invalid currency", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}))

		rec := doRequest(r, "POST", "/accounts",
			`{"name":"Chequing","account_type_id":"`+testAccountTypeID+`","currency":"DOLLARS"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when account type is missing", func(t *testing.T) {
		svc := &mockAccountService{
			createAccountFn: func(string, string, decimal.Decimal, string, string, string) (*models.Account, error) {
				return nil, apperrors.ErrAccountTypeNotFound
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "POST", "/accounts",
			`{"name":"Chequing","account_type_id":"`+testAccountTypeID+`"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_TYPE_NOT_FOUND")
	})
}

func TestAccountHandler_GetAccounts(t *testing.T) {
	t.Run("forwards include_inactive", func(t *testing.T) {
		var got bool
		svc := &mockAccountService{
			getAllAccountsFn: func(page pagination.PageRequest, includeInactive bool) (*pagination.PageResponse[models.Account], error) {
				got = includeInactive
				resp := pagination.NewPageResponse([]models.Account{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "GET", "/accounts?include_inactive=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !got {
			t.Error("expected include_inactive to be forwarded as true")
		}
	})

	t.Run("returns 400 on bad include_inactive", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}))

		rec := doRequest(r, "GET", "/accounts?include_inactive=yes", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_UpdateAccount(t *testing.T) {
	t.Run("returns 200 and forwards balance patch", func(t *testing.T) {
		svc := &mockAccountService{
			updateAccountFn: func(id string, patch services.AccountPatch) (*models.Account, error) {
				if patch.Balance == nil || !patch.Balance.Equal(decimal.RequireFromString("250.00")) {
					t.Errorf("expected balance patch 250.00, got %v", patch.Balance)
				}
				if patch.BalanceNotes != "monthly reconciliation" {
					t.Errorf("expected balance notes to be forwarded, got %q", patch.BalanceNotes)
				}
				return &models.Account{Base: models.Base{ID: id}, Balance: *patch.Balance}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "PUT", "/accounts/"+testAccountID,
			`{"balance":"250.00","balance_notes":"monthly reconciliation"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_DeactivateAccount(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}))

		rec := doRequest(r, "DELETE", "/accounts/"+testAccountID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Account deactivated successfully" {
			t.Errorf("unexpected message: %v", result["message"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockAccountService{
			deactivateAccountFn: func(string) error { return apperrors.ErrAccountNotFound },
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "DELETE", "/accounts/"+testAccountID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_GetBalanceHistory(t *testing.T) {
	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}))

		rec := doRequest(r, "GET", "/accounts/not-a-uuid/balance-history", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when account is missing", func(t *testing.T) {
		svc := &mockAccountService{
			getBalanceHistoryFn: func(string, pagination.PageRequest) (*pagination.PageResponse[models.BalanceHistory], error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "GET", "/accounts/"+testAccountID+"/balance-history", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
