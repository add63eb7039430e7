package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

const (
	testAccountID     = "44444444-4444-4444-4444-444444444444"
	testTransactionID = "55555555-5555-5555-5555-555555555555"
)

type mockTransactionService struct {
	createTransactionFn  func(accountID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	getTransactionsFn    func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn func(id string) (*models.Transaction, error)
	updateTransactionFn  func(id string, patch services.TransactionPatch) (*models.Transaction, error)
	deleteTransactionFn  func(id string) error
}

func (m *mockTransactionService) CreateTransaction(accountID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(accountID, categoryID, transactionType, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactions(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(id string, patch services.TransactionPatch) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, patch)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransaction)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 and parses plain date", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(accountID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error) {
				want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
				if !date.Equal(want) {
					t.Errorf("expected date %v, got %v", want, date)
				}
				return &models.Transaction{
					Base:            models.Base{ID: testTransactionID},
					AccountID:       accountID,
					CategoryID:      categoryID,
					Type:            transactionType,
					Amount:          amount,
					Description:     description,
					TransactionDate: date,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","category_id":"`+testCategoryID+`","type":"EXPENSE","amount":"42.50","description":"groceries","date":"2025-03-10"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on invalid type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","category_id":"`+testCategoryID+`","type":"TRANSFER","amount":"10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","category_id":"`+testCategoryID+`","type":"EXPENSE","amount":"10","date":"10/03/2025"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when account is missing", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(string, string, models.TransactionType, decimal.Decimal, string, time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","category_id":"`+testCategoryID+`","type":"EXPENSE","amount":"10"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("returns 200 and forwards filters", func(t *testing.T) {
		svc := &mockTransactionService{
			getTransactionsFn: func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				if filter.Type == nil || *filter.Type != models.TransactionTypeExpense {
					t.Errorf("expected EXPENSE type filter, got %v", filter.Type)
				}
				if filter.MinAmount == nil || !filter.MinAmount.Equal(decimal.RequireFromString("50")) {
					t.Errorf("expected min_amount 50, got %v", filter.MinAmount)
				}
				if filter.Search != "coffee" {
					t.Errorf("expected search coffee, got %q", filter.Search)
				}
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?type=EXPENSE&min_amount=50&search=coffee", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid type filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?type=TRANSFER", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid min_amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?min_amount=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid from_date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?from_date=March+1st", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 and forwards patch", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(id string, patch services.TransactionPatch) (*models.Transaction, error) {
				if patch.Description == nil || *patch.Description != "corrected" {
					t.Errorf("expected description patch corrected, got %v", patch.Description)
				}
				if patch.TransactionDate == nil {
					t.Error("expected transaction date patch")
				}
				return &models.Transaction{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/"+testTransactionID,
			`{"description":"corrected","date":"2025-04-01"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(string, services.TransactionPatch) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/"+testTransactionID, `{"description":"ghost"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Transaction deleted successfully" {
			t.Errorf("unexpected message: %v", result["message"])
		}
	})
}
