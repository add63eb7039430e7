package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// LineItemRequest represents one category allocation in a budget payload.
type LineItemRequest struct {
	CategoryID   string          `json:"category_id" binding:"required,uuid"`
	YearlyAmount decimal.Decimal `json:"yearly_amount" binding:"required"`
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Year      int               `json:"year" binding:"required,min=1900,max=2200"`
	Name      string            `json:"name" binding:"required,min=1,max=100"`
	LineItems []LineItemRequest `json:"line_items" binding:"omitempty,dive"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Year     *int    `json:"year" binding:"omitempty,min=1900,max=2200"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

// UpdateLineItemRequest represents the request payload for updating a line item.
type UpdateLineItemRequest struct {
	YearlyAmount decimal.Decimal `json:"yearly_amount" binding:"required"`
}

// CreateBudget handles the creation of a new yearly budget.
// @Summary     Create a budget
// @Description Create a new yearly budget, optionally with per-category line items
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Budget already exists for year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	items := make([]services.LineItemInput, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		items = append(items, services.LineItemInput{
			CategoryID:   item.CategoryID,
			YearlyAmount: item.YearlyAmount,
		})
	}

	budget, err := h.budgetService.CreateBudget(req.Year, req.Name, items)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets.
// @Summary     Get budgets
// @Description Get a paginated list of budgets, newest year first
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetAllBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get a specific budget with its line items
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgetByYear handles retrieving the budget for a calendar year.
// @Summary     Get budget by year
// @Description Get the budget for a specific calendar year
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       year path int true "Calendar year"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/year/{year} [get]
func (h *BudgetHandler) GetBudgetByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}

	budget, err := h.budgetService.GetBudgetByYear(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetActiveBudget handles retrieving the currently active budget.
// @Summary     Get active budget
// @Description Get the currently active budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Success     200 {object} models.Budget "Active budget"
// @Failure     404 {object} ErrorResponse "No active budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/active [get]
func (h *BudgetHandler) GetActiveBudget(c *gin.Context) {
	budget, err := h.budgetService.GetActiveBudget()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Description Update an existing budget's year, name, or active flag
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget already exists for year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, services.BudgetPatch{
		Year:     req.Year,
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Delete a budget and all of its line items
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// SetActiveBudget handles marking a budget as the active one for its year.
// @Summary     Set active budget
// @Description Mark a budget active and deactivate other budgets for the same year
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Activated budget"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/set-active [put]
func (h *BudgetHandler) SetActiveBudget(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.SetActiveBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// AddLineItem handles adding a category allocation to a budget.
// @Summary     Add budget line item
// @Description Add a per-category allocation to a budget and grow its total
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string          true "Budget ID"
// @Param       request body LineItemRequest true "Line item details"
// @Success     201 {object} models.BudgetLineItem "Line item created"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Category already budgeted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/line-items [post]
func (h *BudgetHandler) AddLineItem(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.budgetService.AddLineItem(budgetID, req.CategoryID, req.YearlyAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line_item": item})
}

// UpdateLineItem handles updating a budget line item's yearly amount.
// @Summary     Update budget line item
// @Description Update a line item's yearly amount and adjust the budget total
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Line item ID"
// @Param       request body UpdateLineItemRequest true "Updated line item details"
// @Success     200 {object} models.BudgetLineItem "Updated line item"
// @Failure     400 {object} ErrorResponse "Invalid input or line item ID"
// @Failure     404 {object} ErrorResponse "Line item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/line-items/{id} [put]
func (h *BudgetHandler) UpdateLineItem(c *gin.Context) {
	itemID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.budgetService.UpdateLineItem(itemID, services.LineItemPatch{
		YearlyAmount: &req.YearlyAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line_item": item})
}

// DeleteLineItem handles removing a line item from a budget.
// @Summary     Delete budget line item
// @Description Remove a line item and shrink the budget total
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id path string true "Line item ID"
// @Success     200 {object} MessageResponse "Line item deleted"
// @Failure     400 {object} ErrorResponse "Invalid line item ID"
// @Failure     404 {object} ErrorResponse "Line item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/line-items/{id} [delete]
func (h *BudgetHandler) DeleteLineItem(c *gin.Context) {
	itemID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteLineItem(itemID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Line item deleted successfully"})
}

// GetBudgetSummary handles retrieving actual-vs-budget figures for a budget's year.
// @Summary     Get budget summary
// @Description Get spend-vs-budget figures for a budget's full year
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetSummary "Budget summary"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/summary [get]
func (h *BudgetHandler) GetBudgetSummary(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.GetBudgetSummary(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonthlyProgress handles retrieving a budget's progress for one month.
// @Summary     Get monthly budget progress
// @Description Get spend-vs-budget figures for a single month of a budget's year
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id    path string true "Budget ID"
// @Param       month path int    true "Month (1-12)"
// @Success     200 {object} services.MonthlyBudgetProgress "Monthly progress"
// @Failure     400 {object} ErrorResponse "Invalid budget ID or month"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/monthly/{month} [get]
func (h *BudgetHandler) GetMonthlyProgress(c *gin.Context) {
	budgetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	progress, err := h.budgetService.GetMonthlyBudgetProgress(budgetID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetDashboard handles retrieving year-to-date figures for the active budget.
// @Summary     Get budget dashboard
// @Description Get year-to-date budget-vs-actual figures for the active budget through a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       month query int false "Month (1-12, default current month)"
// @Success     200 {object} services.DashboardData "Dashboard data"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "No active budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/dashboard [get]
func (h *BudgetHandler) GetDashboard(c *gin.Context) {
	month := int(time.Now().Month())
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
			return
		}
		month = m
	}

	dashboard, err := h.budgetService.GetDashboardData(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
