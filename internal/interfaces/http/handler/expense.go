package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/pawnbook/backend/internal/application/finance"
	"github.com/pawnbook/backend/internal/interfaces/http/dto"
)

// ExpenseHandler handles expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create records a business expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a page of expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.expenseService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MonthlySummary totals expenses per category for one month, current
// month when unspecified
func (h *ExpenseHandler) MonthlySummary(c *gin.Context) {
	ref := time.Now()
	if s := c.Query("month"); s != "" {
		parsed, err := time.Parse("2006-01", s)
		if err != nil {
			h.BadRequest(c, "Invalid month, expected YYYY-MM")
			return
		}
		ref = parsed
	}

	resp, err := h.expenseService.MonthlySummary(c.Request.Context(), ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/summary", h.MonthlySummary)
	}
}
