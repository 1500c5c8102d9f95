package handler

import (
	"github.com/gin-gonic/gin"
	lendingapp "github.com/pawnbook/backend/internal/application/lending"
	"github.com/pawnbook/backend/internal/interfaces/http/dto"
)

// LoanHandler handles lending account API endpoints: pledge loans, cash
// loans and udhar all share one account surface.
type LoanHandler struct {
	BaseHandler
	loanService *lendingapp.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *lendingapp.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Open opens a lending account
func (h *LoanHandler) Open(c *gin.Context) {
	var req lendingapp.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.OpenAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one account with its payment history
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	resp, err := h.loanService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of accounts
func (h *LoanHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.loanService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByCustomer returns all of one customer's accounts
func (h *LoanHandler) ListByCustomer(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.loanService.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListOverdue returns accounts past their due date with money outstanding
func (h *LoanHandler) ListOverdue(c *gin.Context) {
	resp, err := h.loanService.ListOverdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pay applies a payment to an account. A lost optimistic-lock race comes
// back as CONCURRENCY_CONFLICT and the client retries with fresh state.
func (h *LoanHandler) Pay(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req lendingapp.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.ApplyPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Default writes off an account
func (h *LoanHandler) Default(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	resp, err := h.loanService.MarkDefaulted(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// InterestPreview computes one month of interest for an amount and rate
func (h *LoanHandler) InterestPreview(c *gin.Context) {
	var req lendingapp.InterestPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.ComputeMonthlyInterest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers lending routes
func (h *LoanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.Open)
		accounts.GET("", h.List)
		accounts.GET("/overdue", h.ListOverdue)
		accounts.GET("/interest-preview", h.InterestPreview)
		accounts.GET("/:id", h.Get)
		accounts.POST("/:id/payments", h.Pay)
		accounts.POST("/:id/default", h.Default)
	}
	rg.GET("/customers/:id/accounts", h.ListByCustomer)
}
