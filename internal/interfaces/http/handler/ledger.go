package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/pawnbook/backend/internal/application/ledger"
)

// LedgerHandler serves the derived balance views
type LedgerHandler struct {
	BaseHandler
	balanceService *ledgerapp.BalanceService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(balanceService *ledgerapp.BalanceService) *LedgerHandler {
	return &LedgerHandler{balanceService: balanceService}
}

// Outstanding lists customers with a pending balance on one side of the
// book: direction=collect for money owed to the shop, pay for money the
// shop owes.
func (h *LedgerHandler) Outstanding(c *gin.Context) {
	direction := ledgerapp.OutstandingDirection(c.DefaultQuery("direction", string(ledgerapp.OutstandingCollect)))

	resp, err := h.balanceService.ListOutstanding(c.Request.Context(), direction)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ledger/outstanding", h.Outstanding)
}
