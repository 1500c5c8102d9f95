package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	tradingapp "github.com/pawnbook/backend/internal/application/trading"
	"github.com/pawnbook/backend/internal/interfaces/http/dto"
)

// TradeHandler handles metal trading API endpoints
type TradeHandler struct {
	BaseHandler
	tradeService *tradingapp.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *tradingapp.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// Create records a metal trade
func (h *TradeHandler) Create(c *gin.Context) {
	var req tradingapp.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.tradeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a page of trades
func (h *TradeHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.tradeService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Summary aggregates trades per metal and side over a date range. The
// range defaults to the current month.
func (h *TradeHandler) Summary(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	resp, err := h.tradeService.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers trading routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	trades := rg.Group("/trades")
	{
		trades.POST("", h.Create)
		trades.GET("", h.List)
		trades.GET("/summary", h.Summary)
	}
}
