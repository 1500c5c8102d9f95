package trading

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/domain/trading"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateTradeRequest records a metal trade. Amounts are paise.
type CreateTradeRequest struct {
	Metal       string          `json:"metal" binding:"required,oneof=GOLD SILVER"`
	Kind        string          `json:"kind" binding:"required,oneof=BUY SELL"`
	WeightGrams decimal.Decimal `json:"weight_grams" binding:"required"`
	RatePerGram int64           `json:"rate_per_gram" binding:"omitempty,paise"`
	Amount      int64           `json:"amount" binding:"required,paise"`
	PartyName   string          `json:"party_name" binding:"max=200"`
	CustomerID  *uuid.UUID      `json:"customer_id"`
	TradeDate   time.Time       `json:"trade_date" binding:"required"`
	Remark      string          `json:"remark" binding:"max=500"`
}

// TradeResponse represents a trade in API responses
type TradeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Metal       string          `json:"metal"`
	Kind        string          `json:"kind"`
	WeightGrams decimal.Decimal `json:"weight_grams"`
	RatePerGram int64           `json:"rate_per_gram"`
	Amount      int64           `json:"amount"`
	PartyName   string          `json:"party_name,omitempty"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	TradeDate   time.Time       `json:"trade_date"`
	Remark      string          `json:"remark,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TradeSummaryResponse is one aggregated metal/side row
type TradeSummaryResponse struct {
	Metal       string `json:"metal"`
	Kind        string `json:"kind"`
	TradeCount  int64  `json:"trade_count"`
	TotalWeight string `json:"total_weight_grams"`
	TotalAmount int64  `json:"total_amount"`
}

// ToTradeResponse converts a domain trade
func ToTradeResponse(t *trading.Trade) TradeResponse {
	return TradeResponse{
		ID:          t.ID,
		Metal:       string(t.Metal),
		Kind:        string(t.Kind),
		WeightGrams: t.WeightGrams,
		RatePerGram: t.RatePerGram.Paise(),
		Amount:      t.Amount.Paise(),
		PartyName:   t.PartyName,
		CustomerID:  t.CustomerID,
		TradeDate:   t.TradeDate,
		Remark:      t.Remark,
		CreatedAt:   t.CreatedAt,
	}
}

// TradeService records metal trades and mirrors each into the ledger
type TradeService struct {
	tradeRepo trading.TradeRepository
	entryRepo ledger.EntryRepository
	logger    *zap.Logger
}

// NewTradeService creates a new TradeService
func NewTradeService(tradeRepo trading.TradeRepository, entryRepo ledger.EntryRepository, logger *zap.Logger) *TradeService {
	return &TradeService{tradeRepo: tradeRepo, entryRepo: entryRepo, logger: logger}
}

// Create records a trade and its ledger entry. Buying metal is cash out,
// selling is cash in.
func (s *TradeService) Create(ctx context.Context, req CreateTradeRequest) (*TradeResponse, error) {
	trade, err := trading.NewTrade(
		trading.Metal(req.Metal),
		trading.TradeKind(req.Kind),
		req.WeightGrams,
		valueobject.NewMoney(req.RatePerGram),
		valueobject.NewMoney(req.Amount),
		req.PartyName,
		req.TradeDate,
	)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		trade.ForCustomer(*req.CustomerID)
	}
	if req.Remark != "" {
		trade.Remark = req.Remark
	}

	if err := s.tradeRepo.Save(ctx, trade); err != nil {
		return nil, err
	}

	entryType := ledger.EntryTradeBuy
	entryDirection := ledger.DirectionOut
	if trade.Kind == trading.TradeSell {
		entryType = ledger.EntryTradeSell
		entryDirection = ledger.DirectionIn
	}
	entry, err := ledger.NewEntry(entryType, entryDirection, trade.Amount, req.TradeDate)
	if err != nil {
		return nil, err
	}
	if trade.CustomerID != nil {
		entry.ForCustomer(*trade.CustomerID)
	}
	entry.WithNote(string(trade.Metal) + " " + trade.WeightGrams.String() + "g")
	if err := s.entryRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("trade recorded",
		zap.String("metal", string(trade.Metal)),
		zap.String("kind", string(trade.Kind)),
		zap.Int64("amount", trade.Amount.Paise()))

	resp := ToTradeResponse(trade)
	return &resp, nil
}

// List returns trades matching the filter, paginated
func (s *TradeService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TradeResponse], error) {
	trades, total, err := s.tradeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]TradeResponse, 0, len(trades))
	for _, tr := range trades {
		items = append(items, ToTradeResponse(tr))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Summary aggregates bought and sold totals per metal over a period
func (s *TradeService) Summary(ctx context.Context, from, to time.Time) ([]TradeSummaryResponse, error) {
	rows, err := s.tradeRepo.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]TradeSummaryResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, TradeSummaryResponse{
			Metal:       string(r.Metal),
			Kind:        string(r.Kind),
			TradeCount:  r.TradeCount,
			TotalWeight: r.TotalWeight,
			TotalAmount: r.TotalAmount.Paise(),
		})
	}
	return items, nil
}
