package trading

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// TradeSummary aggregates one metal and side over a period
type TradeSummary struct {
	Metal       Metal
	Kind        TradeKind
	TradeCount  int64
	TotalWeight string
	TotalAmount valueobject.Money
}

// TradeRepository defines persistence operations for trades
type TradeRepository interface {
	Save(ctx context.Context, trade *Trade) error
	FindByID(ctx context.Context, id uuid.UUID) (*Trade, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Trade, int64, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]*Trade, error)
	Summarize(ctx context.Context, from, to time.Time) ([]TradeSummary, error)
}
