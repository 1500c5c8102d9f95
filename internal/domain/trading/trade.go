package trading

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Metal is the traded commodity
type Metal string

const (
	MetalGold   Metal = "GOLD"
	MetalSilver Metal = "SILVER"
)

// TradeKind is the side of the trade from the business's point of view
type TradeKind string

const (
	TradeBuy  TradeKind = "BUY"
	TradeSell TradeKind = "SELL"
)

// Trade records one metal purchase or sale. Trades are immutable after
// creation apart from the remark; mistakes are corrected with an opposite
// trade.
type Trade struct {
	shared.BaseAggregateRoot
	Metal       Metal
	Kind        TradeKind
	WeightGrams decimal.Decimal
	RatePerGram valueobject.Money
	Amount      valueobject.Money
	PartyName   string
	CustomerID  *uuid.UUID
	TradeDate   time.Time
	Remark      string
}

// NewTrade records a metal trade. Amount is taken as given rather than
// recomputed from weight and rate so hand-negotiated totals survive.
func NewTrade(
	metal Metal,
	kind TradeKind,
	weightGrams decimal.Decimal,
	ratePerGram valueobject.Money,
	amount valueobject.Money,
	partyName string,
	tradeDate time.Time,
) (*Trade, error) {
	if metal != MetalGold && metal != MetalSilver {
		return nil, shared.NewDomainError("INVALID_INPUT", "Metal must be GOLD or SILVER")
	}
	if kind != TradeBuy && kind != TradeSell {
		return nil, shared.NewDomainError("INVALID_INPUT", "Trade kind must be BUY or SELL")
	}
	if !weightGrams.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Trade weight must be positive")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Trade amount must be positive")
	}
	return &Trade{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Metal:             metal,
		Kind:              kind,
		WeightGrams:       weightGrams,
		RatePerGram:       ratePerGram,
		Amount:            amount,
		PartyName:         strings.TrimSpace(partyName),
		TradeDate:         tradeDate,
	}, nil
}

// ForCustomer links the trade to a known customer
func (t *Trade) ForCustomer(customerID uuid.UUID) {
	t.CustomerID = &customerID
}

// UpdateRemark is the only permitted mutation after creation
func (t *Trade) UpdateRemark(remark string) {
	t.Remark = remark
	t.IncrementVersion()
}
