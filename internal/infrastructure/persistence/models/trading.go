package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/domain/trading"
	"github.com/shopspring/decimal"
)

// TradeModel is the persistence model for metal trades
type TradeModel struct {
	AggregateModel
	Metal       string          `gorm:"size:10;not null;index"`
	Kind        string          `gorm:"size:5;not null;index"`
	WeightGrams decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	RatePerGram int64           `gorm:"not null"`
	Amount      int64           `gorm:"not null"`
	PartyName   string          `gorm:"size:200"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"`
	TradeDate   time.Time       `gorm:"not null;index"`
	Remark      string          `gorm:"size:500"`
}

// TableName specifies the table name
func (TradeModel) TableName() string {
	return "metal_trades"
}

// ToDomain converts the model to a domain trade
func (m *TradeModel) ToDomain() *trading.Trade {
	t := &trading.Trade{
		Metal:       trading.Metal(m.Metal),
		Kind:        trading.TradeKind(m.Kind),
		WeightGrams: m.WeightGrams,
		RatePerGram: valueobject.NewMoney(m.RatePerGram),
		Amount:      valueobject.NewMoney(m.Amount),
		PartyName:   m.PartyName,
		CustomerID:  m.CustomerID,
		TradeDate:   m.TradeDate,
		Remark:      m.Remark,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}

// TradeModelFromDomain builds the model from a domain trade
func TradeModelFromDomain(t *trading.Trade) *TradeModel {
	m := &TradeModel{
		Metal:       string(t.Metal),
		Kind:        string(t.Kind),
		WeightGrams: t.WeightGrams,
		RatePerGram: t.RatePerGram.Paise(),
		Amount:      t.Amount.Paise(),
		PartyName:   t.PartyName,
		CustomerID:  t.CustomerID,
		TradeDate:   t.TradeDate,
		Remark:      t.Remark,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}
