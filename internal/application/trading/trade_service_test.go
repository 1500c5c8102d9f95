package trading

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/domain/trading"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTradeRepository is a mock implementation of TradeRepository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Save(ctx context.Context, trade *trading.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trading.Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trading.Trade), args.Error(1)
}

func (m *MockTradeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trading.Trade, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*trading.Trade), args.Get(1).(int64), args.Error(2)
}

func (m *MockTradeRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*trading.Trade, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trading.Trade), args.Error(1)
}

func (m *MockTradeRepository) Summarize(ctx context.Context, from, to time.Time) ([]trading.TradeSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trading.TradeSummary), args.Error(1)
}

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*ledger.Entry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) SumByType(ctx context.Context, entryType ledger.EntryType, from, to time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, entryType, from, to)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockEntryRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func TestTradeService_Create(t *testing.T) {
	ctx := context.Background()
	tradeDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("buy writes OUT ledger entry", func(t *testing.T) {
		tradeRepo := new(MockTradeRepository)
		entryRepo := new(MockEntryRepository)
		svc := NewTradeService(tradeRepo, entryRepo, zap.NewNop())

		tradeRepo.On("Save", ctx, mock.AnythingOfType("*trading.Trade")).Return(nil)
		entryRepo.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.EntryType == ledger.EntryTradeBuy && e.Direction == ledger.DirectionOut &&
				e.Amount.Paise() == 9000000
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateTradeRequest{
			Metal:       "GOLD",
			Kind:        "BUY",
			WeightGrams: decimal.NewFromFloat(12.5),
			RatePerGram: 720000,
			Amount:      9000000,
			PartyName:   "Sharma Jewellers",
			TradeDate:   tradeDate,
		})
		require.NoError(t, err)
		assert.Equal(t, "GOLD", resp.Metal)
		entryRepo.AssertExpectations(t)
	})

	t.Run("sell writes IN ledger entry", func(t *testing.T) {
		tradeRepo := new(MockTradeRepository)
		entryRepo := new(MockEntryRepository)
		svc := NewTradeService(tradeRepo, entryRepo, zap.NewNop())

		tradeRepo.On("Save", ctx, mock.AnythingOfType("*trading.Trade")).Return(nil)
		entryRepo.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.EntryType == ledger.EntryTradeSell && e.Direction == ledger.DirectionIn
		})).Return(nil)

		_, err := svc.Create(ctx, CreateTradeRequest{
			Metal:       "SILVER",
			Kind:        "SELL",
			WeightGrams: decimal.NewFromInt(200),
			Amount:      1800000,
			TradeDate:   tradeDate,
		})
		require.NoError(t, err)
	})

	t.Run("invalid trade never saved", func(t *testing.T) {
		tradeRepo := new(MockTradeRepository)
		entryRepo := new(MockEntryRepository)
		svc := NewTradeService(tradeRepo, entryRepo, zap.NewNop())

		_, err := svc.Create(ctx, CreateTradeRequest{
			Metal:       "GOLD",
			Kind:        "BUY",
			WeightGrams: decimal.Zero,
			Amount:      100,
			TradeDate:   tradeDate,
		})
		require.Error(t, err)
		tradeRepo.AssertNotCalled(t, "Save")
	})
}

func TestTradeService_Summary(t *testing.T) {
	ctx := context.Background()
	tradeRepo := new(MockTradeRepository)
	entryRepo := new(MockEntryRepository)
	svc := NewTradeService(tradeRepo, entryRepo, zap.NewNop())

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	tradeRepo.On("Summarize", ctx, from, to).Return([]trading.TradeSummary{
		{Metal: trading.MetalGold, Kind: trading.TradeBuy, TradeCount: 3,
			TotalWeight: "45.5", TotalAmount: valueobject.NewMoney(32000000)},
	}, nil)

	rows, err := svc.Summary(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(32000000), rows[0].TotalAmount)
}
