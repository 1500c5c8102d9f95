package trading

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrade(t *testing.T) {
	now := time.Now()
	rate := valueobject.NewMoney(720000)
	amount := valueobject.NewMoney(9000000)

	tests := []struct {
		name    string
		metal   Metal
		kind    TradeKind
		weight  decimal.Decimal
		amount  valueobject.Money
		wantErr bool
	}{
		{"valid gold buy", MetalGold, TradeBuy, decimal.NewFromFloat(12.5), amount, false},
		{"valid silver sell", MetalSilver, TradeSell, decimal.NewFromInt(100), amount, false},
		{"unknown metal", Metal("PLATINUM"), TradeBuy, decimal.NewFromInt(1), amount, true},
		{"unknown kind", MetalGold, TradeKind("SWAP"), decimal.NewFromInt(1), amount, true},
		{"zero weight", MetalGold, TradeBuy, decimal.Zero, amount, true},
		{"zero amount", MetalGold, TradeBuy, decimal.NewFromInt(1), valueobject.Zero(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTrade(tt.metal, tt.kind, tt.weight, rate, tt.amount, "Sharma Jewellers", now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Sharma Jewellers", tr.PartyName)
			assert.Equal(t, 1, tr.GetVersion())
		})
	}
}

func TestTrade_Mutations(t *testing.T) {
	tr, err := NewTrade(MetalGold, TradeBuy, decimal.NewFromInt(10),
		valueobject.NewMoney(720000), valueobject.NewMoney(7200000), "", time.Now())
	require.NoError(t, err)

	customerID := uuid.New()
	tr.ForCustomer(customerID)
	assert.Equal(t, &customerID, tr.CustomerID)

	tr.UpdateRemark("old bangles, melted")
	assert.Equal(t, "old bangles, melted", tr.Remark)
	assert.Equal(t, 2, tr.GetVersion())
}
