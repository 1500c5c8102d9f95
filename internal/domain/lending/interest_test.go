package lending

import (
	"testing"
	"time"

	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyInterest(t *testing.T) {
	tests := []struct {
		name        string
		outstanding int64
		rate        string
		want        int64
		wantErr     bool
	}{
		{"exact result", 100000, "2", 2000, false},
		{"rounds half up on fractional paise", 100001, "2", 2000, false},
		{"rounds up at exactly half", 100025, "2", 2001, false},
		{"fractional rate", 100000, "2.5", 2500, false},
		{"zero outstanding", 0, "2", 0, false},
		{"zero rate", 100000, "0", 0, false},
		{"negative outstanding", -1, "2", 0, true},
		{"negative rate", 100000, "-2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			require.NoError(t, err)
			got, err := MonthlyInterest(valueobject.NewMoney(tt.outstanding), rate)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Paise())
		})
	}
}

func TestElapsedWholeMonths(t *testing.T) {
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"same day", from, 0},
		{"before", from.AddDate(0, 0, -5), 0},
		{"day before month completes", time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), 0},
		{"exactly one month", time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), 1},
		{"one month and a half", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 1},
		{"three months", time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), 3},
		{"across year boundary", time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedWholeMonths(from, tt.asOf))
		})
	}
}

func TestAccount_AccruedInterest(t *testing.T) {
	acc := newTestAccount(t, 100000)

	got, err := acc.AccruedInterest(acc.TakenDate.AddDate(0, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(6000), got.Paise())

	got, err = acc.AccruedInterest(acc.TakenDate.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
