package finance

import (
	"testing"
	"time"

	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseRecord(t *testing.T) {
	now := time.Now()

	t.Run("valid expense", func(t *testing.T) {
		e, err := NewExpenseRecord("rent", "shop rent for March", valueobject.NewMoney(1500000), now, "BANK_TRANSFER")
		require.NoError(t, err)
		assert.Equal(t, "rent", e.Category)
		assert.Equal(t, int64(1500000), e.Amount.Paise())
	})

	t.Run("trims category and description", func(t *testing.T) {
		e, err := NewExpenseRecord("  tea  ", " staff tea ", valueobject.NewMoney(5000), now, "CASH")
		require.NoError(t, err)
		assert.Equal(t, "tea", e.Category)
		assert.Equal(t, "staff tea", e.Description)
	})

	t.Run("missing category rejected", func(t *testing.T) {
		_, err := NewExpenseRecord("   ", "x", valueobject.NewMoney(100), now, "CASH")
		assert.Error(t, err)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := NewExpenseRecord("rent", "", valueobject.Zero(), now, "CASH")
		assert.Error(t, err)
		_, err = NewExpenseRecord("rent", "", valueobject.NewMoney(-1), now, "CASH")
		assert.Error(t, err)
	})
}
