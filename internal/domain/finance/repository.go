package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// CategoryTotal is one row of the monthly expense summary
type CategoryTotal struct {
	Category string
	Count    int64
	Total    valueobject.Money
}

// ExpenseRepository defines persistence operations for expense records
type ExpenseRepository interface {
	Save(ctx context.Context, expense *ExpenseRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ExpenseRecord, int64, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]*ExpenseRecord, error)
	SumByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
