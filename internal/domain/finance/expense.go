package finance

import (
	"strings"
	"time"

	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// ExpenseRecord is a business expense with no customer attached. Like the
// ledger it feeds, expenses are not edited after the fact.
type ExpenseRecord struct {
	shared.BaseAggregateRoot
	Category    string
	Description string
	Amount      valueobject.Money
	ExpenseDate time.Time
	PaidVia     string
}

// NewExpenseRecord creates an expense record
func NewExpenseRecord(category, description string, amount valueobject.Money, expenseDate time.Time, paidVia string) (*ExpenseRecord, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense category is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount must be positive")
	}
	return &ExpenseRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Description:       strings.TrimSpace(description),
		Amount:            amount,
		ExpenseDate:       expenseDate,
		PaidVia:           paidVia,
	}, nil
}
