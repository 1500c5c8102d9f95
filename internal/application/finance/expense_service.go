package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/finance"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CreateExpenseRequest records a business expense. Amount is paise.
type CreateExpenseRequest struct {
	Category    string    `json:"category" binding:"required,max=100"`
	Description string    `json:"description" binding:"max=500"`
	Amount      int64     `json:"amount" binding:"required,paise"`
	ExpenseDate time.Time `json:"expense_date" binding:"required"`
	PaidVia     string    `json:"paid_via" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CHEQUE"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      int64     `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	PaidVia     string    `json:"paid_via,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryTotalResponse is one row of the monthly summary
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Total    int64  `json:"total"`
}

// ToExpenseResponse converts a domain expense record
func ToExpenseResponse(e *finance.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount.Paise(),
		ExpenseDate: e.ExpenseDate,
		PaidVia:     e.PaidVia,
		CreatedAt:   e.CreatedAt,
	}
}

// ExpenseService records business expenses and mirrors each into the
// ledger as a customer-less OUT entry.
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	entryRepo   ledger.EntryRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, entryRepo ledger.EntryRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, entryRepo: entryRepo, logger: logger}
}

// Create records an expense and its ledger entry
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpenseRecord(req.Category, req.Description,
		valueobject.NewMoney(req.Amount), req.ExpenseDate, req.PaidVia)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	entry, err := ledger.NewEntry(ledger.EntryExpense, ledger.DirectionOut, expense.Amount, req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	entry.WithNote(expense.Category)
	if err := s.entryRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("category", expense.Category),
		zap.Int64("amount", expense.Amount.Paise()))

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// List returns expenses matching the filter, paginated
func (s *ExpenseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ExpenseResponse], error) {
	expenses, total, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, ToExpenseResponse(e))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// MonthlySummary totals expenses per category for the month containing ref
func (s *ExpenseService) MonthlySummary(ctx context.Context, ref time.Time) ([]CategoryTotalResponse, error) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0)
	rows, err := s.expenseRepo.SumByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryTotalResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, CategoryTotalResponse{
			Category: r.Category,
			Count:    r.Count,
			Total:    r.Total.Paise(),
		})
	}
	return items, nil
}
