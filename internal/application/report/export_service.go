package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/pawnbook/backend/internal/domain/finance"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/partner"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/trading"
	"go.uber.org/zap"
)

// ExportService streams the day's records as CSV, one section per
// collection. The export is a human-facing backup, so amounts are
// formatted as rupees.
type ExportService struct {
	customerRepo partner.CustomerRepository
	accountRepo  lending.AccountRepository
	tradeRepo    trading.TradeRepository
	expenseRepo  finance.ExpenseRepository
	entryRepo    ledger.EntryRepository
	logger       *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	customerRepo partner.CustomerRepository,
	accountRepo lending.AccountRepository,
	tradeRepo trading.TradeRepository,
	expenseRepo finance.ExpenseRepository,
	entryRepo ledger.EntryRepository,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		tradeRepo:    tradeRepo,
		expenseRepo:  expenseRepo,
		entryRepo:    entryRepo,
		logger:       logger,
	}
}

// WriteDaily writes the CSV export for one day to w
func (s *ExportService) WriteDaily(ctx context.Context, w io.Writer, day time.Time) error {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := s.writeSections(ctx, cw, from, to); err != nil {
		s.logger.Error("daily export failed",
			zap.String("day", from.Format("2006-01-02")), zap.Error(err))
		return err
	}
	s.logger.Info("daily export written", zap.String("day", from.Format("2006-01-02")))
	return nil
}

func (s *ExportService) writeSections(ctx context.Context, cw *csv.Writer, from, to time.Time) error {
	if err := s.writeCustomers(ctx, cw); err != nil {
		return err
	}
	if err := s.writeAccounts(ctx, cw, from, to); err != nil {
		return err
	}
	if err := s.writeTrades(ctx, cw, from, to); err != nil {
		return err
	}
	if err := s.writeExpenses(ctx, cw, from, to); err != nil {
		return err
	}
	if err := s.writeLedger(ctx, cw, from, to); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writeCustomers(ctx context.Context, cw *csv.Writer) error {
	if err := cw.Write([]string{"CUSTOMERS"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"name", "phone", "address", "status", "total_given", "total_taken"}); err != nil {
		return err
	}
	filter := shared.Filter{Page: 1, PageSize: 10000, OrderBy: "name", OrderDir: "asc"}
	customers, _, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return err
	}
	for _, c := range customers {
		if err := cw.Write([]string{
			c.Name, c.Phone, c.Address, string(c.Status),
			c.TotalGiven.String(), c.TotalTaken.String(),
		}); err != nil {
			return err
		}
	}
	return cw.Write([]string{})
}

func (s *ExportService) writeAccounts(ctx context.Context, cw *csv.Writer, from, to time.Time) error {
	if err := cw.Write([]string{"ACCOUNTS"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"account_number", "product", "direction", "principal", "outstanding", "status", "taken_date", "due_date"}); err != nil {
		return err
	}
	accounts, err := s.accountRepo.FindOutstanding(ctx, nil)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		due := ""
		if !a.DueDate.IsZero() {
			due = a.DueDate.Format("2006-01-02")
		}
		if err := cw.Write([]string{
			a.AccountNumber, string(a.ProductType), string(a.Direction),
			a.Principal.String(), a.OutstandingPrincipal.String(),
			string(a.EffectiveStatus(to)), a.TakenDate.Format("2006-01-02"), due,
		}); err != nil {
			return err
		}
	}
	return cw.Write([]string{})
}

func (s *ExportService) writeTrades(ctx context.Context, cw *csv.Writer, from, to time.Time) error {
	if err := cw.Write([]string{"TRADES"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"metal", "kind", "weight_grams", "amount", "party", "trade_date"}); err != nil {
		return err
	}
	trades, err := s.tradeRepo.FindBetween(ctx, from, to)
	if err != nil {
		return err
	}
	for _, tr := range trades {
		if err := cw.Write([]string{
			string(tr.Metal), string(tr.Kind), tr.WeightGrams.String(),
			tr.Amount.String(), tr.PartyName, tr.TradeDate.Format("2006-01-02"),
		}); err != nil {
			return err
		}
	}
	return cw.Write([]string{})
}

func (s *ExportService) writeExpenses(ctx context.Context, cw *csv.Writer, from, to time.Time) error {
	if err := cw.Write([]string{"EXPENSES"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"category", "description", "amount", "expense_date", "paid_via"}); err != nil {
		return err
	}
	expenses, err := s.expenseRepo.FindBetween(ctx, from, to)
	if err != nil {
		return err
	}
	for _, e := range expenses {
		if err := cw.Write([]string{
			e.Category, e.Description, e.Amount.String(),
			e.ExpenseDate.Format("2006-01-02"), e.PaidVia,
		}); err != nil {
			return err
		}
	}
	return cw.Write([]string{})
}

func (s *ExportService) writeLedger(ctx context.Context, cw *csv.Writer, from, to time.Time) error {
	if err := cw.Write([]string{"LEDGER"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"seq", "type", "direction", "amount", "note", "occurred_at"}); err != nil {
		return err
	}
	entries, err := s.entryRepo.FindBetween(ctx, from, to)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{
			fmt.Sprintf("%d", e.Seq), string(e.EntryType), string(e.Direction),
			e.Amount.String(), e.Note, e.OccurredAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return nil
}
