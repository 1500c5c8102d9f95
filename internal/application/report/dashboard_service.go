package report

import (
	"context"
	"time"

	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// DashboardResponse backs the summary cards on the dashboard home.
// Amounts are paise.
type DashboardResponse struct {
	ActiveAccounts       int64 `json:"active_accounts"`
	OverdueAccounts      int64 `json:"overdue_accounts"`
	OutstandingToCollect int64 `json:"outstanding_to_collect"`
	OutstandingToPay     int64 `json:"outstanding_to_pay"`
	TodayCollections     int64 `json:"today_collections"`
	MonthlyInterestDue   int64 `json:"monthly_interest_due"`
}

// DashboardService derives the dashboard summary on every read; nothing
// here is cached or stored.
type DashboardService struct {
	accountRepo lending.AccountRepository
	entryRepo   ledger.EntryRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(accountRepo lending.AccountRepository, entryRepo ledger.EntryRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{accountRepo: accountRepo, entryRepo: entryRepo, logger: logger}
}

// Summary computes the dashboard cards as of now
func (s *DashboardService) Summary(ctx context.Context, now time.Time) (*DashboardResponse, error) {
	accounts, err := s.accountRepo.FindOutstanding(ctx, nil)
	if err != nil {
		return nil, err
	}

	var active, overdue int64
	toCollect := valueobject.Zero()
	toPay := valueobject.Zero()
	interestDue := valueobject.Zero()
	for _, a := range accounts {
		if a.Status == lending.AccountStatusDefaulted {
			continue
		}
		active++
		if a.IsOverdue(now) {
			overdue++
		}
		if a.Direction == lending.DirectionGiven {
			toCollect = toCollect.Add(a.OutstandingPrincipal)
			monthly, err := lending.MonthlyInterest(a.OutstandingPrincipal, a.MonthlyRatePercent)
			if err == nil {
				interestDue = interestDue.Add(monthly)
			}
		} else {
			toPay = toPay.Add(a.OutstandingPrincipal)
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	collections := valueobject.Zero()
	for _, entryType := range []ledger.EntryType{ledger.EntryLoanPayment, ledger.EntryUdharPayment, ledger.EntryUdharClosure} {
		sum, err := s.entryRepo.SumByType(ctx, entryType, dayStart, now)
		if err != nil {
			s.logger.Warn("skipping entry type in today's collections",
				zap.String("entry_type", string(entryType)), zap.Error(err))
			continue
		}
		collections = collections.Add(sum)
	}

	return &DashboardResponse{
		ActiveAccounts:       active,
		OverdueAccounts:      overdue,
		OutstandingToCollect: toCollect.Paise(),
		OutstandingToPay:     toPay.Paise(),
		TodayCollections:     collections.Paise(),
		MonthlyInterestDue:   interestDue.Paise(),
	}, nil
}
