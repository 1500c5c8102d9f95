package ledger

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/partner"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// OutstandingDirection selects which side of the book a pending list shows
type OutstandingDirection string

const (
	OutstandingCollect OutstandingDirection = "collect"
	OutstandingPay     OutstandingDirection = "pay"
)

// BalanceService derives balance positions from lending accounts and
// serves the paginated transaction history. Balances are never stored;
// every read recomputes from the accounts.
type BalanceService struct {
	accountRepo     lending.AccountRepository
	customerRepo    partner.CustomerRepository
	entryRepo       ledger.EntryRepository
	historyPageSize int
	logger          *zap.Logger
}

// NewBalanceService creates a new BalanceService. historyPageSize is the
// default page size for transaction history.
func NewBalanceService(
	accountRepo lending.AccountRepository,
	customerRepo partner.CustomerRepository,
	entryRepo ledger.EntryRepository,
	historyPageSize int,
	logger *zap.Logger,
) *BalanceService {
	if historyPageSize <= 0 {
		historyPageSize = 10
	}
	return &BalanceService{
		accountRepo:     accountRepo,
		customerRepo:    customerRepo,
		entryRepo:       entryRepo,
		historyPageSize: historyPageSize,
		logger:          logger,
	}
}

// summarize folds a set of accounts into collect and pay totals.
// Defaulted accounts are written off and do not count as outstanding.
func summarize(accounts []*lending.Account) ledger.BalanceSummary {
	toCollect := valueobject.Zero()
	toPay := valueobject.Zero()
	for _, a := range accounts {
		if a.Status == lending.AccountStatusDefaulted {
			continue
		}
		if !a.OutstandingPrincipal.IsPositive() {
			continue
		}
		if a.Direction == lending.DirectionGiven {
			toCollect = toCollect.Add(a.OutstandingPrincipal)
		} else {
			toPay = toPay.Add(a.OutstandingPrincipal)
		}
	}
	return ledger.NewBalanceSummary(toCollect, toPay)
}

// GetCustomerBalanceSummary computes one customer's position
func (s *BalanceService) GetCustomerBalanceSummary(ctx context.Context, customerID uuid.UUID) (*BalanceSummaryResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToBalanceSummaryResponse(summarize(accounts))
	return &resp, nil
}

// ListOutstanding runs the cross-customer aggregation for one side of the
// book. Customers inside the one-paise tolerance are suppressed; a
// dangling customer reference is logged and skipped rather than failing
// the whole run.
func (s *BalanceService) ListOutstanding(ctx context.Context, direction OutstandingDirection) (*OutstandingListResponse, error) {
	if direction != OutstandingCollect && direction != OutstandingPay {
		return nil, shared.NewDomainError("INVALID_INPUT", "Direction must be collect or pay")
	}

	accounts, err := s.accountRepo.FindOutstanding(ctx, nil)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[uuid.UUID][]*lending.Account)
	for _, a := range accounts {
		byCustomer[a.CustomerID] = append(byCustomer[a.CustomerID], a)
	}

	total := valueobject.Zero()
	customers := make([]CustomerBalanceResponse, 0, len(byCustomer))
	for customerID, accs := range byCustomer {
		summary := summarize(accs)
		if summary.IsSettled() {
			continue
		}
		if direction == OutstandingCollect && !summary.Net.IsPositive() {
			continue
		}
		if direction == OutstandingPay && !summary.Net.IsNegative() {
			continue
		}

		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			s.logger.Warn("skipping dangling customer reference in outstanding aggregation",
				zap.String("customer_id", customerID.String()),
				zap.Error(err))
			continue
		}

		customers = append(customers, CustomerBalanceResponse{
			CustomerID:   customerID,
			CustomerName: customer.Name,
			Phone:        customer.Phone,
			Summary:      ToBalanceSummaryResponse(summary),
		})
		total = total.Add(summary.Net.Abs())
	}

	sort.Slice(customers, func(i, j int) bool {
		ni := customers[i].Summary.Net
		nj := customers[j].Summary.Net
		if ni < 0 {
			ni = -ni
		}
		if nj < 0 {
			nj = -nj
		}
		if ni != nj {
			return ni > nj
		}
		return customers[i].CustomerName < customers[j].CustomerName
	})

	return &OutstandingListResponse{
		Direction: string(direction),
		Total:     total.Paise(),
		Customers: customers,
	}, nil
}

// GetTransactionHistory returns a customer's ledger entries, newest
// first with the insertion sequence as tie-break, so paging is
// deterministic and restartable.
func (s *BalanceService) GetTransactionHistory(ctx context.Context, customerID uuid.UUID, page, pageSize int) (*shared.Paginated[EntryResponse], error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.historyPageSize
	}
	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "occurred_at",
		OrderDir: "desc",
	}
	entries, totalCount, err := s.entryRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToEntryResponse(e))
	}
	result := shared.NewPaginated(items, totalCount, page, pageSize)
	return &result, nil
}
