package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/partner"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// IdempotencyStore guards payment requests against replays. Reserve
// returns false when the key was already used; Release frees a
// reservation so a failed attempt does not burn the key.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

var accountNumberPrefix = map[lending.ProductType]string{
	lending.ProductGoldLoan:   "GL",
	lending.ProductSilverLoan: "SL",
	lending.ProductCashLoan:   "CL",
	lending.ProductUdhar:      "UD",
}

// LoanService orchestrates lending account operations: opening accounts,
// applying payments under the single-writer discipline, and the derived
// views (overdue, interest preview).
type LoanService struct {
	accountRepo  lending.AccountRepository
	customerRepo partner.CustomerRepository
	entryRepo    ledger.EntryRepository
	idempotency  IdempotencyStore
	logger       *zap.Logger
}

// NewLoanService creates a new LoanService
func NewLoanService(
	accountRepo lending.AccountRepository,
	customerRepo partner.CustomerRepository,
	entryRepo ledger.EntryRepository,
	idempotency IdempotencyStore,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		entryRepo:    entryRepo,
		idempotency:  idempotency,
		logger:       logger,
	}
}

// OpenAccount disburses a new loan or records a new udhar. Appends the
// disbursal ledger entry and bumps the customer's running totals.
func (s *LoanService) OpenAccount(ctx context.Context, req OpenAccountRequest) (*AccountResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot open an account for an inactive customer")
	}

	productType := lending.ProductType(req.ProductType)
	direction := lending.Direction(req.Direction)
	if direction == "" {
		direction = lending.DirectionGiven
	}

	prefix, ok := accountNumberPrefix[productType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown product type: %s", req.ProductType))
	}
	seq, err := s.accountRepo.NextAccountSequence(ctx, prefix, req.TakenDate)
	if err != nil {
		return nil, err
	}
	accountNumber := fmt.Sprintf("%s-%s-%05d", prefix, req.TakenDate.Format("20060102"), seq)

	account, err := lending.NewAccount(
		accountNumber,
		req.CustomerID,
		productType,
		direction,
		valueobject.NewMoney(req.Principal),
		req.MonthlyRatePercent,
		req.TakenDate,
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}
	account.Notes = req.Notes

	if len(req.PledgeItems) > 0 {
		items := make([]lending.PledgeItem, 0, len(req.PledgeItems))
		for _, it := range req.PledgeItems {
			items = append(items, lending.PledgeItem{
				Name:           it.Name,
				WeightGrams:    it.WeightGrams,
				PurityKarat:    it.PurityKarat,
				EstimatedValue: valueobject.NewMoney(it.EstimatedValue),
			})
		}
		if err := account.AttachPledgeItems(items); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	entryType, entryDirection := disbursalEntry(productType, direction)
	entry, err := ledger.NewEntry(entryType, entryDirection, account.Principal, req.TakenDate)
	if err != nil {
		return nil, err
	}
	entry.ForCustomer(account.CustomerID).ForAccount(account.ID).WithNote(account.AccountNumber)
	if err := s.entryRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if direction == lending.DirectionGiven {
		customer.RecordGiven(account.Principal)
	} else {
		customer.RecordTaken(account.Principal)
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("account opened",
		zap.String("account_number", account.AccountNumber),
		zap.String("product_type", string(productType)),
		zap.Int64("principal", account.Principal.Paise()))

	response := ToAccountResponse(account, time.Now())
	return &response, nil
}

// disbursalEntry maps the product and direction onto the ledger entry
// written when the account opens. Lending money out is cash OUT; taking
// udhar is cash IN.
func disbursalEntry(productType lending.ProductType, direction lending.Direction) (ledger.EntryType, ledger.Direction) {
	if productType == lending.ProductUdhar {
		if direction == lending.DirectionTaken {
			return ledger.EntryUdharTaken, ledger.DirectionIn
		}
		return ledger.EntryUdharGiven, ledger.DirectionOut
	}
	return ledger.EntryLoanDisbursed, ledger.DirectionOut
}

// ApplyPayment applies one payment to an account under optimistic
// concurrency. On a version conflict it returns CONCURRENCY_CONFLICT and
// the caller retries the whole operation with fresh state; conflicting
// payments are never merged.
func (s *LoanService) ApplyPayment(ctx context.Context, accountID uuid.UUID, req ApplyPaymentRequest) (*AccountResponse, error) {
	applied := false
	if req.IdempotencyKey != "" {
		fresh, err := s.idempotency.Reserve(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("CONCURRENCY_CONFLICT", "Payment with this idempotency key was already submitted")
		}
		// A failed attempt must not burn the key: the caller retries the
		// whole operation with fresh state and the same key.
		defer func() {
			if applied {
				return
			}
			if err := s.idempotency.Release(ctx, req.IdempotencyKey); err != nil {
				s.logger.Warn("failed to release idempotency key",
					zap.String("key", req.IdempotencyKey), zap.Error(err))
			}
		}()
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	expectedVersion := account.GetVersion()

	now := time.Now()
	record, err := account.ApplyPayment(
		valueobject.NewMoney(req.Principal),
		valueobject.NewMoney(req.Interest),
		lending.PaymentMethod(req.Method),
		req.Reference,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveWithLock(ctx, account, expectedVersion); err != nil {
		return nil, err
	}
	// The payment is durable from here; keep the key reserved even if the
	// ledger append below fails, so a replay cannot double-apply.
	applied = true

	received := valueobject.NewMoney(req.Principal).Add(valueobject.NewMoney(req.Interest))
	entryType := paymentEntry(account)
	entryDirection := ledger.DirectionIn
	if account.Direction == lending.DirectionTaken {
		entryDirection = ledger.DirectionOut
	}
	entry, err := ledger.NewEntry(entryType, entryDirection, received, now)
	if err != nil {
		return nil, err
	}
	entry.ForCustomer(account.CustomerID).ForAccount(account.ID).WithNote(account.AccountNumber)
	if err := s.entryRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("payment applied",
		zap.String("account_number", account.AccountNumber),
		zap.String("payment_id", record.ID.String()),
		zap.Int64("principal", req.Principal),
		zap.Int64("interest", req.Interest),
		zap.String("status", string(account.Status)))

	response := ToAccountResponse(account, now)
	return &response, nil
}

// paymentEntry picks the ledger entry type for a payment. A payment that
// closes an udhar writes the closure type so the settlement is visible in
// the ledger.
func paymentEntry(account *lending.Account) ledger.EntryType {
	if account.ProductType == lending.ProductUdhar {
		if account.Status == lending.AccountStatusClosed {
			return ledger.EntryUdharClosure
		}
		return ledger.EntryUdharPayment
	}
	return ledger.EntryLoanPayment
}

// MarkDefaulted writes off an account
func (s *LoanService) MarkDefaulted(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	expectedVersion := account.GetVersion()
	if err := account.MarkDefaulted(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.SaveWithLock(ctx, account, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.Warn("account defaulted",
		zap.String("account_number", account.AccountNumber),
		zap.Int64("outstanding", account.OutstandingPrincipal.Paise()))

	response := ToAccountResponse(account, time.Now())
	return &response, nil
}

// GetByID retrieves an account with its effective status as of now
func (s *LoanService) GetByID(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account, time.Now())
	return &response, nil
}

// ListByCustomer returns all of a customer's accounts
func (s *LoanService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, ToAccountResponse(a, now))
	}
	return items, nil
}

// List returns accounts matching the filter, paginated
func (s *LoanService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[AccountResponse], error) {
	accounts, total, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, ToAccountResponse(a, now))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListOverdue returns open accounts past their due date as of now
func (s *LoanService) ListOverdue(ctx context.Context) ([]AccountResponse, error) {
	now := time.Now()
	accounts, err := s.accountRepo.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	items := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, ToAccountResponse(a, now))
	}
	return items, nil
}

// ComputeMonthlyInterest previews one month of interest on an amount
func (s *LoanService) ComputeMonthlyInterest(ctx context.Context, req InterestPreviewRequest) (*InterestPreviewResponse, error) {
	interest, err := lending.MonthlyInterest(valueobject.NewMoney(req.Outstanding), req.MonthlyRatePercent)
	if err != nil {
		return nil, err
	}
	return &InterestPreviewResponse{
		Outstanding:        req.Outstanding,
		MonthlyRatePercent: req.MonthlyRatePercent,
		MonthlyInterest:    interest.Paise(),
	}, nil
}
