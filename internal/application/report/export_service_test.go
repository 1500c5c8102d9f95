package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/finance"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/partner"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/domain/trading"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Customer, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, account *lending.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveWithLock(ctx context.Context, account *lending.Account, expectedVersion int) error {
	args := m.Called(ctx, account, expectedVersion)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByAccountNumber(ctx context.Context, number string) (*lending.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*lending.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByProduct(ctx context.Context, productType lending.ProductType, filter shared.Filter) ([]*lending.Account, int64, error) {
	args := m.Called(ctx, productType, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) FindOutstanding(ctx context.Context, direction *lending.Direction) ([]*lending.Account, error) {
	args := m.Called(ctx, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Account), args.Error(1)
}

func (m *MockAccountRepository) FindOverdue(ctx context.Context, now time.Time) ([]*lending.Account, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Account), args.Error(1)
}

func (m *MockAccountRepository) FindDueWithin(ctx context.Context, now time.Time, within time.Duration) ([]*lending.Account, error) {
	args := m.Called(ctx, now, within)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*lending.Account, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) CountByStatus(ctx context.Context, status lending.AccountStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) NextAccountSequence(ctx context.Context, prefix string, date time.Time) (int, error) {
	args := m.Called(ctx, prefix, date)
	return args.Int(0), args.Error(1)
}

// MockTradeRepository is a mock implementation of TradeRepository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Save(ctx context.Context, trade *trading.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trading.Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trading.Trade), args.Error(1)
}

func (m *MockTradeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trading.Trade, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*trading.Trade), args.Get(1).(int64), args.Error(2)
}

func (m *MockTradeRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*trading.Trade, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trading.Trade), args.Error(1)
}

func (m *MockTradeRepository) Summarize(ctx context.Context, from, to time.Time) ([]trading.TradeSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trading.TradeSummary), args.Error(1)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseRecord), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.ExpenseRecord, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*finance.ExpenseRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*finance.ExpenseRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.ExpenseRecord), args.Error(1)
}

func (m *MockExpenseRepository) SumByCategory(ctx context.Context, from, to time.Time) ([]finance.CategoryTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.CategoryTotal), args.Error(1)
}

// MockEntryRepository is a mock implementation of EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*ledger.Entry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) SumByType(ctx context.Context, entryType ledger.EntryType, from, to time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, entryType, from, to)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockEntryRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func TestExportService_WriteDaily(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	from := day
	to := day.AddDate(0, 0, 1)

	customerRepo := new(MockCustomerRepository)
	accountRepo := new(MockAccountRepository)
	tradeRepo := new(MockTradeRepository)
	expenseRepo := new(MockExpenseRepository)
	entryRepo := new(MockEntryRepository)
	svc := NewExportService(customerRepo, accountRepo, tradeRepo, expenseRepo, entryRepo, zap.NewNop())

	customer, err := partner.NewCustomer("Ramesh Kumar", "9876543210", "12 MG Road")
	require.NoError(t, err)
	customerRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
		Return([]*partner.Customer{customer}, int64(1), nil)

	acc, err := lending.NewAccount("GL-20250101-00001", customer.ID, lending.ProductGoldLoan,
		lending.DirectionGiven, valueobject.NewMoney(100000), decimal.NewFromInt(2),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	accountRepo.On("FindOutstanding", ctx, (*lending.Direction)(nil)).Return([]*lending.Account{acc}, nil)

	trade, err := trading.NewTrade(trading.MetalGold, trading.TradeBuy, decimal.NewFromFloat(12.5),
		valueobject.NewMoney(720000), valueobject.NewMoney(9000000), "Sharma Jewellers", day)
	require.NoError(t, err)
	tradeRepo.On("FindBetween", ctx, from, to).Return([]*trading.Trade{trade}, nil)

	expense, err := finance.NewExpenseRecord("rent", "shop rent", valueobject.NewMoney(1500000), day, "CASH")
	require.NoError(t, err)
	expenseRepo.On("FindBetween", ctx, from, to).Return([]*finance.ExpenseRecord{expense}, nil)

	entry, err := ledger.NewEntry(ledger.EntryExpense, ledger.DirectionOut, valueobject.NewMoney(1500000), day)
	require.NoError(t, err)
	entryRepo.On("FindBetween", ctx, from, to).Return([]*ledger.Entry{entry}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteDaily(ctx, &buf, day))

	out := buf.String()
	for _, section := range []string{"CUSTOMERS", "ACCOUNTS", "TRADES", "EXPENSES", "LEDGER"} {
		assert.True(t, strings.Contains(out, section), "missing section %s", section)
	}
	assert.Contains(t, out, "Ramesh Kumar")
	assert.Contains(t, out, "GL-20250101-00001")
	assert.Contains(t, out, "Sharma Jewellers")
	assert.Contains(t, out, "rent")
	// amounts are rendered as rupees
	assert.Contains(t, out, "15000.00")
}

func TestExportService_WriteDaily_SectionFailureLogged(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	customerRepo := new(MockCustomerRepository)
	accountRepo := new(MockAccountRepository)
	tradeRepo := new(MockTradeRepository)
	expenseRepo := new(MockExpenseRepository)
	entryRepo := new(MockEntryRepository)
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewExportService(customerRepo, accountRepo, tradeRepo, expenseRepo, entryRepo, zap.New(core))

	customerRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
		Return(nil, int64(0), errors.New("connection reset"))

	var buf bytes.Buffer
	err := svc.WriteDaily(ctx, &buf, day)

	require.Error(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "daily export failed", logs.All()[0].Message)
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	accountRepo := new(MockAccountRepository)
	entryRepo := new(MockEntryRepository)
	svc := NewDashboardService(accountRepo, entryRepo, zap.NewNop())

	taken := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	given, err := lending.NewAccount("GL-20250101-00001", uuid.New(), lending.ProductGoldLoan,
		lending.DirectionGiven, valueobject.NewMoney(100000), decimal.NewFromInt(2),
		taken, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	takenUdhar, err := lending.NewAccount("UD-20250101-00001", uuid.New(), lending.ProductUdhar,
		lending.DirectionTaken, valueobject.NewMoney(50000), decimal.Zero, taken, time.Time{})
	require.NoError(t, err)
	accountRepo.On("FindOutstanding", ctx, (*lending.Direction)(nil)).
		Return([]*lending.Account{given, takenUdhar}, nil)

	entryRepo.On("SumByType", ctx, ledger.EntryLoanPayment, dayStart, now).
		Return(valueobject.NewMoney(40000), nil)
	entryRepo.On("SumByType", ctx, ledger.EntryUdharPayment, dayStart, now).
		Return(valueobject.NewMoney(10000), nil)
	entryRepo.On("SumByType", ctx, ledger.EntryUdharClosure, dayStart, now).
		Return(valueobject.Zero(), nil)

	resp, err := svc.Summary(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ActiveAccounts)
	assert.Equal(t, int64(1), resp.OverdueAccounts)
	assert.Equal(t, int64(100000), resp.OutstandingToCollect)
	assert.Equal(t, int64(50000), resp.OutstandingToPay)
	assert.Equal(t, int64(50000), resp.TodayCollections)
	assert.Equal(t, int64(2000), resp.MonthlyInterestDue)
}
