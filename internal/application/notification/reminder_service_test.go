package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/notification"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReminderRepository is a mock implementation of ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Save(ctx context.Context, reminder *notification.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindPending(ctx context.Context) ([]*notification.Reminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ExistsForAccountOnDate(ctx context.Context, accountID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, accountID, date)
	return args.Bool(0), args.Error(1)
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

func dueAccount(t *testing.T, due time.Time) *lending.Account {
	t.Helper()
	acc, err := lending.NewAccount("GL-20250101-00001", uuid.New(), lending.ProductGoldLoan,
		lending.DirectionGiven, valueobject.NewMoney(100000), decimal.NewFromInt(2),
		due.AddDate(0, -6, 0), due)
	require.NoError(t, err)
	return acc
}

func TestReminderService_GenerateDaily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("creates reminders for overdue and due-soon accounts", func(t *testing.T) {
		reminderRepo := new(MockReminderRepository)
		accountRepo := new(MockAccountRepository)
		svc := NewReminderService(reminderRepo, accountRepo, zap.NewNop())

		overdueAcc := dueAccount(t, now.AddDate(0, 0, -5))
		soonAcc := dueAccount(t, now.AddDate(0, 0, 2))
		accountRepo.On("FindOverdue", ctx, now).Return([]*lending.Account{overdueAcc}, nil)
		accountRepo.On("FindDueWithin", ctx, now, DueSoonWindow).Return([]*lending.Account{soonAcc}, nil)
		reminderRepo.On("ExistsForAccountOnDate", ctx, overdueAcc.ID, now).Return(false, nil)
		reminderRepo.On("ExistsForAccountOnDate", ctx, soonAcc.ID, now).Return(false, nil)
		reminderRepo.On("Save", ctx, mock.AnythingOfType("*notification.Reminder")).Return(nil).Twice()

		created, err := svc.GenerateDaily(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 2, created)
		reminderRepo.AssertExpectations(t)
	})

	t.Run("deduplicates per account per day", func(t *testing.T) {
		reminderRepo := new(MockReminderRepository)
		accountRepo := new(MockAccountRepository)
		svc := NewReminderService(reminderRepo, accountRepo, zap.NewNop())

		acc := dueAccount(t, now.AddDate(0, 0, -1))
		accountRepo.On("FindOverdue", ctx, now).Return([]*lending.Account{acc}, nil)
		accountRepo.On("FindDueWithin", ctx, now, DueSoonWindow).Return([]*lending.Account{acc}, nil)
		reminderRepo.On("ExistsForAccountOnDate", ctx, acc.ID, now).Return(true, nil).Once()

		created, err := svc.GenerateDaily(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 0, created)
		reminderRepo.AssertNotCalled(t, "Save")
	})
}

func TestReminderService_Dismiss(t *testing.T) {
	ctx := context.Background()
	reminderRepo := new(MockReminderRepository)
	accountRepo := new(MockAccountRepository)
	svc := NewReminderService(reminderRepo, accountRepo, zap.NewNop())

	reminder, err := notification.NewReminder(uuid.New(), uuid.New(), "due soon", time.Now(), time.Now())
	require.NoError(t, err)
	reminderRepo.On("FindByID", ctx, reminder.ID).Return(reminder, nil)
	reminderRepo.On("Save", ctx, reminder).Return(nil)

	require.NoError(t, svc.Dismiss(ctx, reminder.ID))
	assert.Equal(t, notification.ReminderStatusDismissed, reminder.Status)
}
