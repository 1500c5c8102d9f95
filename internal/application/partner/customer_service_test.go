package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/partner"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		repo.On("ExistsByPhone", ctx, "9876543210").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, CreateCustomerRequest{
			Name:  "Ramesh Kumar",
			Phone: "9876543210",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ramesh Kumar", resp.Name)
		assert.Equal(t, "ACTIVE", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate phone rejected", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		repo.On("ExistsByPhone", ctx, "9876543210").Return(true, nil)

		_, err := svc.Create(ctx, CreateCustomerRequest{Name: "Ramesh", Phone: "9876543210"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates provided fields only", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		existing, err := partner.NewCustomer("Ramesh Kumar", "9876543210", "12 MG Road")
		require.NoError(t, err)
		repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repo.On("Save", ctx, existing).Return(nil)

		newName := "Suresh Kumar"
		resp, err := svc.Update(ctx, existing.ID, UpdateCustomerRequest{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Suresh Kumar", resp.Name)
		assert.Equal(t, "9876543210", resp.Phone)
		assert.Equal(t, "12 MG Road", resp.Address)
	})

	t.Run("phone change checks uniqueness", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		existing, err := partner.NewCustomer("Ramesh Kumar", "9876543210", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repo.On("ExistsByPhone", ctx, "9111111111").Return(true, nil)

		newPhone := "9111111111"
		_, err = svc.Update(ctx, existing.ID, UpdateCustomerRequest{Phone: &newPhone})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("not found propagates", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, id, UpdateCustomerRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerService_Deactivate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	existing, err := partner.NewCustomer("Ramesh Kumar", "9876543210", "")
	require.NoError(t, err)
	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Save", ctx, existing).Return(nil)

	require.NoError(t, svc.Deactivate(ctx, existing.ID))
	assert.Equal(t, partner.CustomerStatusInactive, existing.Status)
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	c1, _ := partner.NewCustomer("Ramesh", "9876543210", "")
	c2, _ := partner.NewCustomer("Suresh", "9123456780", "")
	filter := shared.DefaultFilter()
	repo.On("FindAll", ctx, filter).Return([]*partner.Customer{c1, c2}, int64(2), nil)

	result, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
}
