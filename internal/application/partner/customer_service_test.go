package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter partner.CustomerFilter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter partner.CustomerFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func TestCustomerService_Create(t *testing.T) {
	t.Run("creates a customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		repo.On("ExistsByName", mock.Anything, "宏达五金厂").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

		limit := decimal.RequireFromString("20000.00")
		resp, err := svc.Create(context.Background(), CreateCustomerRequest{
			Name:          "宏达五金厂",
			ContactPerson: "王经理",
			Phone:         "13800138000",
			CreditLimit:   &limit,
		})

		require.NoError(t, err)
		assert.Equal(t, "宏达五金厂", resp.Name)
		assert.True(t, resp.CreditLimit.Equal(limit))
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		repo.On("ExistsByName", mock.Anything, "宏达五金厂").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "宏达五金厂"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects empty name via domain validation", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)
		repo.On("ExistsByName", mock.Anything, "").Return(false, nil)

		_, err := svc.Create(context.Background(), CreateCustomerRequest{Name: ""})
		require.Error(t, err)
	})
}

func TestCustomerService_Update(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	existing, err := partner.NewCustomer("宏达五金厂", "王经理", "13800138000", "", valueobject.ZeroCNY())
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	phone := "13900139000"
	resp, err := svc.Update(context.Background(), existing.ID, UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "13900139000", resp.Phone)
	// untouched fields survive a partial update
	assert.Equal(t, "王经理", resp.ContactPerson)
}

func TestCustomerService_Get_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
