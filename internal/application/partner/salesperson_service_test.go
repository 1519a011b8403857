package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/shared"
)

type MockSalespersonRepository struct {
	mock.Mock
}

func (m *MockSalespersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Salesperson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Salesperson), args.Error(1)
}

func (m *MockSalespersonRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Salesperson, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Salesperson), args.Error(1)
}

func (m *MockSalespersonRepository) Save(ctx context.Context, sp *partner.Salesperson) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *MockSalespersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalespersonRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newSalespersonService() (*SalespersonService, *MockSalespersonRepository) {
	repo := new(MockSalespersonRepository)
	return NewSalespersonService(repo, zap.NewNop()), repo
}

func TestSalespersonService_Create(t *testing.T) {
	service, repo := newSalespersonService()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Create(context.Background(), CreateSalespersonRequest{
		Name:        "Alice",
		Email:       "alice@example.com",
		LocationRef: "ALC",
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "ALC", resp.LocationRef)
	assert.True(t, resp.Active)
	repo.AssertExpectations(t)
}

func TestSalespersonService_Create_EmptyNameRejected(t *testing.T) {
	service, repo := newSalespersonService()

	_, err := service.Create(context.Background(), CreateSalespersonRequest{Name: ""})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSalespersonService_UpdateLocationRef(t *testing.T) {
	service, repo := newSalespersonService()

	sp, err := partner.NewSalesperson("Bob", "", "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, sp.ID).Return(sp, nil)
	repo.On("Save", mock.Anything, sp).Return(nil)

	resp, err := service.UpdateLocationRef(context.Background(), sp.ID, "BOB")
	require.NoError(t, err)
	assert.Equal(t, "BOB", resp.LocationRef)
}

func TestSalespersonService_UpdateLocationRef_NotFound(t *testing.T) {
	service, repo := newSalespersonService()
	missingID := uuid.New()

	repo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

	_, err := service.UpdateLocationRef(context.Background(), missingID, "XYZ")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalespersonService_List(t *testing.T) {
	service, repo := newSalespersonService()

	alice, err := partner.NewSalesperson("Alice", "", "ALC")
	require.NoError(t, err)
	bob, err := partner.NewSalesperson("Bob", "", "")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAll", mock.Anything, filter).Return([]partner.Salesperson{*alice, *bob}, nil)
	repo.On("Count", mock.Anything, filter).Return(int64(2), nil)

	result, err := service.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
}
