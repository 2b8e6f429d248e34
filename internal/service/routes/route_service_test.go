package routes

import (
	"context"
	"testing"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context, page repository.Page) ([]domain.Route, int, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Route), args.Int(1), args.Error(2)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestRouteService_CreateSameEndpoints(t *testing.T) {
	repo := new(MockRouteRepository)
	service := NewRouteService(repo)

	err := service.Create(context.Background(), &domain.Route{SourceID: 1, DestinationID: 1})

	verr, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The source and destination airports must be different."}, verr.Fields[domain.NonFieldErrors])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRouteService_Create(t *testing.T) {
	repo := new(MockRouteRepository)
	service := NewRouteService(repo)
	ctx := context.Background()
	distance := 560
	route := &domain.Route{SourceID: 1, DestinationID: 2, Distance: &distance}
	repo.On("Create", ctx, route).Return(nil)

	require.NoError(t, service.Create(ctx, route))
	repo.AssertExpectations(t)
}

func TestRouteService_UpdatePropagatesNotFound(t *testing.T) {
	repo := new(MockRouteRepository)
	service := NewRouteService(repo)
	ctx := context.Background()
	route := &domain.Route{ID: 4, SourceID: 1, DestinationID: 2}
	repo.On("Update", ctx, route).Return(domain.ErrNotFound)

	assert.ErrorIs(t, service.Update(ctx, route), domain.ErrNotFound)
}
