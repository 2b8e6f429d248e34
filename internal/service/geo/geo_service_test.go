package geo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) ListAll(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) Create(ctx context.Context, country *domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockCountryRepository) Update(ctx context.Context, country *domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockCountryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) List(ctx context.Context, page repository.Page) ([]domain.City, int, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.City), args.Int(1), args.Error(2)
}

func (m *MockCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, city *domain.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockCityRepository) Update(ctx context.Context, city *domain.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context, page repository.Page) ([]domain.Airport, int, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Airport), args.Int(1), args.Error(2)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCache) SetCountries(ctx context.Context, countries []domain.Country) error {
	return m.Called(ctx, countries).Error(0)
}

func (m *MockCache) InvalidateCountries(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fixture struct {
	countries *MockCountryRepository
	cities    *MockCityRepository
	airports  *MockAirportRepository
	cache     *MockCache
	service   *GeoService
}

func newFixture() *fixture {
	f := &fixture{
		countries: new(MockCountryRepository),
		cities:    new(MockCityRepository),
		airports:  new(MockAirportRepository),
		cache:     new(MockCache),
	}
	f.service = NewGeoService(f.countries, f.cities, f.airports, f.cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func TestGeoService_ListCountries_CacheHit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cached := []domain.Country{{ID: 1, Name: "Ukraine"}, {ID: 2, Name: "Poland"}, {ID: 3, Name: "Spain"}}
	f.cache.On("GetCountries", ctx).Return(cached, nil)

	countries, total, err := f.service.ListCountries(ctx, repository.Page{Limit: 2, Offset: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []domain.Country{{ID: 3, Name: "Spain"}}, countries)
	f.countries.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestGeoService_ListCountries_CacheMiss(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	stored := []domain.Country{{ID: 1, Name: "Ukraine"}}
	f.cache.On("GetCountries", ctx).Return(nil, nil)
	f.countries.On("ListAll", ctx).Return(stored, nil)
	f.cache.On("SetCountries", ctx, stored).Return(nil)

	countries, total, err := f.service.ListCountries(ctx, repository.Page{Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, stored, countries)
	f.cache.AssertExpectations(t)
}

func TestGeoService_ListCountries_CacheErrorFallsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.cache.On("GetCountries", ctx).Return(nil, errors.New("redis down"))
	f.countries.On("ListAll", ctx).Return([]domain.Country{}, nil)
	f.cache.On("SetCountries", ctx, []domain.Country{}).Return(nil)

	countries, total, err := f.service.ListCountries(ctx, repository.Page{Limit: 10})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, countries)
}

func TestGeoService_CreateCountryInvalidatesCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	country := &domain.Country{Name: "Ukraine"}
	f.countries.On("Create", ctx, country).Return(nil)
	f.cache.On("InvalidateCountries", ctx).Return(nil)

	require.NoError(t, f.service.CreateCountry(ctx, country))
	f.cache.AssertCalled(t, "InvalidateCountries", ctx)
}

func TestGeoService_CreateCountryBlankName(t *testing.T) {
	f := newFixture()

	err := f.service.CreateCountry(context.Background(), &domain.Country{Name: "  "})

	verr, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "name")
	f.countries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGeoService_DeleteCountryNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.countries.On("Delete", ctx, int64(9)).Return(domain.ErrNotFound)

	err := f.service.DeleteCountry(ctx, 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.cache.AssertNotCalled(t, "InvalidateCountries", mock.Anything)
}

func TestGeoService_CreateAirport(t *testing.T) {
	ctx := context.Background()

	t.Run("city in another country", func(t *testing.T) {
		f := newFixture()
		f.cities.On("GetByID", ctx, int64(10)).Return(&domain.City{ID: 10, CountryID: 2}, nil)

		err := f.service.CreateAirport(ctx, &domain.Airport{Name: "Boryspil", CountryID: 1, CityID: 10})

		verr, ok := domain.IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []string{"The selected city does not belong to the selected country."}, verr.Fields[domain.NonFieldErrors])
		f.airports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown city", func(t *testing.T) {
		f := newFixture()
		f.cities.On("GetByID", ctx, int64(10)).Return(nil, domain.ErrNotFound)

		err := f.service.CreateAirport(ctx, &domain.Airport{Name: "Boryspil", CountryID: 1, CityID: 10})

		verr, ok := domain.IsValidation(err)
		require.True(t, ok)
		assert.Contains(t, verr.Fields, "city")
	})

	t.Run("valid", func(t *testing.T) {
		f := newFixture()
		airport := &domain.Airport{Name: "Boryspil", CountryID: 1, CityID: 10}
		f.cities.On("GetByID", ctx, int64(10)).Return(&domain.City{ID: 10, CountryID: 1}, nil)
		f.airports.On("Create", ctx, airport).Return(nil)

		require.NoError(t, f.service.CreateAirport(ctx, airport))
		f.airports.AssertExpectations(t)
	})
}
