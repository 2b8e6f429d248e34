package api

import (
	"net/http"
	"testing"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGeoRouter(service *MockGeoUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCountryHandler(service).Register(router.Group("/api/countries"))
	NewCityHandler(service).Register(router.Group("/api/cities"))
	NewAirportHandler(service).Register(router.Group("/api/airports"))
	return router
}

func wonderland() (domain.Country, domain.City) {
	country := domain.Country{ID: 1, Name: "Wonderland"}
	return country, domain.City{ID: 2, Name: "Emerald", CountryID: 1, Country: &country}
}

func TestAirportHandler_create(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	service.On("CreateAirport", mock.Anything, mock.MatchedBy(func(a *domain.Airport) bool {
		return a.Name == "Oz Intl" && a.CountryID == 1 && a.CityID == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Airport).ID = 3
	}).Return(nil)

	w := serve(router, http.MethodPost, "/api/airports", `{"name": "Oz Intl", "country": 1, "city": 2}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["id"])
	assert.Equal(t, "Oz Intl", body["name"])
	assert.EqualValues(t, 1, body["country"])
	assert.EqualValues(t, 2, body["city"])
	service.AssertExpectations(t)
}

func TestAirportHandler_create_cityInOtherCountry(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	service.On("CreateAirport", mock.Anything, mock.Anything).
		Return(domain.NewValidationError(domain.NonFieldErrors, "The selected city does not belong to the selected country."))

	w := serve(router, http.MethodPost, "/api/airports", `{"name": "Oz Intl", "country": 5, "city": 2}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w)["fields"].(map[string]any)
	assert.Equal(t, []any{"The selected city does not belong to the selected country."}, fields[domain.NonFieldErrors])
}

func TestAirportHandler_create_missingCity(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	w := serve(router, http.MethodPost, "/api/airports", `{"name": "Oz Intl", "country": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "city")
	service.AssertNotCalled(t, "CreateAirport", mock.Anything, mock.Anything)
}

func TestAirportHandler_list(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	country, city := wonderland()
	airports := []domain.Airport{{ID: 3, Name: "Oz Intl", CountryID: 1, CityID: 2, Country: &country, City: &city}}
	service.On("ListAirports", mock.Anything, repository.Page{Limit: 10}).Return(airports, 1, nil)

	w := serve(router, http.MethodGet, "/api/airports", "")

	require.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["results"].([]any)
	require.Len(t, results, 1)
	item := results[0].(map[string]any)
	assert.Equal(t, "Wonderland", item["country"])
	assert.Equal(t, "Emerald", item["city"])
}

func TestAirportHandler_get_nestsCityAndCountry(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	country, city := wonderland()
	city.Country = nil
	airport := &domain.Airport{ID: 3, Name: "Oz Intl", CountryID: 1, CityID: 2, Country: &country, City: &city}
	service.On("GetAirport", mock.Anything, int64(3)).Return(airport, nil)

	w := serve(router, http.MethodGet, "/api/airports/3", "")

	require.Equal(t, http.StatusOK, w.Code)
	nested := decodeBody(t, w)["city"].(map[string]any)
	assert.EqualValues(t, 2, nested["id"])
	assert.Equal(t, "Emerald", nested["name"])
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Wonderland"}, nested["country"])
}

func TestAirportHandler_patchKeepsUnsentFields(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	service.On("GetAirport", mock.Anything, int64(3)).
		Return(&domain.Airport{ID: 3, Name: "Oz Intl", CountryID: 1, CityID: 2}, nil)
	service.On("UpdateAirport", mock.Anything, &domain.Airport{ID: 3, Name: "Oz International", CountryID: 1, CityID: 2}).
		Return(nil)

	w := serve(router, http.MethodPatch, "/api/airports/3", `{"name": "Oz International"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Oz International", body["name"])
	assert.EqualValues(t, 2, body["city"])
	service.AssertExpectations(t)
}

func TestAirportHandler_putRequiresEveryField(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	w := serve(router, http.MethodPut, "/api/airports/3", `{"name": "Oz International"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "GetAirport", mock.Anything, mock.Anything)
	service.AssertNotCalled(t, "UpdateAirport", mock.Anything, mock.Anything)
}

func TestCityHandler_get(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	_, city := wonderland()
	service.On("GetCity", mock.Anything, int64(2)).Return(&city, nil)

	w := serve(router, http.MethodGet, "/api/cities/2", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Emerald", body["name"])
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Wonderland"}, body["country"])
}

func TestCityHandler_list(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	_, city := wonderland()
	service.On("ListCities", mock.Anything, repository.Page{Limit: 10}).Return([]domain.City{city}, 1, nil)

	w := serve(router, http.MethodGet, "/api/cities", "")

	require.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Wonderland", results[0].(map[string]any)["country"])
}

func TestCityHandler_patchKeepsCountry(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	_, city := wonderland()
	service.On("GetCity", mock.Anything, int64(2)).Return(&city, nil)
	service.On("UpdateCity", mock.Anything, &domain.City{ID: 2, Name: "Emerald City", CountryID: 1}).Return(nil)

	w := serve(router, http.MethodPatch, "/api/cities/2", `{"name": "Emerald City"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["country"])
	service.AssertExpectations(t)
}

func TestCityHandler_delete_notFound(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	service.On("DeleteCity", mock.Anything, int64(9)).Return(domain.ErrNotFound)

	w := serve(router, http.MethodDelete, "/api/cities/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCountryHandler_get_listsCities(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	country, city := wonderland()
	country.Cities = []domain.City{city}
	service.On("GetCountry", mock.Anything, int64(1)).Return(&country, nil)

	w := serve(router, http.MethodGet, "/api/countries/1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{map[string]any{"id": float64(2), "name": "Emerald"}}, decodeBody(t, w)["cities"])
}

func TestCountryHandler_delete(t *testing.T) {
	service := &MockGeoUseCase{}
	router := newGeoRouter(service)

	service.On("DeleteCountry", mock.Anything, int64(1)).Return(nil)

	w := serve(router, http.MethodDelete, "/api/countries/1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	service.AssertExpectations(t)
}
