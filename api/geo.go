package api

import (
	"net/http"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/service/geo"
	"github.com/gin-gonic/gin"
)

type countryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type countryDetailResponse struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Cities []namedRef `json:"cities"`
}

type CountryHandler struct {
	service geo.GeoUseCase
}

func NewCountryHandler(service geo.GeoUseCase) *CountryHandler {
	return &CountryHandler{service: service}
}

func (h *CountryHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *CountryHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	countries, total, err := h.service.ListCountries(c.Request.Context(), p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]namedRef, 0, len(countries))
	for _, country := range countries {
		results = append(results, namedRef{ID: country.ID, Name: country.Name})
	}
	respondPage(c, p, total, results)
}

func (h *CountryHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	country, err := h.service.GetCountry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := countryDetailResponse{ID: country.ID, Name: country.Name, Cities: make([]namedRef, 0, len(country.Cities))}
	for _, city := range country.Cities {
		resp.Cities = append(resp.Cities, namedRef{ID: city.ID, Name: city.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CountryHandler) create(c *gin.Context) {
	var req countryRequest
	if !bindJSON(c, &req) {
		return
	}
	country := &domain.Country{Name: req.Name}
	if err := h.service.CreateCountry(c.Request.Context(), country); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, namedRef{ID: country.ID, Name: country.Name})
}

func (h *CountryHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req countryRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetCountry(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Name = current.Name
	}
	if !bindJSON(c, &req) {
		return
	}

	country := &domain.Country{ID: id, Name: req.Name}
	if err := h.service.UpdateCountry(c.Request.Context(), country); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, namedRef{ID: country.ID, Name: country.Name})
}

func (h *CountryHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCountry(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type cityRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Country int64  `json:"country" binding:"required"`
}

type cityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country int64  `json:"country"`
}

type cityListResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type cityDetailResponse struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Country namedRef `json:"country"`
}

type CityHandler struct {
	service geo.GeoUseCase
}

func NewCityHandler(service geo.GeoUseCase) *CityHandler {
	return &CityHandler{service: service}
}

func (h *CityHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *CityHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	cities, total, err := h.service.ListCities(c.Request.Context(), p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]cityListResponse, 0, len(cities))
	for _, city := range cities {
		results = append(results, cityListResponse{ID: city.ID, Name: city.Name, Country: countryName(city.Country)})
	}
	respondPage(c, p, total, results)
}

func (h *CityHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	city, err := h.service.GetCity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCityDetail(*city))
}

func (h *CityHandler) create(c *gin.Context) {
	var req cityRequest
	if !bindJSON(c, &req) {
		return
	}
	city := &domain.City{Name: req.Name, CountryID: req.Country}
	if err := h.service.CreateCity(c.Request.Context(), city); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cityResponse{ID: city.ID, Name: city.Name, Country: city.CountryID})
}

func (h *CityHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req cityRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetCity(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req = cityRequest{Name: current.Name, Country: current.CountryID}
	}
	if !bindJSON(c, &req) {
		return
	}

	city := &domain.City{ID: id, Name: req.Name, CountryID: req.Country}
	if err := h.service.UpdateCity(c.Request.Context(), city); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cityResponse{ID: city.ID, Name: city.Name, Country: city.CountryID})
}

func (h *CityHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCity(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type airportRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Country int64  `json:"country" binding:"required"`
	City    int64  `json:"city" binding:"required"`
}

type airportResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country int64  `json:"country"`
	City    int64  `json:"city"`
}

type airportListResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
}

type airportDetailResponse struct {
	ID   int64              `json:"id"`
	Name string             `json:"name"`
	City cityDetailResponse `json:"city"`
}

type AirportHandler struct {
	service geo.GeoUseCase
}

func NewAirportHandler(service geo.GeoUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirportHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	airports, total, err := h.service.ListAirports(c.Request.Context(), p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]airportListResponse, 0, len(airports))
	for _, a := range airports {
		item := airportListResponse{ID: a.ID, Name: a.Name, Country: countryName(a.Country)}
		if a.City != nil {
			item.City = a.City.Name
		}
		results = append(results, item)
	}
	respondPage(c, p, total, results)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirportDetail(*airport))
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if !bindJSON(c, &req) {
		return
	}
	airport := &domain.Airport{Name: req.Name, CountryID: req.Country, CityID: req.City}
	if err := h.service.CreateAirport(c.Request.Context(), airport); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airportResponse{ID: airport.ID, Name: airport.Name, Country: airport.CountryID, City: airport.CityID})
}

func (h *AirportHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req airportRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetAirport(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req = airportRequest{Name: current.Name, Country: current.CountryID, City: current.CityID}
	}
	if !bindJSON(c, &req) {
		return
	}

	airport := &domain.Airport{ID: id, Name: req.Name, CountryID: req.Country, CityID: req.City}
	if err := h.service.UpdateAirport(c.Request.Context(), airport); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airportResponse{ID: airport.ID, Name: airport.Name, Country: airport.CountryID, City: airport.CityID})
}

func (h *AirportHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirport(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func countryName(country *domain.Country) string {
	if country == nil {
		return ""
	}
	return country.Name
}

func newCityDetail(city domain.City) cityDetailResponse {
	resp := cityDetailResponse{ID: city.ID, Name: city.Name, Country: namedRef{ID: city.CountryID}}
	if city.Country != nil {
		resp.Country = namedRef{ID: city.Country.ID, Name: city.Country.Name}
	}
	return resp
}

func newAirportDetail(a domain.Airport) airportDetailResponse {
	resp := airportDetailResponse{ID: a.ID, Name: a.Name}
	if a.City != nil {
		city := *a.City
		if city.Country == nil {
			city.Country = a.Country
		}
		if city.CountryID == 0 {
			city.CountryID = a.CountryID
		}
		resp.City = newCityDetail(city)
	}
	return resp
}
