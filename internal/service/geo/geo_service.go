package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
)

type GeoUseCase interface {
	ListCountries(ctx context.Context, page repository.Page) ([]domain.Country, int, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, country *domain.Country) error
	UpdateCountry(ctx context.Context, country *domain.Country) error
	DeleteCountry(ctx context.Context, id int64) error

	ListCities(ctx context.Context, page repository.Page) ([]domain.City, int, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	CreateCity(ctx context.Context, city *domain.City) error
	UpdateCity(ctx context.Context, city *domain.City) error
	DeleteCity(ctx context.Context, id int64) error

	ListAirports(ctx context.Context, page repository.Page) ([]domain.Airport, int, error)
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	UpdateAirport(ctx context.Context, airport *domain.Airport) error
	DeleteAirport(ctx context.Context, id int64) error
}

type Cache interface {
	GetCountries(ctx context.Context) ([]domain.Country, error)
	SetCountries(ctx context.Context, countries []domain.Country) error
	InvalidateCountries(ctx context.Context) error
}

type GeoService struct {
	countries repository.CountryRepository
	cities    repository.CityRepository
	airports  repository.AirportRepository
	cache     Cache
	logger    *slog.Logger
}

func NewGeoService(
	countries repository.CountryRepository,
	cities repository.CityRepository,
	airports repository.AirportRepository,
	cache Cache,
	logger *slog.Logger,
) *GeoService {
	return &GeoService{
		countries: countries,
		cities:    cities,
		airports:  airports,
		cache:     cache,
		logger:    logger,
	}
}

func (s *GeoService) ListCountries(ctx context.Context, page repository.Page) ([]domain.Country, int, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCountries(ctx)
		if err != nil {
			s.logger.Warn("read countries cache", "error", err)
		} else if cached != nil {
			return repository.Window(cached, page), len(cached), nil
		}
	}

	countries, err := s.countries.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetCountries(ctx, countries); err != nil {
			s.logger.Warn("write countries cache", "error", err)
		}
	}
	return repository.Window(countries, page), len(countries), nil
}

func (s *GeoService) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	return s.countries.GetByID(ctx, id)
}

func (s *GeoService) CreateCountry(ctx context.Context, country *domain.Country) error {
	if err := validateName(country.Name); err != nil {
		return err
	}
	if err := s.countries.Create(ctx, country); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) UpdateCountry(ctx context.Context, country *domain.Country) error {
	if err := validateName(country.Name); err != nil {
		return err
	}
	if err := s.countries.Update(ctx, country); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.countries.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) ListCities(ctx context.Context, page repository.Page) ([]domain.City, int, error) {
	return s.cities.List(ctx, page)
}

func (s *GeoService) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	return s.cities.GetByID(ctx, id)
}

func (s *GeoService) CreateCity(ctx context.Context, city *domain.City) error {
	if err := validateName(city.Name); err != nil {
		return err
	}
	return s.cities.Create(ctx, city)
}

func (s *GeoService) UpdateCity(ctx context.Context, city *domain.City) error {
	if err := validateName(city.Name); err != nil {
		return err
	}
	return s.cities.Update(ctx, city)
}

func (s *GeoService) DeleteCity(ctx context.Context, id int64) error {
	return s.cities.Delete(ctx, id)
}

func (s *GeoService) ListAirports(ctx context.Context, page repository.Page) ([]domain.Airport, int, error) {
	return s.airports.List(ctx, page)
}

func (s *GeoService) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

func (s *GeoService) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := s.validateAirport(ctx, airport); err != nil {
		return err
	}
	return s.airports.Create(ctx, airport)
}

func (s *GeoService) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := s.validateAirport(ctx, airport); err != nil {
		return err
	}
	return s.airports.Update(ctx, airport)
}

func (s *GeoService) DeleteAirport(ctx context.Context, id int64) error {
	return s.airports.Delete(ctx, id)
}

// validateAirport checks the name and that the city lies in the airport's country.
// The composite foreign key still guards concurrent city moves.
func (s *GeoService) validateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := validateName(airport.Name); err != nil {
		return err
	}

	city, err := s.cities.GetByID(ctx, airport.CityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("city", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", airport.CityID))
		}
		return err
	}
	return airport.CheckCity(*city)
}

func (s *GeoService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCountries(ctx); err != nil {
		s.logger.Warn("invalidate countries cache", "error", err)
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "This field may not be blank.")
	}
	return nil
}
