package flights

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter repository.FlightFilter, page repository.Page) ([]domain.Flight, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

// FlightService reads tickets_available straight from the database on every call.
// The value changes with each order, so it is never cached.
type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter, page repository.Page) ([]domain.Flight, int, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	flight.CrewIDs = uniqueIDs(flight.CrewIDs)
	return s.repo.Create(ctx, flight)
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	flight.CrewIDs = uniqueIDs(flight.CrewIDs)
	return s.repo.Update(ctx, flight)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

var _ FlightUseCase = (*FlightService)(nil)
