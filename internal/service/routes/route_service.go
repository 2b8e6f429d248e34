package routes

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
)

type RouteUseCase interface {
	List(ctx context.Context, page repository.Page) ([]domain.Route, int, error)
	Get(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type RouteService struct {
	repo repository.RouteRepository
}

func NewRouteService(repo repository.RouteRepository) *RouteService {
	return &RouteService{repo: repo}
}

func (s *RouteService) List(ctx context.Context, page repository.Page) ([]domain.Route, int, error) {
	return s.repo.List(ctx, page)
}

func (s *RouteService) Get(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RouteService) Create(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, route)
}

func (s *RouteService) Update(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, route)
}

func (s *RouteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
