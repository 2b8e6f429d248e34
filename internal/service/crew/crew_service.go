package crew

import (
	"context"
	"strings"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
)

type CrewUseCase interface {
	List(ctx context.Context, page repository.Page) ([]domain.Crew, int, error)
	Get(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, member *domain.Crew) error
	Update(ctx context.Context, member *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type CrewService struct {
	repo repository.CrewRepository
}

func NewCrewService(repo repository.CrewRepository) *CrewService {
	return &CrewService{repo: repo}
}

func (s *CrewService) List(ctx context.Context, page repository.Page) ([]domain.Crew, int, error) {
	return s.repo.List(ctx, page)
}

func (s *CrewService) Get(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CrewService) Create(ctx context.Context, member *domain.Crew) error {
	if err := validate(member); err != nil {
		return err
	}
	return s.repo.Create(ctx, member)
}

func (s *CrewService) Update(ctx context.Context, member *domain.Crew) error {
	if err := validate(member); err != nil {
		return err
	}
	return s.repo.Update(ctx, member)
}

func (s *CrewService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validate(member *domain.Crew) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(member.FirstName) == "" {
		verr.Add("first_name", "This field may not be blank.")
	}
	if strings.TrimSpace(member.LastName) == "" {
		verr.Add("last_name", "This field may not be blank.")
	}
	return verr.ErrOrNil()
}
