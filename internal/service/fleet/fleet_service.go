package fleet

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/media"
	"github.com/Domenick1991/airportservice/internal/repository"
)

const imageField = "airplane_image"

type FleetUseCase interface {
	ListAirplaneTypes(ctx context.Context, page repository.Page) ([]domain.AirplaneType, int, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	DeleteAirplaneType(ctx context.Context, id int64) error

	ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error
	DeleteAirplane(ctx context.Context, id int64) error
	UploadAirplaneImage(ctx context.Context, id int64, file *multipart.FileHeader) (*domain.Airplane, error)
}

type Cache interface {
	GetAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	SetAirplaneTypes(ctx context.Context, types []domain.AirplaneType) error
	InvalidateAirplaneTypes(ctx context.Context) error
}

type ImageStore interface {
	SaveImage(file *multipart.FileHeader, dir, name, field string) (string, error)
	Remove(rel string) error
}

type FleetService struct {
	types     repository.AirplaneTypeRepository
	airplanes repository.AirplaneRepository
	cache     Cache
	images    ImageStore
	logger    *slog.Logger
}

func NewFleetService(
	types repository.AirplaneTypeRepository,
	airplanes repository.AirplaneRepository,
	cache Cache,
	images ImageStore,
	logger *slog.Logger,
) *FleetService {
	return &FleetService{
		types:     types,
		airplanes: airplanes,
		cache:     cache,
		images:    images,
		logger:    logger,
	}
}

func (s *FleetService) ListAirplaneTypes(ctx context.Context, page repository.Page) ([]domain.AirplaneType, int, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAirplaneTypes(ctx)
		if err != nil {
			s.logger.Warn("read airplane types cache", "error", err)
		} else if cached != nil {
			return repository.Window(cached, page), len(cached), nil
		}
	}

	types, err := s.types.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetAirplaneTypes(ctx, types); err != nil {
			s.logger.Warn("write airplane types cache", "error", err)
		}
	}
	return repository.Window(types, page), len(types), nil
}

func (s *FleetService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *FleetService) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if strings.TrimSpace(t.Name) == "" {
		return domain.NewValidationError("name", "This field may not be blank.")
	}
	if err := s.types.Create(ctx, t); err != nil {
		return err
	}
	s.invalidateTypes(ctx)
	return nil
}

func (s *FleetService) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if strings.TrimSpace(t.Name) == "" {
		return domain.NewValidationError("name", "This field may not be blank.")
	}
	if err := s.types.Update(ctx, t); err != nil {
		return err
	}
	s.invalidateTypes(ctx)
	return nil
}

func (s *FleetService) DeleteAirplaneType(ctx context.Context, id int64) error {
	if err := s.types.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTypes(ctx)
	return nil
}

func (s *FleetService) ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int, error) {
	return s.airplanes.List(ctx, filter, page)
}

func (s *FleetService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *FleetService) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	return s.airplanes.Create(ctx, airplane)
}

func (s *FleetService) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	return s.airplanes.Update(ctx, airplane)
}

func (s *FleetService) DeleteAirplane(ctx context.Context, id int64) error {
	airplane, err := s.airplanes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.airplanes.Delete(ctx, id); err != nil {
		return err
	}
	s.removeImage(airplane.Image)
	return nil
}

// UploadAirplaneImage stores the file and replaces the airplane's previous image.
func (s *FleetService) UploadAirplaneImage(ctx context.Context, id int64, file *multipart.FileHeader) (*domain.Airplane, error) {
	if file == nil {
		return nil, domain.NewValidationError(imageField, "No file was submitted.")
	}

	airplane, err := s.airplanes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.images.SaveImage(file, media.AirplanesDir, airplane.Name, imageField)
	if err != nil {
		return nil, err
	}

	if err := s.airplanes.SetImage(ctx, id, rel); err != nil {
		s.removeImage(rel)
		return nil, err
	}

	s.removeImage(airplane.Image)
	airplane.Image = rel
	return airplane, nil
}

func (s *FleetService) removeImage(rel string) {
	if rel == "" {
		return
	}
	if err := s.images.Remove(rel); err != nil {
		s.logger.Warn("remove airplane image", "path", rel, "error", err)
	}
}

func (s *FleetService) invalidateTypes(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAirplaneTypes(ctx); err != nil {
		s.logger.Warn("invalidate airplane types cache", "error", err)
	}
}
