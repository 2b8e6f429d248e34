package api

import (
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFleetUseCase struct {
	mock.Mock
}

func (m *MockFleetUseCase) ListAirplaneTypes(ctx context.Context, page repository.Page) ([]domain.AirplaneType, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AirplaneType), args.Int(1), args.Error(2)
}

func (m *MockFleetUseCase) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockFleetUseCase) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockFleetUseCase) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockFleetUseCase) DeleteAirplaneType(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFleetUseCase) ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Airplane), args.Int(1), args.Error(2)
}

func (m *MockFleetUseCase) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockFleetUseCase) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return m.Called(ctx, airplane).Error(0)
}

func (m *MockFleetUseCase) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return m.Called(ctx, airplane).Error(0)
}

func (m *MockFleetUseCase) DeleteAirplane(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFleetUseCase) UploadAirplaneImage(ctx context.Context, id int64, file *multipart.FileHeader) (*domain.Airplane, error) {
	args := m.Called(ctx, id, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func newAirplaneRouter(service *MockFleetUseCase, identity *domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if identity != nil {
			auth.SetIdentity(c, *identity)
		}
		c.Next()
	})
	NewAirplaneHandler(service, stubMedia{}).Register(router.Group("/api/airplanes"))
	return router
}

func TestAirplaneHandler_list(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneRouter(service, &domain.Identity{UserID: 1})

	gte := 50
	filter := repository.AirplaneFilter{TypeIDs: []int64{1, 2}, CapacityGTE: &gte}
	service.On("ListAirplanes", mock.Anything, filter, repository.Page{Limit: 10, Offset: 0}).Return([]domain.Airplane{
		{ID: 1, Name: "Boeing", Rows: 30, SeatsInRow: 6, AirplaneType: &domain.AirplaneType{ID: 1, Name: "Passenger"}},
		{ID: 2, Name: "Antonov", Rows: 0, SeatsInRow: 0},
	}, 2, nil)

	w := serve(router, http.MethodGet, "/api/airplanes?airplane_types=1,2&capacity_gte=50", "")

	require.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["results"].([]any)
	require.Len(t, results, 2)
	assert.EqualValues(t, 180, results[0].(map[string]any)["capacity"])
	assert.Equal(t, "Passenger", results[0].(map[string]any)["airplane_type"])
	assert.Equal(t, domain.CargoAirplane, results[1].(map[string]any)["capacity"])
	assert.Nil(t, results[1].(map[string]any)["airplane_type"])
	service.AssertExpectations(t)
}

func TestAirplaneHandler_list_invalidCapacity(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneRouter(service, &domain.Identity{UserID: 1})

	w := serve(router, http.MethodGet, "/api/airplanes?capacity_lte=many", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "capacity_lte")
}

func TestAirplaneHandler_create_requiresGrid(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneRouter(service, &domain.Identity{UserID: 1, IsStaff: true})

	w := serve(router, http.MethodPost, "/api/airplanes", `{"name": "Tu-154", "rows": -1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w)["fields"].(map[string]any)
	assert.Equal(t, []any{"Ensure this value is greater than or equal to 0."}, fields["rows"])
	assert.Equal(t, []any{"This field is required."}, fields["seats_in_row"])
}

func TestAirplaneHandler_uploadImage_adminOnly(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneRouter(service, &domain.Identity{UserID: 1})

	w := serve(router, http.MethodPost, "/api/airplanes/1/upload-image", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	service.AssertNotCalled(t, "UploadAirplaneImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestAirplaneHandler_uploadImage_missingFile(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneRouter(service, &domain.Identity{UserID: 1, IsStaff: true})

	service.On("UploadAirplaneImage", mock.Anything, int64(1), (*multipart.FileHeader)(nil)).
		Return(nil, domain.NewValidationError("airplane_image", "No file was submitted."))

	w := serve(router, http.MethodPost, "/api/airplanes/1/upload-image", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "airplane_image")
	service.AssertExpectations(t)
}

func newAirplaneTypeRouter(service *MockFleetUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAirplaneTypeHandler(service).Register(router.Group("/api/airplane_types"))
	return router
}

func TestAirplaneTypeHandler_create(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneTypeRouter(service)

	service.On("CreateAirplaneType", mock.Anything, &domain.AirplaneType{Name: "Airbus A320"}).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.AirplaneType).ID = 2
		}).Return(nil)

	w := serve(router, http.MethodPost, "/api/airplane_types", `{"name": "Airbus A320"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]any{"id": float64(2), "name": "Airbus A320"}, decodeBody(t, w))
	service.AssertExpectations(t)
}

func TestAirplaneTypeHandler_create_duplicateName(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneTypeRouter(service)

	service.On("CreateAirplaneType", mock.Anything, mock.Anything).
		Return(domain.NewValidationError("name", "airplane type with this name already exists."))

	w := serve(router, http.MethodPost, "/api/airplane_types", `{"name": "Airbus A320"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "name")
}

func TestAirplaneTypeHandler_patch(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneTypeRouter(service)

	service.On("GetAirplaneType", mock.Anything, int64(2)).Return(&domain.AirplaneType{ID: 2, Name: "Airbus A320"}, nil)
	service.On("UpdateAirplaneType", mock.Anything, &domain.AirplaneType{ID: 2, Name: "Airbus A320neo"}).Return(nil)

	w := serve(router, http.MethodPatch, "/api/airplane_types/2", `{"name": "Airbus A320neo"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Airbus A320neo", decodeBody(t, w)["name"])
	service.AssertExpectations(t)
}

func TestAirplaneTypeHandler_get_notFound(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneTypeRouter(service)

	service.On("GetAirplaneType", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)

	w := serve(router, http.MethodGet, "/api/airplane_types/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAirplaneTypeHandler_delete(t *testing.T) {
	service := &MockFleetUseCase{}
	router := newAirplaneTypeRouter(service)

	service.On("DeleteAirplaneType", mock.Anything, int64(2)).Return(nil)

	w := serve(router, http.MethodDelete, "/api/airplane_types/2", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	service.AssertExpectations(t)
}
