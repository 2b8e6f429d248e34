package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/Domenick1991/airportservice/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

type airplaneTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type AirplaneTypeHandler struct {
	service fleet.FleetUseCase
}

func NewAirplaneTypeHandler(service fleet.FleetUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	types, total, err := h.service.ListAirplaneTypes(c.Request.Context(), p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]namedRef, 0, len(types))
	for _, t := range types {
		results = append(results, namedRef{ID: t.ID, Name: t.Name})
	}
	respondPage(c, p, total, results)
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, namedRef{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	t := &domain.AirplaneType{Name: req.Name}
	if err := h.service.CreateAirplaneType(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, namedRef{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req airplaneTypeRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetAirplaneType(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Name = current.Name
	}
	if !bindJSON(c, &req) {
		return
	}

	t := &domain.AirplaneType{ID: id, Name: req.Name}
	if err := h.service.UpdateAirplaneType(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, namedRef{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type airplaneRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	AirplaneType *int64 `json:"airplane_type"`
	Rows         *int   `json:"rows" binding:"required,min=0"`
	SeatsInRow   *int   `json:"seats_in_row" binding:"required,min=0"`
}

type airplaneResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	AirplaneType  *int64  `json:"airplane_type"`
	Rows          int     `json:"rows"`
	SeatsInRow    int     `json:"seats_in_row"`
	AirplaneImage *string `json:"airplane_image"`
}

type airplaneListResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	AirplaneType  *string         `json:"airplane_type"`
	Capacity      domain.Capacity `json:"capacity"`
	AirplaneImage *string         `json:"airplane_image"`
}

type airplaneDetailResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	AirplaneType  *namedRef       `json:"airplane_type"`
	Rows          int             `json:"rows"`
	SeatsInRow    int             `json:"seats_in_row"`
	Capacity      domain.Capacity `json:"capacity"`
	AirplaneImage *string         `json:"airplane_image"`
}

type airplaneImageResponse struct {
	ID            int64   `json:"id"`
	AirplaneImage *string `json:"airplane_image"`
}

type AirplaneHandler struct {
	service fleet.FleetUseCase
	media   MediaURLs
}

func NewAirplaneHandler(service fleet.FleetUseCase, media MediaURLs) *AirplaneHandler {
	return &AirplaneHandler{service: service, media: media}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.POST("/:id/upload-image", auth.AdminOnly(), h.uploadImage)
}

// list supports ?airplane_types=1,2&capacity_gte=50&capacity_lte=200.
func (h *AirplaneHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	filter, err := airplaneFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	airplanes, total, err := h.service.ListAirplanes(c.Request.Context(), filter, p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]airplaneListResponse, 0, len(airplanes))
	for _, a := range airplanes {
		results = append(results, newAirplaneList(a, h.media))
	}
	respondPage(c, p, total, results)
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := airplaneDetailResponse{
		ID:            a.ID,
		Name:          a.Name,
		Rows:          a.Rows,
		SeatsInRow:    a.SeatsInRow,
		Capacity:      a.Capacity(),
		AirplaneImage: imageURL(h.media, a.Image),
	}
	if a.AirplaneType != nil {
		resp.AirplaneType = &namedRef{ID: a.AirplaneType.ID, Name: a.AirplaneType.Name}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if !bindJSON(c, &req) {
		return
	}
	a := &domain.Airplane{Name: req.Name, AirplaneTypeID: req.AirplaneType, Rows: *req.Rows, SeatsInRow: *req.SeatsInRow}
	if err := h.service.CreateAirplane(c.Request.Context(), a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.newResponse(a))
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req airplaneRequest
	var image string
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetAirplane(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req = airplaneRequest{
			Name:         current.Name,
			AirplaneType: current.AirplaneTypeID,
			Rows:         &current.Rows,
			SeatsInRow:   &current.SeatsInRow,
		}
		image = current.Image
	}
	if !bindJSON(c, &req) {
		return
	}

	a := &domain.Airplane{ID: id, Name: req.Name, AirplaneTypeID: req.AirplaneType, Rows: *req.Rows, SeatsInRow: *req.SeatsInRow, Image: image}
	if err := h.service.UpdateAirplane(c.Request.Context(), a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.newResponse(a))
}

func (h *AirplaneHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AirplaneHandler) uploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	file, err := formFile(c, "airplane_image")
	if err != nil {
		respondError(c, err)
		return
	}

	a, err := h.service.UploadAirplaneImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneImageResponse{ID: a.ID, AirplaneImage: imageURL(h.media, a.Image)})
}

func (h *AirplaneHandler) newResponse(a *domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:            a.ID,
		Name:          a.Name,
		AirplaneType:  a.AirplaneTypeID,
		Rows:          a.Rows,
		SeatsInRow:    a.SeatsInRow,
		AirplaneImage: imageURL(h.media, a.Image),
	}
}

func newAirplaneList(a domain.Airplane, media MediaURLs) airplaneListResponse {
	resp := airplaneListResponse{
		ID:            a.ID,
		Name:          a.Name,
		Capacity:      a.Capacity(),
		AirplaneImage: imageURL(media, a.Image),
	}
	if a.AirplaneType != nil {
		resp.AirplaneType = &a.AirplaneType.Name
	}
	return resp
}

func airplaneFilter(c *gin.Context) (repository.AirplaneFilter, error) {
	var (
		filter repository.AirplaneFilter
		err    error
	)
	verr := &domain.ValidationError{}
	if filter.TypeIDs, err = queryIDs(c, "airplane_types"); err != nil {
		verr.Merge("", asValidation(err))
	}
	if filter.CapacityGTE, err = queryInt(c, "capacity_gte"); err != nil {
		verr.Merge("", asValidation(err))
	}
	if filter.CapacityLTE, err = queryInt(c, "capacity_lte"); err != nil {
		verr.Merge("", asValidation(err))
	}
	return filter, verr.ErrOrNil()
}

// formFile returns nil without error when the field is absent so the service can report it.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, domain.NewValidationError(field, "The submitted data was not a file.")
	}
	return file, nil
}

func asValidation(err error) *domain.ValidationError {
	if verr, ok := domain.IsValidation(err); ok {
		return verr
	}
	return domain.NewValidationError(domain.NonFieldErrors, err.Error())
}
