package api

import (
	"net/http"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/service/routes"
	"github.com/gin-gonic/gin"
)

type routeRequest struct {
	Source      int64 `json:"source" binding:"required"`
	Destination int64 `json:"destination" binding:"required"`
	Distance    *int  `json:"distance" binding:"omitempty,min=0"`
}

type routeResponse struct {
	ID          int64 `json:"id"`
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    *int  `json:"distance"`
}

type routeListResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    *int   `json:"distance"`
}

type routeDetailResponse struct {
	ID          int64                 `json:"id"`
	Source      airportDetailResponse `json:"source"`
	Destination airportDetailResponse `json:"destination"`
	Distance    *int                  `json:"distance"`
}

type RouteHandler struct {
	service routes.RouteUseCase
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *RouteHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	items, total, err := h.service.List(c.Request.Context(), p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]routeListResponse, 0, len(items))
	for _, r := range items {
		results = append(results, newRouteList(r))
	}
	respondPage(c, p, total, results)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := routeDetailResponse{ID: route.ID, Distance: route.Distance}
	if route.Source != nil {
		resp.Source = newAirportDetail(*route.Source)
	}
	if route.Destination != nil {
		resp.Destination = newAirportDetail(*route.Destination)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if !bindJSON(c, &req) {
		return
	}
	route := &domain.Route{SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.Create(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRouteResponse(route))
}

func (h *RouteHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req routeRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req = routeRequest{Source: current.SourceID, Destination: current.DestinationID, Distance: current.Distance}
	}
	if !bindJSON(c, &req) {
		return
	}

	route := &domain.Route{ID: id, SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.Update(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRouteResponse(route))
}

func (h *RouteHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func newRouteResponse(r *domain.Route) routeResponse {
	return routeResponse{ID: r.ID, Source: r.SourceID, Destination: r.DestinationID, Distance: r.Distance}
}

func newRouteList(r domain.Route) routeListResponse {
	resp := routeListResponse{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		resp.Source = r.Source.Label()
	}
	if r.Destination != nil {
		resp.Destination = r.Destination.Label()
	}
	return resp
}
