package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/Domenick1991/airportservice/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type flightRequest struct {
	Route         int64     `json:"route" binding:"required"`
	Airplane      int64     `json:"airplane" binding:"required"`
	Crew          []int64   `json:"crew"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}

type flightResponse struct {
	ID            int64     `json:"id"`
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	Crew          []int64   `json:"crew"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type flightListResponse struct {
	ID               int64           `json:"id"`
	RouteSource      string          `json:"route_source"`
	RouteDestination string          `json:"route_destination"`
	AirplaneName     string          `json:"airplane_name"`
	AirplaneCapacity domain.Capacity `json:"airplane_capacity"`
	Crew             string          `json:"crew"`
	DepartureTime    time.Time       `json:"departure_time"`
	ArrivalTime      time.Time       `json:"arrival_time"`
	TicketsAvailable int             `json:"tickets_available"`
}

type seatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type flightDetailResponse struct {
	ID               int64                `json:"id"`
	Route            routeListResponse    `json:"route"`
	Airplane         airplaneListResponse `json:"airplane"`
	Crew             []crewResponse       `json:"crew"`
	DepartureTime    time.Time            `json:"departure_time"`
	ArrivalTime      time.Time            `json:"arrival_time"`
	AirplaneImage    *string              `json:"airplane_image"`
	TicketsAvailable int                  `json:"tickets_available"`
	TakenSeats       []seatResponse       `json:"taken_seats"`
}

type FlightHandler struct {
	service flights.FlightUseCase
	media   MediaURLs
}

func NewFlightHandler(service flights.FlightUseCase, media MediaURLs) *FlightHandler {
	return &FlightHandler{service: service, media: media}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

// list supports ?airplanes=1,2&routes=3&date=2024-05-01.
func (h *FlightHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	filter, err := flightFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter, p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]flightListResponse, 0, len(items))
	for _, f := range items {
		item := flightListResponse{
			ID:               f.ID,
			Crew:             f.CrewNames(),
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			TicketsAvailable: f.TicketsAvailable,
		}
		if f.Route != nil && f.Route.Source != nil && f.Route.Destination != nil {
			item.RouteSource = f.Route.Source.Name
			item.RouteDestination = f.Route.Destination.Name
		}
		if f.Airplane != nil {
			item.AirplaneName = f.Airplane.Name
			item.AirplaneCapacity = f.Airplane.Capacity()
		}
		results = append(results, item)
	}
	respondPage(c, p, total, results)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := flightDetailResponse{
		ID:               f.ID,
		Crew:             make([]crewResponse, 0, len(f.Crew)),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		TicketsAvailable: f.TicketsAvailable,
		TakenSeats:       make([]seatResponse, 0, len(f.TakenSeats)),
	}
	if f.Route != nil {
		resp.Route = newRouteList(*f.Route)
	}
	if f.Airplane != nil {
		resp.Airplane = newAirplaneList(*f.Airplane, h.media)
		resp.AirplaneImage = imageURL(h.media, f.Airplane.Image)
	}
	for _, m := range f.Crew {
		resp.Crew = append(resp.Crew, newCrewResponse(m))
	}
	for _, s := range f.TakenSeats {
		resp.TakenSeats = append(resp.TakenSeats, seatResponse{Row: s.Row, Seat: s.Seat})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if !bindJSON(c, &req) {
		return
	}
	f := req.flight(0)
	if err := h.service.Create(c.Request.Context(), f); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newFlightResponse(f))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req flightRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req = flightRequest{
			Route:         current.RouteID,
			Airplane:      current.AirplaneID,
			Crew:          current.CrewIDs,
			DepartureTime: current.DepartureTime,
			ArrivalTime:   current.ArrivalTime,
		}
	}
	if !bindJSON(c, &req) {
		return
	}

	f := req.flight(id)
	if err := h.service.Update(c.Request.Context(), f); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(f))
}

func (h *FlightHandler) delete(c *gin.Context) {
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

func (r flightRequest) flight(id int64) *domain.Flight {
	crew := r.Crew
	if crew == nil {
		crew = []int64{}
	}
	return &domain.Flight{
		ID:            id,
		RouteID:       r.Route,
		AirplaneID:    r.Airplane,
		CrewIDs:       crew,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
	}
}

func newFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:            f.ID,
		Route:         f.RouteID,
		Airplane:      f.AirplaneID,
		Crew:          f.CrewIDs,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
	}
}

func flightFilter(c *gin.Context) (repository.FlightFilter, error) {
	var (
		filter repository.FlightFilter
		err    error
	)
	verr := &domain.ValidationError{}
	if filter.AirplaneIDs, err = queryIDs(c, "airplanes"); err != nil {
		verr.Merge("", asValidation(err))
	}
	if filter.RouteIDs, err = queryIDs(c, "routes"); err != nil {
		verr.Merge("", asValidation(err))
	}
	if filter.Date, err = queryDate(c, "date"); err != nil {
		verr.Merge("", asValidation(err))
	}
	return filter, verr.ErrOrNil()
}
