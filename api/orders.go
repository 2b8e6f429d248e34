package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type ticketRequest struct {
	Row    *int   `json:"row" binding:"required"`
	Seat   *int   `json:"seat" binding:"required"`
	Flight *int64 `json:"flight" binding:"required"`
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets" binding:"required,dive"`
}

type ticketResponse struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Tickets   []ticketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

type ticketFlightResponse struct {
	ID               int64     `json:"id"`
	RouteSource      string    `json:"route_source"`
	RouteDestination string    `json:"route_destination"`
	DepartureTime    time.Time `json:"departure_time"`
}

type ticketListResponse struct {
	ID     int64                `json:"id"`
	Row    int                  `json:"row"`
	Seat   int                  `json:"seat"`
	Flight ticketFlightResponse `json:"flight"`
}

type orderListResponse struct {
	ID        int64                `json:"id"`
	Tickets   []ticketListResponse `json:"tickets"`
	CreatedAt time.Time            `json:"created_at"`
}

// BoardingPasses renders the QR image handed to passengers.
type BoardingPasses interface {
	PNG(order domain.Order) ([]byte, error)
}

type OrderHandler struct {
	service orders.OrderUseCase
	passes  BoardingPasses
}

func NewOrderHandler(service orders.OrderUseCase, passes BoardingPasses) *OrderHandler {
	return &OrderHandler{service: service, passes: passes}
}

// Register exposes list, create and retrieve only. Orders are immutable once placed.
func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.GET("/:id/boarding-pass", h.boardingPass)
}

func (h *OrderHandler) list(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	p, ok := parsePage(c)
	if !ok {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), identity.UserID, p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]orderListResponse, 0, len(items))
	for _, o := range items {
		results = append(results, newOrderList(o))
	}
	respondPage(c, p, total, results)
}

func (h *OrderHandler) get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderList(*order))
}

func (h *OrderHandler) create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	specs := make([]domain.TicketSpec, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		specs = append(specs, domain.TicketSpec{Row: *t.Row, Seat: *t.Seat, FlightID: *t.Flight})
	}

	order, err := h.service.Create(c.Request.Context(), identity.UserID, specs)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := orderResponse{ID: order.ID, CreatedAt: order.CreatedAt, Tickets: make([]ticketResponse, 0, len(order.Tickets))}
	for _, t := range order.Tickets {
		resp.Tickets = append(resp.Tickets, ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID})
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) boardingPass(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	png, err := h.passes.PNG(*order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func newOrderList(o domain.Order) orderListResponse {
	resp := orderListResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: make([]ticketListResponse, 0, len(o.Tickets))}
	for _, t := range o.Tickets {
		item := ticketListResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: ticketFlightResponse{ID: t.FlightID}}
		if f := t.Flight; f != nil {
			item.Flight.DepartureTime = f.DepartureTime
			if f.Route != nil && f.Route.Source != nil && f.Route.Destination != nil {
				item.Flight.RouteSource = f.Route.Source.Name
				item.Flight.RouteDestination = f.Route.Destination.Name
			}
		}
		resp.Tickets = append(resp.Tickets, item)
	}
	return resp
}

func requireIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return domain.Identity{}, false
	}
	return identity, true
}
