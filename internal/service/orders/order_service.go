package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/kafka"
	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/google/uuid"
)

const (
	ticketsField      = "tickets"
	uniqueSeatMessage = "The fields flight, row, seat must make a unique set."
)

type OrderUseCase interface {
	Create(ctx context.Context, userID int64, tickets []domain.TicketSpec) (*domain.Order, error)
	List(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, int, error)
	Get(ctx context.Context, id, userID int64) (*domain.Order, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// UserDirectory resolves the notification recipient of an order.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type OrderService struct {
	orders             repository.OrderRepository
	users              UserDirectory
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	logger             *slog.Logger
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	users UserDirectory,
	producer Producer,
	ordersTopic string,
	logger *slog.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		users:       users,
		producer:    producer,
		ordersTopic: ordersTopic,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books every requested seat or none of them. All ticket problems are reported together,
// keyed by the ticket position in the request.
func (s *OrderService) Create(ctx context.Context, userID int64, tickets []domain.TicketSpec) (*domain.Order, error) {
	if len(tickets) == 0 {
		return nil, domain.NewValidationError(ticketsField, "This list may not be empty.")
	}

	var order *domain.Order
	err := s.orders.WithinTx(ctx, func(tx repository.OrderTx) error {
		flightIDs := distinctFlights(tickets)

		grids, err := tx.SeatGrids(ctx, flightIDs)
		if err != nil {
			return fmt.Errorf("load seat grids: %w", err)
		}
		taken, err := tx.TakenSeats(ctx, tickets)
		if err != nil {
			return fmt.Errorf("load taken seats: %w", err)
		}

		if err := checkTickets(tickets, grids, taken).ErrOrNil(); err != nil {
			return err
		}

		created, err := tx.CreateOrder(ctx, userID)
		if err != nil {
			return err
		}
		created.Tickets = make([]domain.Ticket, 0, len(tickets))

		for i, spec := range tickets {
			ticket, err := tx.CreateTicket(ctx, created.ID, spec)
			if err != nil {
				if verr, ok := domain.IsValidation(err); ok {
					return rekey(ticketKey(i), verr)
				}
				return err
			}
			created.Tickets = append(created.Tickets, *ticket)
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, int, error) {
	return s.orders.ListByUser(ctx, userID, page)
}

// Get returns ErrNotFound for orders of other users.
func (s *OrderService) Get(ctx context.Context, id, userID int64) (*domain.Order, error) {
	return s.orders.GetForUser(ctx, id, userID)
}

// checkTickets validates every spec against the locked seat grids and already issued tickets.
func checkTickets(tickets []domain.TicketSpec, grids map[int64]domain.SeatGrid, taken map[int64]map[domain.Seat]bool) *domain.ValidationError {
	verr := &domain.ValidationError{}
	requested := make(map[int64]map[domain.Seat]bool)

	for i, spec := range tickets {
		key := ticketKey(i)

		grid, ok := grids[spec.FlightID]
		if !ok {
			verr.Add(key+".flight", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", spec.FlightID))
			continue
		}
		if gerr := grid.Check(spec.Row, spec.Seat); gerr != nil {
			verr.Merge(key, gerr)
			continue
		}

		seat := spec.Address()
		if requested[spec.FlightID][seat] || taken[spec.FlightID][seat] {
			verr.Add(key, uniqueSeatMessage)
			continue
		}
		if requested[spec.FlightID] == nil {
			requested[spec.FlightID] = make(map[domain.Seat]bool)
		}
		requested[spec.FlightID][seat] = true
	}
	return verr
}

// rekey moves storage validation messages under the ticket they belong to.
func rekey(key string, verr *domain.ValidationError) *domain.ValidationError {
	out := &domain.ValidationError{}
	for field, messages := range verr.Fields {
		for _, m := range messages {
			if field == domain.NonFieldErrors {
				out.Add(key, m)
			} else {
				out.Add(key+"."+field, m)
			}
		}
	}
	return out
}

func ticketKey(i int) string {
	return ticketsField + "[" + strconv.Itoa(i) + "]"
}

func distinctFlights(tickets []domain.TicketSpec) []int64 {
	seen := make(map[int64]bool)
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if !seen[t.FlightID] {
			seen[t.FlightID] = true
			ids = append(ids, t.FlightID)
		}
	}
	return ids
}

// publish emits order_created after commit. Failures are logged and never undo the order.
func (s *OrderService) publish(ctx context.Context, order *domain.Order) {
	if s.producer == nil {
		return
	}

	event := kafka.OrderEvent{
		ID:        uuid.NewString(),
		Type:      kafka.EventOrderCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Tickets:   make([]kafka.TicketEvent, 0, len(order.Tickets)),
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	if s.users != nil {
		user, err := s.users.GetByID(ctx, order.UserID)
		if err != nil {
			s.logger.Warn("resolve order recipient", "order_id", order.ID, "error", err)
		} else {
			event.Email = user.Email
		}
	}

	key := strconv.FormatInt(order.ID, 10)
	if err := s.producer.Publish(ctx, s.ordersTopic, key, event); err != nil {
		s.logger.Warn("publish order event", "order_id", order.ID, "topic", s.ordersTopic, "error", err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.logger.Warn("publish order notification", "order_id", order.ID, "topic", s.notificationsTopic, "error", err)
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
