package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Domenick1991/airportservice/internal/kafka"
)

type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

// Send delivers the order confirmation. Delivery is a log line until an SMTP relay is configured.
func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	if event.Email == "" {
		s.logger.Warn("order event without recipient", "order_id", event.OrderID)
		return nil
	}
	s.logger.InfoContext(ctx, "send email",
		"to", event.Email,
		"subject", Subject(event),
		"body", Body(event),
	)
	return nil
}

func Subject(event kafka.OrderEvent) string {
	return fmt.Sprintf("Order #%d confirmed", event.OrderID)
}

func Body(event kafka.OrderEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your order #%d contains %d ticket(s):\n", event.OrderID, len(event.Tickets))
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "  flight %d, row %d, seat %d\n", t.FlightID, t.Row, t.Seat)
	}
	return b.String()
}
