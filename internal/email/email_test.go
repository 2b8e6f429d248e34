package email

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Domenick1991/airportservice/internal/kafka"
	"github.com/stretchr/testify/assert"
)

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	sender := NewSender(slog.New(slog.NewTextHandler(&buf, nil)))

	event := kafka.OrderEvent{
		Type:    kafka.EventOrderCreated,
		OrderID: 7,
		Email:   "traveller@example.com",
		Tickets: []kafka.TicketEvent{{FlightID: 1, Row: 2, Seat: 3}, {FlightID: 1, Row: 2, Seat: 4}},
	}

	assert.NoError(t, sender.Send(context.Background(), event))
	assert.Contains(t, buf.String(), "traveller@example.com")
	assert.Contains(t, buf.String(), "Order #7 confirmed")
}

func TestSender_SendWithoutRecipient(t *testing.T) {
	var buf bytes.Buffer
	sender := NewSender(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.NoError(t, sender.Send(context.Background(), kafka.OrderEvent{OrderID: 9}))
	assert.Contains(t, buf.String(), "order event without recipient")
}

func TestBody(t *testing.T) {
	body := Body(kafka.OrderEvent{OrderID: 3, Tickets: []kafka.TicketEvent{{FlightID: 8, Row: 10, Seat: 1}}})
	assert.Contains(t, body, "1 ticket(s)")
	assert.Contains(t, body, "flight 8, row 10, seat 1")
}
