package boardingpass

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:     42,
		UserID: 7,
		Tickets: []domain.Ticket{
			{FlightID: 3, Row: 1, Seat: 2},
			{FlightID: 3, Row: 1, Seat: 3},
		},
	}
}

func TestGenerator_PayloadRoundTrip(t *testing.T) {
	g := NewGenerator("secret")
	payload := g.Payload(sampleOrder())

	assert.True(t, strings.HasPrefix(payload, "order:42;user:7;seats:3/1/2,3/1/3;signature:"))

	id, err := g.Verify(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGenerator_VerifyRejectsTampering(t *testing.T) {
	g := NewGenerator("secret")
	payload := strings.Replace(g.Payload(sampleOrder()), "order:42", "order:43", 1)

	_, err := g.Verify(payload)
	assert.Error(t, err)

	_, err = NewGenerator("other").Verify(g.Payload(sampleOrder()))
	assert.Error(t, err)

	_, err = g.Verify("garbage")
	assert.Error(t, err)
}

func TestGenerator_PNG(t *testing.T) {
	png, err := NewGenerator("secret").PNG(sampleOrder())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
