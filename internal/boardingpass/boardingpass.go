// Package boardingpass renders a signed QR code for an order.
package boardingpass

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/skip2/go-qrcode"
)

const imageSize = 256

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	return &Generator{secret: []byte(secret)}
}

// Payload is "order:<id>;user:<id>;seats:<flight>/<row>/<seat>,...;signature:<hex hmac>".
func (g *Generator) Payload(order domain.Order) string {
	seats := make([]string, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		seats = append(seats, fmt.Sprintf("%d/%d/%d", t.FlightID, t.Row, t.Seat))
	}
	body := fmt.Sprintf("order:%d;user:%d;seats:%s", order.ID, order.UserID, strings.Join(seats, ","))
	return body + ";signature:" + g.sign(body)
}

func (g *Generator) PNG(order domain.Order) ([]byte, error) {
	return qrcode.Encode(g.Payload(order), qrcode.Medium, imageSize)
}

// Verify checks the signature of a scanned payload and returns the order id it names.
func (g *Generator) Verify(payload string) (int64, error) {
	idx := strings.LastIndex(payload, ";signature:")
	if idx < 0 {
		return 0, fmt.Errorf("invalid boarding pass format")
	}
	body, signature := payload[:idx], payload[idx+len(";signature:"):]
	if !hmac.Equal([]byte(g.sign(body)), []byte(signature)) {
		return 0, fmt.Errorf("invalid boarding pass signature")
	}

	first := strings.SplitN(body, ";", 2)[0]
	if !strings.HasPrefix(first, "order:") {
		return 0, fmt.Errorf("invalid boarding pass format")
	}
	return strconv.ParseInt(strings.TrimPrefix(first, "order:"), 10, 64)
}

func (g *Generator) sign(body string) string {
	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}
