package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/gin-gonic/gin"
)

// queryIDs parses a comma-separated id list such as "1,2,3".
func queryIDs(c *gin.Context, name string) ([]int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(name, "Enter a comma-separated list of whole numbers.")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "Enter a whole number.")
	}
	return &n, nil
}

// queryDate parses YYYY-MM-DD as a UTC calendar day.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "Enter a valid date in YYYY-MM-DD format.")
	}
	return &day, nil
}
