package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Domenick1991/airportservice/internal/repository"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type pageRequest struct {
	number int
	size   int
}

type pageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// parsePage reads page and page_size. A malformed page_size falls back to the default.
func parsePage(c *gin.Context) (pageRequest, bool) {
	p := pageRequest{number: 1, size: defaultPageSize}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		// The upper bound keeps (page-1)*page_size from overflowing.
		if err != nil || n < 1 || n > math.MaxInt/maxPageSize {
			invalidPage(c)
			return p, false
		}
		p.number = n
	}

	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.size = min(n, maxPageSize)
		}
	}
	return p, true
}

func (p pageRequest) window() repository.Page {
	return repository.Page{Limit: p.size, Offset: (p.number - 1) * p.size}
}

// respondPage writes the paginated envelope. Pages past the end are 404 except the first.
func respondPage[T any](c *gin.Context, p pageRequest, total int, results []T) {
	if p.number > 1 && p.window().Offset >= total {
		invalidPage(c)
		return
	}
	if results == nil {
		results = []T{}
	}

	resp := pageResponse[T]{Count: total, Results: results}
	if p.number*p.size < total {
		resp.Next = pageURL(c, p.number+1)
	}
	if p.number > 1 {
		resp.Previous = pageURL(c, p.number-1)
	}
	c.JSON(http.StatusOK, resp)
}

func pageURL(c *gin.Context, number int) *string {
	u := *c.Request.URL
	q := u.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	s := u.RequestURI()
	return &s
}

func invalidPage(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{
		Error:   http.StatusText(http.StatusNotFound),
		Message: "Invalid page.",
	})
}
