package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MediaURLs turns stored media paths into public URLs.
type MediaURLs interface {
	URL(rel string) string
}

type errorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

type namedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func init() {
	// Report validation failures under JSON names instead of Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError writes the error envelope. Unexpected errors are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	if verr, ok := domain.IsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "Invalid input.",
			Fields:  verr.Fields,
		})
		return
	}

	var status int
	var message string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, "No object matches the given query."
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = http.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, message = http.StatusForbidden, domain.ErrForbidden.Error()
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		status, message = http.StatusInternalServerError, "A server error occurred."
	}

	c.AbortWithStatusJSON(status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// MethodNotAllowed answers methods a resource does not support, such as updates of orders.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, errorResponse{
		Error:   http.StatusText(http.StatusMethodNotAllowed),
		Message: fmt.Sprintf("Method %q not allowed.", c.Request.Method),
	})
}

// NotFound answers unknown paths.
func NotFound(c *gin.Context) {
	respondError(c, domain.ErrNotFound)
}

// bindJSON decodes the body into req and writes a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		out := &domain.ValidationError{}
		for _, fe := range verrs {
			out.Add(fieldPath(fe), fieldMessage(fe))
		}
		return out
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = domain.NonFieldErrors
		}
		return domain.NewValidationError(field, fmt.Sprintf("Incorrect type. Expected %s, got %s.", typeErr.Type.Kind(), typeErr.Value))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError(domain.NonFieldErrors, "JSON parse error - malformed request body.")
	}
	return domain.NewValidationError(domain.NonFieldErrors, err.Error())
}

// fieldPath drops the struct name from the validator namespace: "req.tickets[0].row" becomes "tickets[0].row".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return "This list may not be empty."
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

// pathID parses the :id parameter. Malformed ids are reported as missing objects.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, domain.ErrNotFound)
		return 0, false
	}
	return id, true
}

func imageURL(urls MediaURLs, rel string) *string {
	if rel == "" || urls == nil {
		return nil
	}
	u := urls.URL(rel)
	return &u
}
