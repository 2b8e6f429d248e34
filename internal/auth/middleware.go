package auth

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticate attaches the bearer identity to the request when an Authorization header is sent.
// Requests without the header continue anonymously; policies decide whether that is allowed.
func Authenticate(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abort(c, http.StatusUnauthorized, "Invalid Authorization header")
			return
		}

		identity, err := tokens.Parse(strings.TrimSpace(parts[1]), AccessToken)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Given token not valid for any token type")
			return
		}

		SetIdentity(c, *identity)
		c.Next()
	}
}

// ReadAuthenticated lets any identity read and only staff write.
func ReadAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
			return
		}
		if !isSafeMethod(c.Request.Method) && !identity.IsStaff {
			abort(c, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}

// Authenticated requires an identity. Ownership is enforced by the services that scope queries to it.
func Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			abort(c, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
			return
		}
		if !identity.IsStaff {
			abort(c, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}

func SetIdentity(c *gin.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// MustIdentity returns the request identity or ErrUnauthorized.
func MustIdentity(c *gin.Context) (domain.Identity, error) {
	identity, ok := IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":   http.StatusText(status),
		"message": message,
	})
}
