package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID  int64     `json:"user_id"`
	IsStaff bool      `json:"is_staff"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *TokenManager) Issue(identity domain.Identity, typ TokenType) (string, error) {
	ttl := m.accessTTL
	if typ == RefreshToken {
		ttl = m.refreshTTL
	}

	now := time.Now()
	claims := Claims{
		UserID:  identity.UserID,
		IsStaff: identity.IsStaff,
		Type:    typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) IssuePair(identity domain.Identity) (access, refresh string, err error) {
	if access, err = m.Issue(identity, AccessToken); err != nil {
		return "", "", err
	}
	if refresh, err = m.Issue(identity, RefreshToken); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Parse verifies signature, expiry and token type. Every failure wraps domain.ErrUnauthorized.
func (m *TokenManager) Parse(tokenStr string, typ TokenType) (*domain.Identity, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, errors.New("token has wrong type"))
	}

	return &domain.Identity{UserID: claims.UserID, IsStaff: claims.IsStaff}, nil
}
