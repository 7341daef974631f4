package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingSecret is returned by NewJWTManager for an empty signing key.
	ErrMissingSecret = errors.New("jwt signing secret is not configured")
	// ErrInvalidToken wraps every verification failure.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// JWTManager issues and verifies HS256 session tokens.
type JWTManager struct {
	secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// NewJWTManager builds a manager for secret. ttl is the default session
// lifetime used by callers that do not pick their own.
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTManager{secret: []byte(secret), TTL: ttl, now: time.Now}, nil
}

// Claims binds a principal id to a token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token and the facts callers need to store it.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	ID        string // jti
}

// Issue signs a token for principalID that expires ttl from now.
func (m *JWTManager) Issue(principalID string, ttl time.Duration) (IssuedToken, error) {
	now := m.now()
	exp := now.Add(ttl)
	jti := uuid.NewString()
	claims := &Claims{
		UserID: principalID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{Token: s, ExpiresAt: claims.ExpiresAt.Time, ID: jti}, nil
}

// Verify checks signature, algorithm and expiry. A token whose expiry is
// not strictly in the future is rejected.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if !claims.ExpiresAt.After(m.now()) {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}
	return claims, nil
}
