package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxPrincipalKey = "principal"
)

// Rejection messages of the session gate.
const (
	MsgNoToken           = "no token"
	MsgInvalidToken      = "invalid or expired token"
	MsgPrincipalNotFound = "principal not found"
)

type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

type PrincipalFinder interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenFromRequest returns the session token carried by the request: the
// access_token cookie, then the legacy token cookie, then a bearer header.
func TokenFromRequest(c *gin.Context) string {
	for _, name := range []string{helpers.AccessTokenCookie, helpers.LegacyTokenCookie} {
		if v, err := c.Cookie(name); err == nil && v != "" {
			return v
		}
	}
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(tok)
	}
	return ""
}

// SessionGate resolves the request's principal or rejects it with 401.
// revoked may be nil, in which case signed-out tokens stay valid until expiry.
func SessionGate(tokens TokenVerifier, users PrincipalFinder, revoked RevocationChecker, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, MsgNoToken)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		ctx := c.Request.Context()
		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
			if err != nil {
				// denylist outage: keep serving signature-valid tokens
				helpers.LogWarn(logger, "denylist lookup failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			}
			if isRevoked {
				abort(c, http.StatusUnauthorized, MsgInvalidToken)
				return
			}
		}

		u, err := users.GetByID(ctx, claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			abort(c, http.StatusUnauthorized, MsgPrincipalNotFound)
			return
		}
		if err != nil {
			helpers.LogError(logger, "resolve principal failed", err, logrus.Fields{"user_id": claims.UserID})
			abort(c, http.StatusInternalServerError, "server error")
			return
		}

		c.Set(CtxPrincipalKey, u.Public())
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// Principal returns the principal attached by SessionGate.
func Principal(c *gin.Context) (entity.PublicUser, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return entity.PublicUser{}, false
	}
	p, ok := v.(entity.PublicUser)
	return p, ok
}

func abort(c *gin.Context, status int, msg string) {
	resp := response.Error[any](c, status, msg, nil)
	c.AbortWithStatusJSON(resp.Status, resp)
}
