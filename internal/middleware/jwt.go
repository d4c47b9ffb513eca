package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
	"github.com/inkpost/inkpost/internal/pkg/jwt"
	"github.com/inkpost/inkpost/internal/pkg/response"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
	ContextClaimsKey = "claims"
)

// UserResolver maps a verified token subject back to a directory
// record. Wrap with usercache.WrapLRU to trade staleness for fewer
// directory hits.
type UserResolver interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

// RevocationChecker reports whether a token id was revoked on logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth gates mutating routes: it extracts the bearer token,
// verifies signature and expiry, rejects revoked tokens, resolves the
// identity and attaches it to the request context. Revocations may be
// nil when no logout support is wired (pure stateless mode).
func JWTAuth(secret []byte, users UserResolver, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c, http.StatusUnauthorized, "missing_token", "no token, authorization denied")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			reject(c, http.StatusUnauthorized, "missing_token", "no token, authorization denied")
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				reject(c, http.StatusUnauthorized, "token_expired", "token expired, please log in again")
				return
			}
			reject(c, http.StatusUnauthorized, "invalid_token", "token is not valid")
			return
		}
		if revocations != nil && claims.ID != "" {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				reject(c, http.StatusInternalServerError, "internal", "internal error")
				return
			}
			if revoked {
				reject(c, http.StatusUnauthorized, "token_revoked", "token revoked, please log in again")
				return
			}
		}
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if appErr.IsNotFound(err) {
				reject(c, http.StatusNotFound, "user_not_found", "user not found")
				return
			}
			reject(c, http.StatusInternalServerError, "internal", "internal error")
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

func reject(c *gin.Context, status int, code, message string) {
	response.Error(c, status, code, message)
	c.Abort()
}
