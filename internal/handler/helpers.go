package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/inkpost/inkpost/internal/middleware"
	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
	"github.com/inkpost/inkpost/internal/pkg/jwt"
	"github.com/inkpost/inkpost/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func currentUser(c *gin.Context) *model.User {
	value, _ := c.Get(middleware.ContextUserKey)
	user, _ := value.(*model.User)
	return user
}

func currentClaims(c *gin.Context) *jwt.Claims {
	value, _ := c.Get(middleware.ContextClaimsKey)
	claims, _ := value.(*jwt.Claims)
	return claims
}

// handleError maps service errors onto stable status codes. Internal
// detail is logged with the request id and never echoed to the client.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case err == appErr.ErrDuplicateEmail:
		response.Error(c, http.StatusBadRequest, "duplicate_email", "user already exists")
	case err == appErr.ErrInvalidCredentials:
		response.Error(c, http.StatusBadRequest, "invalid_credentials", "invalid credentials")
	case err == appErr.ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case err == appErr.ErrForbidden:
		response.Error(c, http.StatusForbidden, "forbidden", "forbidden")
	case err == appErr.ErrNotFound:
		response.Error(c, http.StatusNotFound, "not_found", "not found")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
	case err == appErr.ErrConflict:
		response.Error(c, http.StatusConflict, "conflict", "conflict")
	case err == appErr.ErrMissingToken:
		response.Error(c, http.StatusUnauthorized, "missing_token", "no token, authorization denied")
	case err == appErr.ErrTokenExpired:
		response.Error(c, http.StatusUnauthorized, "token_expired", "token expired, please log in again")
	case err == appErr.ErrTokenRevoked:
		response.Error(c, http.StatusUnauthorized, "token_revoked", "token revoked, please log in again")
	case err == appErr.ErrInvalidToken:
		response.Error(c, http.StatusUnauthorized, "invalid_token", "token is not valid")
	case err == appErr.ErrUserNotFound:
		response.Error(c, http.StatusNotFound, "user_not_found", "user not found")
	default:
		requestID, _ := c.Get(middleware.ContextRequestIDKey)
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
