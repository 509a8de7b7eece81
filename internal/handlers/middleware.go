package handlers

import (
	"errors"
	"net/http"
	"strings"

	"molten_balance/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"

	// gin context key holding the authenticated operator id
	operatorIDKey = "operatorId"

	errMissingAuth   = "missing Authorization header"
	errAuthFormat    = "invalid Authorization header format"
	errTokenRejected = "invalid or expired token"
)

// operatorMiddleware resolves the bearer token to an operator. The id is kept
// in the gin context and in the request context, where the parameter service
// picks it up to attribute changes.
func (h *Handler) operatorMiddleware(c *gin.Context) {
	token, problem := bearerToken(c.GetHeader(authorizationHeader))
	if problem != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": problem})
		return
	}

	id, err := h.services.ParseToken(token)
	if err == nil && id <= 0 {
		err = service.ErrInvalidToken
	}
	if err != nil {
		if h.log != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				h.log.Infow("auth_token_rejected", "err", err)
			} else {
				h.log.Warnw("auth_token_parse_failed", "err", err)
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenRejected})
		return
	}

	c.Set(operatorIDKey, id)
	c.Request = c.Request.WithContext(service.WithOperator(c.Request.Context(), id))
	c.Next()
}

// bearerToken extracts the token from an Authorization header. The second
// return value is the client-facing problem, empty on success.
func bearerToken(header string) (string, string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return "", errAuthFormat
	}
	return token, ""
}

// operatorID returns the id stored by operatorMiddleware, or 0.
func operatorID(c *gin.Context) int {
	return c.GetInt(operatorIDKey)
}
