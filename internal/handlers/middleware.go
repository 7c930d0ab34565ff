package handlers

import (
	"strings"

	"pickem/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	headerAuthorization = "Authorization"
	bearerScheme        = "Bearer"
	ctxIdentity         = "identity"
)

// authGuard admits requests carrying a valid bearer token. Every rejection gets
// the same 401 body; the reason only reaches debug logs.
func (h *Handler) authGuard(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader(headerAuthorization))
	if !ok {
		h.reject(c, "missing or malformed authorization header")
		return
	}

	id, err := h.services.ParseToken(token)
	if err != nil {
		h.reject(c, err.Error())
		return
	}

	c.Set(ctxIdentity, id)
	c.Next()
}

func (h *Handler) reject(c *gin.Context, reason string) {
	h.metrics.authRejections.Inc()
	if h.log != nil {
		h.log.Debugw("auth_rejected", "request_id", requestIDFrom(c), "path", c.FullPath(), "reason", reason)
	}
	abortUnauthorized(c)
}

// bearerToken extracts the token from "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// identityFrom returns the identity stored by authGuard.
func identityFrom(c *gin.Context) (service.Identity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return service.Identity{}, false
	}
	id, ok := v.(service.Identity)
	return id, ok
}
