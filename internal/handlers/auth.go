package handlers

import (
	"net/http"

	"pickem/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cr3t"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

// @Summary      Log in
// @Description  Exchanges credentials for a bearer token. Unknown user and wrong password get the same 401.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      loginRequest  true  "Credentials"
// @Success      200    {object}  tokenResponse
// @Failure      400    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	payload, ok := h.readObject(c)
	if !ok {
		return
	}
	username, uok := payload["username"].(string)
	password, pok := payload["password"].(string)
	if !uok || !pok {
		h.metrics.logins.WithLabelValues(outcomeFailure).Inc()
		abortUnauthorized(c)
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), username, password)
	if err != nil {
		if service.IsKind(err, service.KindUnauthorized) {
			h.metrics.logins.WithLabelValues(outcomeFailure).Inc()
		} else {
			h.metrics.logins.WithLabelValues(outcomeError).Inc()
		}
		h.respondError(c, "login_failed", err)
		return
	}

	h.metrics.logins.WithLabelValues(outcomeSuccess).Inc()
	c.JSON(http.StatusOK, tokenResponse{AuthToken: token})
}

// @Summary      Refresh token
// @Description  Issues a fresh token for the identity of the presented one.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/refresh [post]
// @Security     BearerAuth
func (h *Handler) refresh(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	token, err := h.services.Refresh(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "refresh_failed", err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AuthToken: token})
}
