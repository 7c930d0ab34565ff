package handlers

import (
	"net/http"

	"pickem/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Sign up
// @Description  Creates an account. Fields are checked in order (presence, type, surrounding whitespace, size) and the first violation is reported.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body      signupRequest  true  "New account"
// @Success      201    {object}  models.PublicUser
// @Failure      400    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Failure      422    {object}  validationResponse
// @Failure      500    {object}  errorResponse
// @Router       /users/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	payload, ok := h.readObject(c)
	if !ok {
		return
	}

	user, err := h.services.SignUp(c.Request.Context(), payload)
	if err != nil {
		if service.IsKind(err, service.KindValidation) {
			h.metrics.signups.WithLabelValues(outcomeInvalid).Inc()
		} else {
			h.metrics.signups.WithLabelValues(outcomeError).Inc()
		}
		h.respondError(c, "signup_failed", err)
		return
	}

	h.metrics.signups.WithLabelValues(outcomeCreated).Inc()
	c.JSON(http.StatusCreated, user)
}

// signupRequest documents the signup body; the handler reads it untyped so that
// type errors are reported per field.
type signupRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cr3t"`
	Name     string `json:"name" example:"Alice"`
}

// @Summary      List users
// @Description  All users, highest points first.
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.PublicUser
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/all [get]
// @Security     BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, "list_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get user
// @Description  Public view of one user. An unknown username is reported as an internal error.
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  models.PublicUser
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /users/{username} [get]
// @Security     BearerAuth
func (h *Handler) getUser(c *gin.Context) {
	user, err := h.services.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, "get_user_failed", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
