package handlers

import (
	"net/http"

	"pickem/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgUnauthorized  = "Unauthorized"
	msgInternal      = "Internal server error"
	msgMalformedBody = "Malformed request body"
	msgBodyTooLarge  = "Request body too large"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type validationResponse struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

// respondError is the only place where service errors become HTTP responses.
// Unauthorized and Internal bodies never vary with the cause.
func (h *Handler) respondError(c *gin.Context, event string, err error) {
	se := service.AsError(err)
	switch se.Kind {
	case service.KindValidation:
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, validationResponse{
			Code:     http.StatusUnprocessableEntity,
			Reason:   service.ReasonValidation,
			Message:  se.Message,
			Location: se.Location,
		})
	case service.KindUnauthorized:
		if h.log != nil {
			h.log.Debugw(event, "request_id", requestIDFrom(c), "err", se)
		}
		abortUnauthorized(c)
	default:
		if h.log != nil {
			h.log.Errorw(event, "request_id", requestIDFrom(c), "err", se)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: msgInternal,
		})
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
		Code:    http.StatusUnauthorized,
		Message: msgUnauthorized,
	})
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
