package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Every JSON body this API accepts fits comfortably in this.
const maxBodyBytes = 64 << 10

// limitBody caps how much of a request body any handler may read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// readObject decodes the request body as a JSON object. An empty body and any
// JSON value that is not an object both read as {}; only invalid JSON fails.
func (h *Handler) readObject(c *gin.Context) (map[string]any, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logBadBody(c, err)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorResponse{
				Code:    http.StatusRequestEntityTooLarge,
				Message: msgBodyTooLarge,
			})
			return nil, false
		}
		h.badBody(c, err)
		return nil, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		h.badBody(c, err)
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, true
	}
	return obj, true
}

func (h *Handler) badBody(c *gin.Context, err error) {
	h.logBadBody(c, err)
	abortBadRequest(c, msgMalformedBody)
}

func (h *Handler) logBadBody(c *gin.Context, err error) {
	if h.log != nil {
		h.log.Infow("bad_request_body", "request_id", requestIDFrom(c), "path", c.FullPath(), "err", err)
	}
}
