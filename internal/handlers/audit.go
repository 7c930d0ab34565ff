package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"pickem/internal/models"
	"pickem/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRange       = "'from' must be <= 'to'"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

type auditResponse struct {
	Count  int                 `json:"count"`
	Events []models.AuditEvent `json:"events"`
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List audit events
// @Description  The caller's own account events in ascending time. Dates accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         audit
// @Produce      json
// @Param        from  query     string  false  "Start of range"  example(2025-08-01)
// @Param        to    query     string  false  "End of range, date-only is end of day"  example(2025-08-31)
// @Param        type  query     string  false  "Event type"  Enums(SIGNUP,LOGIN,LOGIN_FAILED,REFRESH)
// @Success      200   {object}  auditResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /audit [get]
// @Security     BearerAuth
func (h *Handler) listAudit(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			abortBadRequest(c, errFromInvalid)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			abortBadRequest(c, errToInvalid)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	id, ok := identityFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	events, err := h.services.AuditLog.List(c.Request.Context(), service.LogFilter{
		From:     from,
		To:       to,
		Type:     c.Query("type"),
		Username: id.Username,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			abortBadRequest(c, errRange)
			return
		}
		h.respondError(c, "audit_list_failed", err)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	c.JSON(http.StatusOK, auditResponse{Count: len(events), Events: events})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
