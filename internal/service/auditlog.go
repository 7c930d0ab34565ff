package service

import (
	"context"
	"strings"
	"time"

	"pickem/internal/models"
	"pickem/internal/repository"

	"github.com/pkg/errors"
)

var ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")

type AuditLogService struct {
	repo repository.AuditRepo
	now  func() time.Time
}

func NewAuditLogService(repo repository.AuditRepo) *AuditLogService {
	return &AuditLogService{repo: repo, now: time.Now}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	return from, to, normalizeEventType(f.Type), nil
}

func (s *AuditLogService) List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.List(ctx, from, to, typ, f.Username)
	if err != nil {
		return nil, NewInternal(errors.Wrap(err, "list audit events"))
	}
	return events, nil
}

// Record appends one event stamped with the current time.
func (s *AuditLogService) Record(ctx context.Context, typ, username string, meta any) error {
	return s.repo.Append(ctx, models.AuditEvent{
		OccurredAt: s.now().UTC(),
		Type:       typ,
		Username:   username,
		Metadata:   meta,
	})
}
