package service

import (
	"context"

	"pickem/internal/repository"
)

type HealthService struct {
	db repository.Pinger
}

func NewHealthService(db repository.Pinger) *HealthService {
	return &HealthService{db: db}
}

func (s *HealthService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
