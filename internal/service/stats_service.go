package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"innoreg/internal/cache"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

const (
	statsCacheKey = "stats:summary"
	statsCacheTTL = 30 * time.Second
)

// StatsService computes the home page aggregation. Counts cover approved
// projects only, so the numbers shown publicly match the public gallery.
type StatsService interface {
	Summary(ctx context.Context) (*repository.Stats, error)
}

type statsService struct {
	projectRepo repository.ProjectRepository
	cache       *cache.Client
	log         *zap.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(projectRepo repository.ProjectRepository, cache *cache.Client, log *zap.Logger) StatsService {
	return &statsService{
		projectRepo: projectRepo,
		cache:       cache,
		log:         log,
	}
}

// Summary returns the cached aggregation, recomputing on a miss.
func (s *statsService) Summary(ctx context.Context) (*repository.Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var stats repository.Stats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
		// Corrupt cache entry, fall through to the database.
		_ = s.cache.Delete(ctx, statsCacheKey)
	}

	stats, err := s.projectRepo.Stats(ctx, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	} else {
		s.log.Warn("stats cache marshal failed", zap.Error(err))
	}

	return stats, nil
}
