package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"innoreg/internal/cache"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

func TestStatsService_SummaryCountsApprovedOnly(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	mockRepo.On("Stats", mock.Anything, model.StatusApproved).Return(&repository.Stats{
		Total:      12,
		Robotics:   4,
		Drones:     3,
		Innovators: 9,
	}, nil)

	// A nil cache client degrades to a permanent miss.
	var noCache *cache.Client
	service := NewStatsService(mockRepo, noCache, zap.NewNop())

	stats, err := service.Summary(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.Total)
	assert.Equal(t, int64(4), stats.Robotics)
	assert.Equal(t, int64(3), stats.Drones)
	assert.Equal(t, int64(9), stats.Innovators)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_SummaryStoreError(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	mockRepo.On("Stats", mock.Anything, model.StatusApproved).
		Return(nil, assert.AnError)

	var noCache *cache.Client
	service := NewStatsService(mockRepo, noCache, zap.NewNop())

	stats, err := service.Summary(context.Background())
	assert.Error(t, err)
	assert.Nil(t, stats)
	mockRepo.AssertExpectations(t)
}
