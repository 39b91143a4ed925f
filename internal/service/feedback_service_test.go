package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "innoreg/internal/errors"
	"innoreg/internal/model"
)

// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func TestFeedbackService_Submit(t *testing.T) {
	tests := []struct {
		name          string
		feedbackName  string
		email         string
		message       string
		expectedError error
	}{
		{name: "successful submission", feedbackName: "Asha", email: "asha@example.com", message: "Great showcase!"},
		{name: "missing name", email: "asha@example.com", message: "hi", expectedError: apperrors.ErrMissingFields},
		{name: "missing email", feedbackName: "Asha", message: "hi", expectedError: apperrors.ErrMissingFields},
		{name: "missing message", feedbackName: "Asha", email: "asha@example.com", expectedError: apperrors.ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFeedbackRepository)
			if tt.expectedError == nil {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Feedback")).Return(nil)
			}

			service := NewFeedbackService(mockRepo)
			feedback, err := service.Submit(context.Background(), tt.feedbackName, tt.email, tt.message)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, feedback)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.message, feedback.Message)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFeedbackService_ListAdminOnly(t *testing.T) {
	mockRepo := new(MockFeedbackRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Feedback{{Name: "Asha"}}, nil)

	service := NewFeedbackService(mockRepo)

	_, err := service.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrAdminOnly)

	entries, err := service.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleAdmin})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
