package service

import (
	"context"
	"fmt"

	apperrors "innoreg/internal/errors"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

// FeedbackService handles contact-form messages.
type FeedbackService interface {
	Submit(ctx context.Context, name, email, message string) (*model.Feedback, error)
	List(ctx context.Context, actor Actor) ([]model.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo}
}

// Submit stores a contact-form message.
func (s *feedbackService) Submit(ctx context.Context, name, email, message string) (*model.Feedback, error) {
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: name, email and message are all required", apperrors.ErrMissingFields)
	}

	feedback := &model.Feedback{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return feedback, nil
}

// List returns all feedback, newest first. Admin only.
func (s *feedbackService) List(ctx context.Context, actor Actor) ([]model.Feedback, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}
	return s.feedbackRepo.List(ctx)
}
