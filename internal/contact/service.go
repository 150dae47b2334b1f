package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Submit validates and stores a contact form submission.
func (s *Service) Submit(ctx context.Context, name, email, body string) (*Message, error) {
	msg := Message{
		Name:  name,
		Email: email,
		Body:  body,
	}
	if err := msg.Normalize(); err != nil {
		return nil, err
	}
	msg.ID = uuid.NewString()
	msg.ReceivedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, msg); err != nil {
		s.logger.Error("contact message save failed", zap.String("id", msg.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("contact message received", zap.String("id", msg.ID))
	return &msg, nil
}
