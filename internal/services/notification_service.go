package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// NotificationServiceImpl implements domain.NotificationService. Messages
// are persisted to the recipient's in-app feed and mirrored over SMS when
// the directory knows a phone number for them.
type NotificationServiceImpl struct {
	repo      domain.NotificationRepository
	sms       domain.SMSGateway
	directory domain.StudentDirectory
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo domain.NotificationRepository, sms domain.SMSGateway, directory domain.StudentDirectory) domain.NotificationService {
	return &NotificationServiceImpl{
		repo:      repo,
		sms:       sms,
		directory: directory,
	}
}

// Deliver implements domain.NotificationService. The in-app record is the
// source of truth; SMS mirroring is best-effort and never fails the call.
func (s *NotificationServiceImpl) Deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	recipient, err := s.directory.FindByID(ctx, n.RecipientID)
	if err != nil {
		log.Printf("notification recipient %d not resolvable, skipping SMS: %v", n.RecipientID, err)
		return nil
	}
	if recipient.Phone == "" {
		return nil
	}
	if err := s.sms.SendSMS(recipient.Phone, n.Message); err != nil {
		log.Printf("SMS mirror to %d failed: %v", n.RecipientID, err)
	}
	return nil
}
