package mocks

import (
	"context"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	DeliverFunc func(ctx context.Context, n *domain.Notification) error
	Delivered   []*domain.Notification
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// Deliver records the notification and applies the configured behavior
func (m *MockNotificationService) Deliver(ctx context.Context, n *domain.Notification) error {
	m.Delivered = append(m.Delivered, n)
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, n)
	}
	// Default behavior: success (nothing actually dispatched in tests)
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)

// MockNotificationRepository implements domain.NotificationRepository for testing
type MockNotificationRepository struct {
	CreateFunc func(ctx context.Context, n *domain.Notification) error
	Created    []*domain.Notification
}

// NewMockNotificationRepository creates a new MockNotificationRepository with default behaviors
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

// Create persists an in-app notification
func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m.Created = append(m.Created, n)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationRepository = (*MockNotificationRepository)(nil)

// MockSMSGateway implements domain.SMSGateway for testing
type MockSMSGateway struct {
	SendSMSFunc func(to, message string) error
	Sent        []string
}

// NewMockSMSGateway creates a new MockSMSGateway with default behaviors
func NewMockSMSGateway() *MockSMSGateway {
	return &MockSMSGateway{}
}

// SendSMS sends an SMS message
func (m *MockSMSGateway) SendSMS(to, message string) error {
	m.Sent = append(m.Sent, message)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: success (no actual SMS sent in tests)
	return nil
}

// Compile-time interface compliance verification
var _ domain.SMSGateway = (*MockSMSGateway)(nil)
