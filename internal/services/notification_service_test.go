package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/mocks"
)

func TestNotificationServiceImpl_Deliver(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(repo *mocks.MockNotificationRepository, sms *mocks.MockSMSGateway, dir *mocks.MockStudentDirectory)
		expectErr   bool
		expectSMS   int
		description string
	}{
		{
			name: "persists and mirrors over SMS",
			setupMocks: func(_ *mocks.MockNotificationRepository, _ *mocks.MockSMSGateway, dir *mocks.MockStudentDirectory) {
				dir.FindByIDFunc = func(_ context.Context, _ uint) (*domain.Student, error) {
					return testStudent, nil
				}
			},
			expectErr:   false,
			expectSMS:   1,
			description: "recipient with a phone gets the SMS mirror",
		},
		{
			name: "recipient without a phone",
			setupMocks: func(_ *mocks.MockNotificationRepository, _ *mocks.MockSMSGateway, dir *mocks.MockStudentDirectory) {
				dir.FindByIDFunc = func(_ context.Context, _ uint) (*domain.Student, error) {
					return &domain.Student{ID: 7, AdmissionNumber: "KTVC/007/2024"}, nil
				}
			},
			expectErr:   false,
			expectSMS:   0,
			description: "no phone means the in-app record stands alone",
		},
		{
			name:        "unresolvable recipient",
			setupMocks:  func(_ *mocks.MockNotificationRepository, _ *mocks.MockSMSGateway, _ *mocks.MockStudentDirectory) {},
			expectErr:   false,
			expectSMS:   0,
			description: "directory miss skips the SMS but keeps the record",
		},
		{
			name: "SMS failure is not fatal",
			setupMocks: func(_ *mocks.MockNotificationRepository, sms *mocks.MockSMSGateway, dir *mocks.MockStudentDirectory) {
				dir.FindByIDFunc = func(_ context.Context, _ uint) (*domain.Student, error) {
					return testStudent, nil
				}
				sms.SendSMSFunc = func(_, _ string) error { return errors.New("twilio down") }
			},
			expectErr:   false,
			expectSMS:   1,
			description: "SMS mirroring is best effort",
		},
		{
			name: "persistence failure is fatal",
			setupMocks: func(repo *mocks.MockNotificationRepository, _ *mocks.MockSMSGateway, _ *mocks.MockStudentDirectory) {
				repo.CreateFunc = func(_ context.Context, _ *domain.Notification) error {
					return errors.New("connection refused")
				}
			},
			expectErr:   true,
			expectSMS:   0,
			description: "the in-app record is the source of truth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockNotificationRepository()
			sms := mocks.NewMockSMSGateway()
			dir := mocks.NewMockStudentDirectory()
			tt.setupMocks(repo, sms, dir)

			svc := NewNotificationService(repo, sms, dir)
			err := svc.Deliver(context.Background(), &domain.Notification{
				RecipientID: testStudent.ID,
				Type:        "security",
				Title:       "Gate Pass Verification Code",
				Message:     "Share code 482913 with gate security.",
				Priority:    "high",
			})

			if tt.expectErr && err == nil {
				t.Fatalf("expected error (%s)", tt.description)
			}
			if !tt.expectErr && err != nil {
				t.Fatalf("unexpected error: %v (%s)", err, tt.description)
			}
			if len(sms.Sent) != tt.expectSMS {
				t.Errorf("SMS sends = %d, want %d (%s)", len(sms.Sent), tt.expectSMS, tt.description)
			}
		})
	}
}
