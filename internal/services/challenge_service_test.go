package services

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/mocks"
)

// fakeChallengeStore is an in-memory domain.ChallengeCodeRepository with the
// real matching semantics, so the issuance and consumption laws are tested
// end to end without a database.
type fakeChallengeStore struct {
	codes  []*domain.ChallengeCode
	nextID uint
}

func (f *fakeChallengeStore) Create(_ context.Context, code *domain.ChallengeCode) error {
	f.nextID++
	code.ID = f.nextID
	stored := *code
	f.codes = append(f.codes, &stored)
	return nil
}

func (f *fakeChallengeStore) FindPending(_ context.Context, studentID uint, now time.Time) (*domain.ChallengeCode, error) {
	for i := len(f.codes) - 1; i >= 0; i-- {
		c := f.codes[i]
		if c.StudentID == studentID && c.Pending(now) {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrChallengeNotFound
}

func (f *fakeChallengeStore) Consume(_ context.Context, studentID uint, code string, now time.Time) (bool, error) {
	for _, c := range f.codes {
		if c.StudentID == studentID && c.Code == code && c.Pending(now) {
			c.Used = true
			usedAt := now
			c.UsedAt = &usedAt
			return true, nil
		}
	}
	return false, nil
}

var _ domain.ChallengeCodeRepository = (*fakeChallengeStore)(nil)

func createChallengeServiceForTest(t *testing.T, now time.Time) (domain.ChallengeIssuer, *fakeChallengeStore, *mocks.MockNotificationService) {
	t.Helper()

	store := &fakeChallengeStore{}
	notificationSvc := mocks.NewMockNotificationService()
	clock := mocks.NewMockClock(now)
	return NewChallengeService(store, notificationSvc, clock), store, notificationSvc
}

var testStudent = &domain.Student{
	ID:              7,
	AdmissionNumber: "KTVC/007/2024",
	FirstName:       "Brian",
	LastName:        "Otieno",
	Phone:           "+254700000007",
	Role:            "student",
	Course:          "Electrical Engineering",
	CourseCode:      "EE-L4",
	IsActive:        true,
}

func TestChallengeServiceImpl_GetOrIssuePendingCode_IssuesOnce(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)
	svc, store, notificationSvc := createChallengeServiceForTest(t, now)
	ctx := context.Background()

	code, issued, err := svc.GetOrIssuePendingCode(ctx, testStudent)
	if err != nil {
		t.Fatalf("GetOrIssuePendingCode failed: %v", err)
	}
	if !issued {
		t.Error("first call should report a newly issued code")
	}
	if len(code.Code) != 6 {
		t.Errorf("expected 6-digit code, got %q", code.Code)
	}
	n, err := strconv.Atoi(code.Code)
	if err != nil || n < 100000 || n > 999999 {
		t.Errorf("code %q outside [100000, 999999]", code.Code)
	}
	wantExpiry := time.Date(2024, 5, 14, 23, 59, 59, 999000000, time.Local)
	if !code.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiry = %v, want end of issuance day %v", code.ExpiresAt, wantExpiry)
	}
	if len(store.codes) != 1 {
		t.Fatalf("expected 1 stored code, got %d", len(store.codes))
	}

	if len(notificationSvc.Delivered) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(notificationSvc.Delivered))
	}
	msg := notificationSvc.Delivered[0]
	if msg.RecipientID != testStudent.ID {
		t.Errorf("notification recipient = %d, want the student %d", msg.RecipientID, testStudent.ID)
	}
	if msg.Priority != "high" || msg.Type != "security" {
		t.Errorf("notification must be high-priority security, got %s/%s", msg.Priority, msg.Type)
	}
	if !strings.Contains(msg.Message, code.Code) {
		t.Error("notification message must include the code")
	}
	if !strings.Contains(strings.ToLower(msg.Message), "today") {
		t.Error("notification message must state same-day validity")
	}
}

func TestChallengeServiceImpl_GetOrIssuePendingCode_ReusesPending(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)
	svc, store, notificationSvc := createChallengeServiceForTest(t, now)
	ctx := context.Background()

	first, issued, err := svc.GetOrIssuePendingCode(ctx, testStudent)
	if err != nil || !issued {
		t.Fatalf("first issue failed: %v (issued=%v)", err, issued)
	}

	second, issued, err := svc.GetOrIssuePendingCode(ctx, testStudent)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if issued {
		t.Error("second call must reuse the pending code, not mint a new one")
	}
	if second.Code != first.Code {
		t.Errorf("reused code %q differs from original %q", second.Code, first.Code)
	}
	if len(store.codes) != 1 {
		t.Errorf("expected a single stored code row, got %d", len(store.codes))
	}
	if len(notificationSvc.Delivered) != 1 {
		t.Errorf("reuse must not resend the notification; got %d dispatches", len(notificationSvc.Delivered))
	}
}

func TestChallengeServiceImpl_GetOrIssuePendingCode_MintsAfterConsumption(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)
	svc, store, _ := createChallengeServiceForTest(t, now)
	ctx := context.Background()

	first, _, err := svc.GetOrIssuePendingCode(ctx, testStudent)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if ok, err := svc.ValidateAndConsume(ctx, testStudent, first.Code); err != nil || !ok {
		t.Fatalf("consume failed: ok=%v err=%v", ok, err)
	}

	second, issued, err := svc.GetOrIssuePendingCode(ctx, testStudent)
	if err != nil {
		t.Fatalf("re-issue failed: %v", err)
	}
	if !issued {
		t.Error("a consumed code is not pending; a fresh one must be minted")
	}
	if second.Code == first.Code && second.ID == first.ID {
		t.Error("must not hand back the consumed code")
	}
	if len(store.codes) != 2 {
		t.Errorf("consumed codes are retained for audit; expected 2 rows, got %d", len(store.codes))
	}
}

func TestChallengeServiceImpl_ValidateAndConsume_SingleUse(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)
	svc, _, _ := createChallengeServiceForTest(t, now)
	ctx := context.Background()

	code, _, err := svc.GetOrIssuePendingCode(ctx, testStudent)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	ok, err := svc.ValidateAndConsume(ctx, testStudent, code.Code)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if !ok {
		t.Fatal("first consumption of a pending code must succeed")
	}

	ok, err = svc.ValidateAndConsume(ctx, testStudent, code.Code)
	if err != nil {
		t.Fatalf("second consume errored: %v", err)
	}
	if ok {
		t.Error("a consumed code must never validate again")
	}
}

func TestChallengeServiceImpl_ValidateAndConsume_Rejections(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name        string
		setup       func(t *testing.T, svc domain.ChallengeIssuer, store *fakeChallengeStore) string
		description string
	}{
		{
			name: "wrong code",
			setup: func(t *testing.T, svc domain.ChallengeIssuer, store *fakeChallengeStore) string {
				if _, _, err := svc.GetOrIssuePendingCode(context.Background(), testStudent); err != nil {
					t.Fatalf("issue failed: %v", err)
				}
				return "000000"
			},
			description: "a code that was never issued must not consume",
		},
		{
			name: "expired code",
			setup: func(t *testing.T, _ domain.ChallengeIssuer, store *fakeChallengeStore) string {
				yesterday := now.Add(-24 * time.Hour)
				expired := &domain.ChallengeCode{
					StudentID:       testStudent.ID,
					AdmissionNumber: testStudent.AdmissionNumber,
					Code:            "314159",
					IssuedAt:        yesterday,
					ExpiresAt:       EndOfDay(yesterday),
				}
				if err := store.Create(context.Background(), expired); err != nil {
					t.Fatalf("seed failed: %v", err)
				}
				return "314159"
			},
			description: "an otherwise correct code past its expiry must fail",
		},
		{
			name: "no code issued at all",
			setup: func(t *testing.T, _ domain.ChallengeIssuer, _ *fakeChallengeStore) string {
				return "123456"
			},
			description: "consumption without issuance must fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := createChallengeServiceForTest(t, now)
			presented := tt.setup(t, svc, store)

			ok, err := svc.ValidateAndConsume(context.Background(), testStudent, presented)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Errorf("consumption should fail: %s", tt.description)
			}
			for _, c := range store.codes {
				if c.Used {
					t.Error("failed validation must not mutate any code")
				}
			}
		})
	}
}
