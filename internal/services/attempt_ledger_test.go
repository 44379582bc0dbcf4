package services

import (
	"context"
	"testing"
	"time"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/mocks"
)

func TestAttemptLedgerImpl_CountToday_UsesDayWindow(t *testing.T) {
	now := time.Date(2024, 5, 14, 14, 30, 0, 0, time.Local)
	repo := mocks.NewMockAttemptRepository()

	var gotFrom, gotTo time.Time
	var gotAdmission string
	repo.CountInWindowFunc = func(_ context.Context, admissionNumber string, from, to time.Time) (int64, error) {
		gotAdmission, gotFrom, gotTo = admissionNumber, from, to
		return 3, nil
	}

	ledger := NewAttemptLedger(repo, mocks.NewMockClock(now))
	count, err := ledger.CountToday(context.Background(), "KTVC/007/2024")
	if err != nil {
		t.Fatalf("CountToday failed: %v", err)
	}

	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if gotAdmission != "KTVC/007/2024" {
		t.Errorf("admission number = %q", gotAdmission)
	}
	wantFrom, wantTo := DayBounds(now)
	if !gotFrom.Equal(wantFrom) || !gotTo.Equal(wantTo) {
		t.Errorf("window = [%v, %v], want [%v, %v]", gotFrom, gotTo, wantFrom, wantTo)
	}
}

func TestAttemptLedgerImpl_Record(t *testing.T) {
	now := time.Date(2024, 5, 14, 8, 5, 0, 0, time.Local)
	repo := mocks.NewMockAttemptRepository()

	var stored *domain.AttemptEntry
	repo.CreateFunc = func(_ context.Context, entry *domain.AttemptEntry) error {
		entry.ID = 11
		stored = entry
		return nil
	}

	expiry := now.Add(48 * time.Hour)
	ledger := NewAttemptLedger(repo, mocks.NewMockClock(now))
	entry, err := ledger.Record(context.Background(), testStudent, domain.OutcomeValid, &expiry, 42)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if stored == nil {
		t.Fatal("entry was not persisted")
	}
	if entry.ID != 11 {
		t.Errorf("id = %d, want the id assigned by the store", entry.ID)
	}
	if entry.StudentID != testStudent.ID || entry.AdmissionNumber != testStudent.AdmissionNumber {
		t.Error("entry must denormalize the student reference and admission number")
	}
	if !entry.VerifiedAt.Equal(now) {
		t.Errorf("verifiedAt = %v, want the clock instant %v", entry.VerifiedAt, now)
	}
	if entry.VerifiedTime != "08:05" {
		t.Errorf("verifiedTime = %q, want 08:05", entry.VerifiedTime)
	}
	if entry.ExpirySnapshot == nil || !entry.ExpirySnapshot.Equal(expiry) {
		t.Error("entry must snapshot the fee expiry in effect at attempt time")
	}
	if entry.AgentID != 42 {
		t.Errorf("agentID = %d, want 42", entry.AgentID)
	}
	if entry.ReceiptID == "" {
		t.Error("entry must carry a receipt id")
	}
}

func TestAttemptLedgerImpl_MostRecentToday_None(t *testing.T) {
	now := time.Date(2024, 5, 14, 8, 5, 0, 0, time.Local)
	ledger := NewAttemptLedger(mocks.NewMockAttemptRepository(), mocks.NewMockClock(now))

	entry, err := ledger.MostRecentToday(context.Background(), "KTVC/007/2024")
	if err != nil {
		t.Fatalf("MostRecentToday failed: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil for a student with no attempts today, got %+v", entry)
	}
}

func TestAttemptLedgerImpl_History_DefaultLimit(t *testing.T) {
	now := time.Date(2024, 5, 14, 8, 5, 0, 0, time.Local)
	repo := mocks.NewMockAttemptRepository()

	var gotLimit int
	repo.ListByAdmissionNumberFunc = func(_ context.Context, _ string, limit int) ([]domain.AttemptEntry, error) {
		gotLimit = limit
		return nil, nil
	}

	ledger := NewAttemptLedger(repo, mocks.NewMockClock(now))
	if _, err := ledger.History(context.Background(), "KTVC/007/2024", 0); err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want the default of 50", gotLimit)
	}
}
