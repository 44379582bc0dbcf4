package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLock(t *testing.T) (*KeyedLock, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewKeyedLock(client, 5*time.Second), mr
}

func TestKeyedLock_AcquireAndRelease(t *testing.T) {
	lock, mr := newTestLock(t)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "KTVC/001/2024")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !mr.Exists("gate:lock:KTVC/001/2024") {
		t.Fatal("lock key should exist while held")
	}

	release()
	if mr.Exists("gate:lock:KTVC/001/2024") {
		t.Error("lock key should be deleted after release")
	}
}

func TestKeyedLock_BlocksSecondHolder(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "KTVC/001/2024")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	blockedCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	if _, err := lock.Acquire(blockedCtx, "KTVC/001/2024"); err == nil {
		t.Error("second Acquire for the same key should block until context deadline")
	}
}

func TestKeyedLock_IndependentKeys(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	releaseA, err := lock.Acquire(ctx, "KTVC/001/2024")
	if err != nil {
		t.Fatalf("Acquire A failed: %v", err)
	}
	defer releaseA()

	releaseB, err := lock.Acquire(ctx, "KTVC/002/2024")
	if err != nil {
		t.Fatalf("Acquire B should not be blocked by A: %v", err)
	}
	releaseB()
}

func TestKeyedLock_ReleaseIsOwnerScoped(t *testing.T) {
	lock, mr := newTestLock(t)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "KTVC/001/2024")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Simulate TTL expiry followed by another holder taking the lock.
	mr.Del("gate:lock:KTVC/001/2024")
	release2, err := lock.Acquire(ctx, "KTVC/001/2024")
	if err != nil {
		t.Fatalf("re-Acquire failed: %v", err)
	}
	defer release2()

	release()
	if !mr.Exists("gate:lock:KTVC/001/2024") {
		t.Error("stale release must not delete a lock held by a new owner")
	}
}
