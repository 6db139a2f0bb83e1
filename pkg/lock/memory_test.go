package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := m.Lock(context.Background(), SlotKey("SLT1", "2025-01-01"))
			if err != nil {
				t.Errorf("Lock() error: %v", err)
				return
			}
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected at most one holder, saw %d", maxInside)
	}
	if m.Len() != 0 {
		t.Errorf("expected keys to be cleaned up, %d remain", m.Len())
	}
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	m := NewKeyedMutex()
	releaseA, err := m.Lock(context.Background(), SlotKey("SLT1", "2025-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	releaseB, err := m.Lock(ctx, SlotKey("SLT1", "2025-01-02"))
	if err != nil {
		t.Fatalf("other date should not block: %v", err)
	}
	releaseB()
}

func TestKeyedMutex_TimesOut(t *testing.T) {
	m := NewKeyedMutex()
	release, err := m.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Lock(ctx, "k")
	if !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the context cause to be preserved, got %v", err)
	}

	release()
	release()
	if m.Len() != 0 {
		t.Errorf("expected no tracked keys, got %d", m.Len())
	}
}
