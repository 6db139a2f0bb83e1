package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "flipfit/internal/bookings/errors"
	"flipfit/pkg/lock"
	"flipfit/pkg/metrics"
)

// slotLocks takes the (slot, date) lock with the configured acquire timeout and records the wait.
type slotLocks struct {
	locker  lock.Locker
	backend string
	timeout time.Duration
}

func (l *slotLocks) acquire(ctx context.Context, slotID, date string) (func(), error) {
	start := time.Now()

	lockCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	release, err := l.locker.Lock(lockCtx, lock.SlotKey(slotID, date))
	waited := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordLockWait(l.backend, metrics.StatusFailure, waited)
		if errors.Is(err, lock.ErrLockTimeout) {
			return nil, bookingserrors.LockTimeout(slotID, date, err)
		}
		return nil, bookingserrors.StorageError("lock acquisition", err)
	}

	metrics.RecordLockWait(l.backend, metrics.StatusSuccess, waited)
	return release, nil
}
