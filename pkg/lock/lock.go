// Package lock serializes work on a single (slot, date) key.
//
// Three backends share the Locker contract: an in-process keyed mutex for a
// single replica, and Mongo or Redis leases when several replicas serve the
// same database.
package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrLockTimeout is returned when the lock could not be taken before the context ended.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Locker hands out exclusive access per key. The returned release func is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// SlotKey builds the key guarding one slot on one date.
func SlotKey(slotID, date string) string {
	return slotID + "|" + date
}

func timeoutError(key string, cause error) error {
	return fmt.Errorf("%w: key %s: %w", ErrLockTimeout, key, cause)
}
