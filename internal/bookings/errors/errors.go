package errors

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "flipfit/pkg/errors"
)

// Repository sentinels.
var (
	ErrNotFound = errors.New("booking not found")

	ErrStatusTransition = errors.New("status transition rejected")

	ErrDuplicateEntry = errors.New("entry already exists")
)

// Domain sentinels carried inside the AppErrors below.
var (
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotInactive           = errors.New("slot is inactive")
	ErrSlotFull               = errors.New("slot is full")
	ErrConflictResolution     = errors.New("conflicting booking could not be cancelled")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrAlreadyCancelled       = errors.New("booking already cancelled")
	ErrCancellationFailed     = errors.New("booking cancellation failed")
	ErrDuplicateWaitlistEntry = errors.New("customer already waiting for slot")
	ErrStorage                = errors.New("storage failure")
	ErrLockTimeout            = errors.New("slot lock timeout")
	ErrNoAvailableSlot        = errors.New("no available slot")
)

const (
	CodeSlotNotFound             = "SLOT_NOT_FOUND"
	CodeSlotInactive             = "SLOT_INACTIVE"
	CodeSlotFull                 = "SLOT_FULL"
	CodeConflictResolutionFailed = "CONFLICT_RESOLUTION_FAILED"
	CodeBookingNotFound          = "BOOKING_NOT_FOUND"
	CodeAlreadyCancelled         = "ALREADY_CANCELLED"
	CodeCancellationFailed       = "CANCELLATION_FAILED"
	CodeStorageError             = "STORAGE_ERROR"
	CodeLockTimeout              = "LOCK_TIMEOUT"
)

func SlotNotFound(slotID string) *apperrors.AppError {
	return apperrors.Wrap(ErrSlotNotFound, CodeSlotNotFound, "Slot not found", http.StatusNotFound).
		WithDetail("slot_id", slotID)
}

func SlotInactive(slotID string) *apperrors.AppError {
	return apperrors.Wrap(ErrSlotInactive, CodeSlotInactive, "Slot is not active", http.StatusConflict).
		WithDetail("slot_id", slotID)
}

func SlotFull(slotID, date string) *apperrors.AppError {
	return apperrors.Wrap(ErrSlotFull, CodeSlotFull, fmt.Sprintf("No seats left on %s", date), http.StatusConflict).
		WithDetail("slot_id", slotID).
		WithDetail("date", date)
}

func ConflictResolutionFailed(bookingID string, cause error) *apperrors.AppError {
	return apperrors.Wrap(fmt.Errorf("%w: %w", ErrConflictResolution, cause), CodeConflictResolutionFailed,
		"Failed to cancel an overlapping booking", http.StatusConflict).
		WithDetail("booking_id", bookingID)
}

func BookingNotFound(bookingID string) *apperrors.AppError {
	return apperrors.Wrap(ErrBookingNotFound, CodeBookingNotFound, "Booking not found", http.StatusNotFound).
		WithDetail("booking_id", bookingID)
}

func AlreadyCancelled(bookingID string) *apperrors.AppError {
	return apperrors.Wrap(ErrAlreadyCancelled, CodeAlreadyCancelled, "Booking is already cancelled", http.StatusConflict).
		WithDetail("booking_id", bookingID)
}

func CancellationFailed(bookingID string, cause error) *apperrors.AppError {
	return apperrors.Wrap(fmt.Errorf("%w: %w", ErrCancellationFailed, cause), CodeCancellationFailed,
		"Booking could not be cancelled", http.StatusConflict).
		WithDetail("booking_id", bookingID)
}

func StorageError(operation string, cause error) *apperrors.AppError {
	return apperrors.Wrap(fmt.Errorf("%w: %w", ErrStorage, cause), CodeStorageError,
		"Storage failure during "+operation, http.StatusInternalServerError)
}

func LockTimeout(slotID, date string, cause error) *apperrors.AppError {
	return apperrors.Wrap(fmt.Errorf("%w: %w", ErrLockTimeout, cause), CodeLockTimeout,
		"Slot is busy, try again", http.StatusServiceUnavailable).
		WithDetail("slot_id", slotID).
		WithDetail("date", date)
}

func NoAvailableSlot(gymID string) *apperrors.AppError {
	return apperrors.Wrap(ErrNoAvailableSlot, apperrors.CodeNotFound, "No available slot found", http.StatusNotFound).
		WithDetail("gym_id", gymID)
}
