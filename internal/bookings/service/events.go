package service

import (
	"fmt"

	"flipfit/pkg/model"
)

func bookingConfirmedEvent(b *model.Booking, slot *model.Slot) model.NotificationEvent {
	return model.NotificationEvent{
		Event:     model.EventBookingConfirmed,
		UserID:    b.CustomerID,
		Title:     "Booking Confirmed",
		Message:   fmt.Sprintf("Your booking (ID: %s) has been confirmed for %s at %s", b.ID, b.BookingDate, slot.StartTime),
		Type:      model.NotificationBooking,
		BookingID: b.ID,
		SlotID:    b.SlotID,
		Date:      b.BookingDate,
	}
}

func bookingCancelledEvent(b *model.Booking) model.NotificationEvent {
	return model.NotificationEvent{
		Event:     model.EventBookingCancelled,
		UserID:    b.CustomerID,
		Title:     "Booking Cancelled",
		Message:   fmt.Sprintf("Your booking (ID: %s) has been cancelled successfully.", b.ID),
		Type:      model.NotificationCancellation,
		BookingID: b.ID,
		SlotID:    b.SlotID,
		Date:      b.BookingDate,
	}
}

func promotedEvent(b *model.Booking) model.NotificationEvent {
	return model.NotificationEvent{
		Event:  model.EventPromoted,
		UserID: b.CustomerID,
		Title:  "Promoted from Waitlist!",
		Message: fmt.Sprintf("Great news! You have been promoted from waitlist and booked for slot %s on %s. Booking ID: %s",
			b.SlotID, b.BookingDate, b.ID),
		Type:      model.NotificationPromotion,
		BookingID: b.ID,
		SlotID:    b.SlotID,
		Date:      b.BookingDate,
	}
}

func waitlistedEvent(e *model.WaitlistEntry) model.NotificationEvent {
	return model.NotificationEvent{
		Event:  model.EventWaitlisted,
		UserID: e.CustomerID,
		Title:  "Added to Waitlist",
		Message: fmt.Sprintf("You have been added to waitlist for slot %s on %s. You'll be notified when a seat becomes available.",
			e.SlotID, e.RequestedDate),
		Type:   model.NotificationGeneral,
		SlotID: e.SlotID,
		Date:   e.RequestedDate,
	}
}
