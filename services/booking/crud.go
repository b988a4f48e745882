package booking

import (
	"context"
	"fmt"

	"mentorhub/models"
)

func (s *DefaultSessionBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking marks a scheduled booking cancelled. The consumed window stays
// a historical record; reclaimed time is not re-published.
func (s *DefaultSessionBookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	if err := s.Bookings.Cancel(ctx, bookingID, userID); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}
	return nil
}
