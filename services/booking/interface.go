package booking

import (
	"context"

	availabilityRepo "mentorhub/database/repository/availability"
	bookingRepo "mentorhub/database/repository/booking"
	providerRepo "mentorhub/database/repository/provider"
	"mentorhub/models"
	"mentorhub/services/notification"
	"mentorhub/services/quota"
)

// SessionBookingService is the allocation engine's public surface: the two
// booking variants plus the consumer-facing booking queries.
type SessionBookingService interface {
	// BookInterview runs the full candidate search, scoring and reservation
	// for a structured session.
	BookInterview(ctx context.Context, userID string, in models.InterviewBookingInput) (*models.BookingResult, error)
	// BookGuidance reserves an unstructured session with an explicitly chosen
	// mentor; the reservation, split and quota steps are identical.
	BookGuidance(ctx context.Context, userID string, in models.GuidanceBookingInput) (*models.BookingResult, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
}

// DefaultSessionBookingService is the production allocator.
type DefaultSessionBookingService struct {
	Providers    providerRepo.ProviderRepository
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	Quota        *quota.Ledger
	Notifier     notification.NotificationService
}
