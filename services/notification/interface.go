package notification

import (
	"context"

	"mentorhub/models"
)

// TypeBookingConfirmed is the task type for booking confirmation delivery.
const TypeBookingConfirmed = "booking:confirmed"

// NotificationService accepts a booking-confirmation payload. Delivery is
// asynchronous; a failure here must never affect the booking outcome.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
}
