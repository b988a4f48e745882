package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mentorhub/models"
	"mentorhub/utils"
)

// AsynqNotificationService enqueues confirmation tasks onto the Redis-backed
// task queue; the background worker performs the actual delivery.
type AsynqNotificationService struct {
	Client *asynq.Client
}

// NewAsynqNotificationService constructs the production NotificationService.
func NewAsynqNotificationService(client *asynq.Client) *AsynqNotificationService {
	return &AsynqNotificationService{Client: client}
}

func (s *AsynqNotificationService) SendBookingConfirmation(ctx context.Context, booking models.Booking) error {
	payload := models.BookingConfirmedPayload{
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		ProviderID:      booking.ProviderID,
		Kind:            booking.Kind,
		Start:           booking.Start,
		DurationMinutes: booking.DurationMinutes,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingConfirmed, data)
	info, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("failed to enqueue confirmation task: %w", err)
	}

	utils.GetLogger().Debug("booking confirmation enqueued",
		zap.String("bookingID", booking.ID),
		zap.String("taskID", info.ID))
	return nil
}
