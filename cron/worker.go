package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mentorhub/config"
	availabilityRepo "mentorhub/database/repository/availability"
	notificationRepo "mentorhub/database/repository/notification"
	"mentorhub/models"
	"mentorhub/services/notification"
	"mentorhub/utils"
)

// InitConfirmationWorker runs the async worker delivering booking confirmations
// in the background.
func InitConfirmationWorker(notifRepo notificationRepo.NotificationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingConfirmed, handleBookingConfirmed(notifRepo))

	go func() {
		log.Println("[ConfirmationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleBookingConfirmed writes an in-app notification record for both parties
// of a committed booking.
func handleBookingConfirmed(notifRepo notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingConfirmedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid confirmation payload", zap.Error(err))
			return err
		}

		data := map[string]string{
			"bookingId":       p.BookingID,
			"kind":            p.Kind,
			"start":           p.Start.Format(time.RFC3339),
			"durationMinutes": fmt.Sprintf("%d", p.DurationMinutes),
		}

		recipients := []struct {
			id, role, body string
		}{
			{p.UserID, "user", fmt.Sprintf("Your %s session on %s is confirmed.", p.Kind, p.Start.Format("Jan 2 15:04"))},
			{p.ProviderID, "provider", fmt.Sprintf("A %s session on %s has been booked with you.", p.Kind, p.Start.Format("Jan 2 15:04"))},
		}

		for _, r := range recipients {
			n := models.Notification{
				ID:            uuid.New().String(),
				RecipientID:   r.id,
				RecipientRole: r.role,
				Title:         "Session confirmed",
				Body:          r.body,
				Data:          data,
				CreatedAt:     time.Now(),
			}
			if err := notifRepo.Create(ctx, n); err != nil {
				utils.GetLogger().Error("failed to persist confirmation notification",
					zap.String("recipientID", r.id), zap.Error(err))
				return err
			}
		}

		utils.GetLogger().Info("booking confirmation delivered",
			zap.String("bookingID", p.BookingID),
			zap.String("userID", p.UserID),
			zap.String("providerID", p.ProviderID))
		return nil
	}
}

// InitExpirySweep schedules an hourly cleanup that drops availability windows
// whose end time has passed without being booked.
func InitExpirySweep(availRepo availabilityRepo.AvailabilityRepository) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted, err := availRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			utils.GetLogger().Error("availability expiry sweep failed", zap.Error(err))
			return
		}
		if deleted > 0 {
			utils.GetLogger().Info("availability expiry sweep completed", zap.Int64("deleted", deleted))
		}
	})
	if err != nil {
		utils.GetLogger().Sugar().Fatalf("failed to schedule expiry sweep: %v", err)
	}
	c.Start()
	return c
}
