// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository persists in-app notification records written by the
// background delivery worker.
type NotificationRepository interface {
	Create(ctx context.Context, n models.Notification) error
	ListByRecipient(ctx context.Context, recipientID, role string) ([]models.Notification, error)
	EnsureIndexes() error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.DB().Collection("notifications")}
}
