// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorhub/models"
)

func (r *mongoAvailabilityRepo) CreateMany(ctx context.Context, windows []models.AvailabilityWindow) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(windows))
	ids := make([]string, len(windows))
	now := time.Now()
	for i, w := range windows {
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		docs[i] = w
		ids[i] = w.ID
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to insert availability windows: %w", err)
	}
	return ids, nil
}

func (r *mongoAvailabilityRepo) GetByID(ctx context.Context, windowID string) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var w models.AvailabilityWindow
	if err := r.coll.FindOne(ctx, bson.M{"id": windowID}).Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to fetch window %s: %w", windowID, err)
	}
	return &w, nil
}

func (r *mongoAvailabilityRepo) DeleteUnbooked(ctx context.Context, providerID, windowID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": windowID, "providerId": providerID, "booked": false}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete window %s: %w", windowID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"booked": false, "end": bson.M{"$lt": cutoff}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired windows: %w", err)
	}
	return res.DeletedCount, nil
}
