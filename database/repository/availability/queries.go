// File: database/repository/availability/queries.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorhub/models"
)

func (r *mongoAvailabilityRepo) GetFreeByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "booked": false}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query windows for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode windows: %w", err)
	}
	return windows, nil
}

// GetFreeCovering returns the free windows that fully contain [start, end],
// grouped by provider. Sorted ascending by start so callers get a
// deterministic ordering.
func (r *mongoAvailabilityRepo) GetFreeCovering(ctx context.Context, providerIDs []string, start, end time.Time) (map[string][]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": bson.M{"$in": providerIDs},
		"booked":     false,
		"start":      bson.M{"$lte": start},
		"end":        bson.M{"$gte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query covering windows: %w", err)
	}
	defer cursor.Close(ctx)

	byProvider := make(map[string][]models.AvailabilityWindow)
	for cursor.Next(ctx) {
		var w models.AvailabilityWindow
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode window: %w", err)
		}
		byProvider[w.ProviderID] = append(byProvider[w.ProviderID], w)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on covering windows: %w", err)
	}
	return byProvider, nil
}

func (r *mongoAvailabilityRepo) HasOverlap(ctx context.Context, providerID string, start, end time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"booked":     false,
		"start":      bson.M{"$lt": end},
		"end":        bson.M{"$gt": start},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check window overlap: %w", err)
	}
	return count > 0, nil
}
