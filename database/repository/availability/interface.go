// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository is the store for provider-published availability windows.
// Windows are only ever mutated (marked booked, split into fragments) inside the
// booking transaction owned by the booking repository.
type AvailabilityRepository interface {
	CreateMany(ctx context.Context, windows []models.AvailabilityWindow) ([]string, error)
	GetByID(ctx context.Context, windowID string) (*models.AvailabilityWindow, error)
	GetFreeByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
	// GetFreeCovering returns, per provider, the free windows that fully contain [start, end].
	GetFreeCovering(ctx context.Context, providerIDs []string, start, end time.Time) (map[string][]models.AvailabilityWindow, error)
	// HasOverlap reports whether the provider already has a free window overlapping [start, end).
	HasOverlap(ctx context.Context, providerID string, start, end time.Time) (bool, error)
	// DeleteUnbooked removes a window only while it is still free.
	DeleteUnbooked(ctx context.Context, providerID, windowID string) error
	// DeleteExpired removes free windows whose end is before the cutoff. Used by the sweep job.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability_windows"),
	}
}
