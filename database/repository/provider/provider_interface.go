// File: database/repository/provider/provider_interface.go
package providerRepo

import (
	"context"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CandidateCriteria are the hard filters applied before scoring. Role matching
// stays a soft score component and is deliberately absent here.
type CandidateCriteria struct {
	SessionKind   string
	InterviewType string
	Difficulty    string
}

// ProviderRepository exposes the provider reads the allocator needs.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// CandidateSearch returns approved providers passing the hard filters.
	CandidateSearch(ctx context.Context, criteria CandidateCriteria) ([]models.Provider, error)
	EnsureIndexes() error
}

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	return &MongoProviderRepo{coll: database.DB().Collection("providers")}
}
