// File: database/repository/user/user_interface.go
package userRepo

import (
	"context"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository exposes consumer reads plus the plan-state writes the quota
// ledger performs outside the booking transaction (lazy reset, upgrade).
// The usage-counter increment itself lives in the booking repository's
// transaction and never goes through this interface.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePlan(ctx context.Context, userID string, plan models.PlanState) error
	EnsureIndexes() error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{coll: database.DB().Collection("users")}
}
