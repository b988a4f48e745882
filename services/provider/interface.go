package provider

import (
	"context"

	availabilityRepo "mentorhub/database/repository/availability"
	providerRepo "mentorhub/database/repository/provider"
	"mentorhub/models"
)

// ProviderService covers the provider-facing availability management the
// allocation engine feeds on: publishing windows, listing them, and cleaning
// up unbooked ones.
type ProviderService interface {
	PublishWindows(ctx context.Context, providerID string, inputs []models.PublishWindowInput) ([]models.AvailabilityWindow, error)
	GetAvailability(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, providerID, windowID string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo         providerRepo.ProviderRepository
	Availability availabilityRepo.AvailabilityRepository
}
