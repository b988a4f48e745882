package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorhub/models"
	"mentorhub/services/booking"
	"mentorhub/utils"

	"go.uber.org/zap"
)

// PublishWindows validates and stores a batch of new availability windows for
// an approved provider. Windows must be future-dated, well-formed, at least
// one fragment long, and must not overlap the provider's existing free windows.
func (s *DefaultProviderService) PublishWindows(ctx context.Context, providerID string, inputs []models.PublishWindowInput) ([]models.AvailabilityWindow, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no windows supplied")
	}

	prov, err := s.Repo.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("provider not found: %w", err)
	}
	if prov.Status != models.ProviderStatusApproved {
		return nil, fmt.Errorf("provider %s is not approved to publish availability", providerID)
	}

	now := time.Now()
	windows := make([]models.AvailabilityWindow, 0, len(inputs))
	for _, in := range inputs {
		if !in.Start.Before(in.End) {
			return nil, fmt.Errorf("window start must precede end")
		}
		if in.End.Before(now) {
			return nil, fmt.Errorf("window must not be entirely in the past")
		}
		if int(in.End.Sub(in.Start)/time.Minute) < booking.MinFragmentMinutes {
			return nil, fmt.Errorf("window must be at least %d minutes long", booking.MinFragmentMinutes)
		}
		overlap, err := s.Availability.HasOverlap(ctx, providerID, in.Start, in.End)
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if overlap {
			return nil, fmt.Errorf("window overlaps an existing free window")
		}
		windows = append(windows, models.AvailabilityWindow{
			ProviderID: providerID,
			Start:      in.Start,
			End:        in.End,
		})
	}

	ids, err := s.Availability.CreateMany(ctx, windows)
	if err != nil {
		return nil, fmt.Errorf("failed to store windows: %w", err)
	}
	for i := range windows {
		windows[i].ID = ids[i]
	}

	s.invalidateCache(ctx, providerID)
	return windows, nil
}

// GetAvailability lists the provider's free windows, with a short-lived Redis
// cache in front of the store.
func (s *DefaultProviderService) GetAvailability(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	cacheClient := utils.GetCacheClient()
	cacheKey := utils.AvailabilityCachePrefix + providerID

	if cached, err := cacheClient.Get(ctx, cacheKey).Result(); err == nil {
		var windows []models.AvailabilityWindow
		if err := json.Unmarshal([]byte(cached), &windows); err == nil {
			return windows, nil
		}
	}

	windows, err := s.Availability.GetFreeByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	if data, err := json.Marshal(windows); err == nil {
		if err := cacheClient.Set(ctx, cacheKey, data, utils.AvailabilityCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache availability listing",
				zap.String("providerID", providerID), zap.Error(err))
		}
	}
	return windows, nil
}

// DeleteWindow removes a window only while it is still unbooked.
func (s *DefaultProviderService) DeleteWindow(ctx context.Context, providerID, windowID string) error {
	if err := s.Availability.DeleteUnbooked(ctx, providerID, windowID); err != nil {
		return fmt.Errorf("failed to delete window %s: %w", windowID, err)
	}
	s.invalidateCache(ctx, providerID)
	return nil
}

func (s *DefaultProviderService) invalidateCache(ctx context.Context, providerID string) {
	if err := utils.GetCacheClient().Del(ctx, utils.AvailabilityCachePrefix+providerID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
