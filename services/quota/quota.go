// File: services/quota/quota.go
package quota

import (
	"context"
	"fmt"
	"time"

	userRepo "mentorhub/database/repository/user"
	"mentorhub/models"
	"mentorhub/utils"

	"go.uber.org/zap"
)

// CheckAndReset applies the plan-expiry downgrade rule: an elevated plan whose
// expiry has passed collapses back to the base tier with zeroed counters and a
// cleared expiry. The reset is idempotent; applying it twice yields the same
// state as applying it once. The returned bool reports whether the state changed.
func CheckAndReset(p models.PlanState, now time.Time) (models.PlanState, bool) {
	if p.Tier != models.TierElevated || p.ExpiresAt == nil || !p.ExpiresAt.Before(now) {
		return p, false
	}
	return BasePlan(), true
}

// HasCapacity reports whether the bucket for the given session kind still has
// headroom. Enforcement happens here (and in the transaction's guarded
// increment), never in the data itself.
func HasCapacity(p models.PlanState, kind string) bool {
	used, limit := Usage(p, kind)
	return used < limit
}

// Usage returns the used counter and limit for a session kind's bucket.
func Usage(p models.PlanState, kind string) (used, limit int) {
	if kind == models.SessionKindInterview {
		return p.InterviewsUsed, p.InterviewsLimit
	}
	return p.GuidanceUsed, p.GuidanceLimit
}

// Upgrade returns the plan state after a paid upgrade: elevated limits, zeroed
// counters, and expiry extended one calendar month from max(now, currentExpiry).
// Paying again always yields a fresh full month of the current limits.
func Upgrade(p models.PlanState, now time.Time) models.PlanState {
	from := now
	if p.ExpiresAt != nil && p.ExpiresAt.After(now) {
		from = *p.ExpiresAt
	}
	expiry := from.AddDate(0, 1, 0)
	return models.PlanState{
		Tier:            models.TierElevated,
		InterviewsUsed:  0,
		GuidanceUsed:    0,
		InterviewsLimit: ElevatedInterviewLimit,
		GuidanceLimit:   ElevatedGuidanceLimit,
		ExpiresAt:       &expiry,
	}
}

// Ledger wires the pure quota rules to the user store. The usage increment
// itself is not here: it runs inside the booking transaction so usage can
// never drift from committed bookings.
type Ledger struct {
	Users userRepo.UserRepository
}

// CurrentState loads the consumer's plan, applying (and persisting) the lazy
// expiry reset if due.
func (l *Ledger) CurrentState(ctx context.Context, userID string) (models.PlanState, error) {
	usr, err := l.Users.GetByID(ctx, userID)
	if err != nil {
		return models.PlanState{}, fmt.Errorf("failed to load quota state: %w", err)
	}

	plan, changed := CheckAndReset(usr.Plan, time.Now())
	if changed {
		if err := l.Users.UpdatePlan(ctx, userID, plan); err != nil {
			return models.PlanState{}, fmt.Errorf("failed to persist plan reset: %w", err)
		}
		utils.GetLogger().Info("plan expired, reset to base tier",
			zap.String("userID", userID))
	}
	return plan, nil
}

// ApplyUpgrade is the entry point for the payments collaborator: it upgrades
// the consumer's plan and persists the new state.
func (l *Ledger) ApplyUpgrade(ctx context.Context, userID string) (models.PlanState, error) {
	usr, err := l.Users.GetByID(ctx, userID)
	if err != nil {
		return models.PlanState{}, fmt.Errorf("failed to load user for upgrade: %w", err)
	}

	plan := Upgrade(usr.Plan, time.Now())
	if err := l.Users.UpdatePlan(ctx, userID, plan); err != nil {
		return models.PlanState{}, fmt.Errorf("failed to persist plan upgrade: %w", err)
	}
	return plan, nil
}
