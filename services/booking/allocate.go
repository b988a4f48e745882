package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "mentorhub/database/repository/booking"
	providerRepo "mentorhub/database/repository/provider"
	"mentorhub/models"
	"mentorhub/services/quota"
	"mentorhub/utils"
)

// BookInterview allocates a structured session: validate, quota gate,
// candidate search under the hard filters, score and rank, then reserve the
// winner's best-fit window atomically.
func (s *DefaultSessionBookingService) BookInterview(ctx context.Context, userID string, in models.InterviewBookingInput) (*models.BookingResult, error) {
	logger := utils.GetLogger()
	now := time.Now()

	if err := validateRequest(in.Start, in.DurationMinutes, now); err != nil {
		return nil, err
	}
	reqStart := in.Start
	reqEnd := in.Start.Add(time.Duration(in.DurationMinutes) * time.Minute)

	plan, err := s.checkQuota(ctx, userID, models.SessionKindInterview)
	if err != nil {
		return nil, err
	}

	// Hard filters: approval, offered kind, interview type, difficulty. Role
	// matching stays soft and is handled by the scorer.
	criteria := providerRepo.CandidateCriteria{
		SessionKind:   models.SessionKindInterview,
		InterviewType: in.InterviewType,
		Difficulty:    in.Difficulty,
	}
	providers, err := s.Providers.CandidateSearch(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("candidate search failed: %w", err)
	}
	if len(providers) == 0 {
		return nil, ErrNoEligibleProvider
	}

	candidates, err := s.gatherCandidates(ctx, providers, reqStart, reqEnd, now)
	if err != nil {
		return nil, err
	}

	ranked := ScoreAndRank(candidates, in.Role, reqStart, reqEnd)
	if len(ranked) == 0 {
		return nil, ErrNoEligibleProvider
	}
	winner := ranked[0]

	logger.Info("candidate selected",
		zap.String("userID", userID),
		zap.String("providerID", winner.Provider.ID),
		zap.Int("score", winner.Score),
		zap.Int("candidates", len(ranked)))

	booking := models.Booking{
		ID:              uuid.New().String(),
		UserID:          userID,
		ProviderID:      winner.Provider.ID,
		Kind:            models.SessionKindInterview,
		Role:            in.Role,
		Difficulty:      in.Difficulty,
		InterviewType:   in.InterviewType,
		Start:           reqStart,
		DurationMinutes: in.DurationMinutes,
		Status:          models.BookingStatusScheduled,
		WindowID:        winner.BestFit.ID,
		CreatedAt:       now,
	}

	return s.commit(ctx, booking, winner.BestFit, plan)
}

// BookGuidance allocates an unstructured session with an explicit mentor. No
// candidate search runs; the reservation, split and quota steps are shared
// with the interview path.
func (s *DefaultSessionBookingService) BookGuidance(ctx context.Context, userID string, in models.GuidanceBookingInput) (*models.BookingResult, error) {
	now := time.Now()

	if err := validateRequest(in.Start, in.DurationMinutes, now); err != nil {
		return nil, err
	}
	reqStart := in.Start
	reqEnd := in.Start.Add(time.Duration(in.DurationMinutes) * time.Minute)

	plan, err := s.checkQuota(ctx, userID, models.SessionKindGuidance)
	if err != nil {
		return nil, err
	}

	provider, err := s.Providers.GetByID(ctx, in.ProviderID)
	if err != nil {
		return nil, ErrNoEligibleProvider
	}
	if provider.Status != models.ProviderStatusApproved || !provider.OffersKind(models.SessionKindGuidance) {
		return nil, ErrNoEligibleProvider
	}

	covering, err := s.Availability.GetFreeCovering(ctx, []string{provider.ID}, reqStart, reqEnd)
	if err != nil {
		return nil, fmt.Errorf("availability query failed: %w", err)
	}
	bestFit, ok := BestFitWindow(covering[provider.ID], reqStart, reqEnd)
	if !ok {
		return nil, ErrNoAvailableSlot
	}

	booking := models.Booking{
		ID:              uuid.New().String(),
		UserID:          userID,
		ProviderID:      provider.ID,
		Kind:            models.SessionKindGuidance,
		Topic:           in.Topic,
		Start:           reqStart,
		DurationMinutes: in.DurationMinutes,
		Status:          models.BookingStatusScheduled,
		WindowID:        bestFit.ID,
		CreatedAt:       now,
	}

	return s.commit(ctx, booking, bestFit, plan)
}

// validateRequest rejects malformed or past-dated requests.
func validateRequest(start time.Time, durationMinutes int, now time.Time) error {
	if durationMinutes <= 0 {
		return &InvalidInputError{Reason: "duration must be positive"}
	}
	if !start.After(now) {
		return &InvalidInputError{Reason: "requested start must be in the future"}
	}
	return nil
}

// checkQuota loads the consumer's plan (applying the lazy expiry reset) and
// gates on bucket capacity.
func (s *DefaultSessionBookingService) checkQuota(ctx context.Context, userID, kind string) (models.PlanState, error) {
	plan, err := s.Quota.CurrentState(ctx, userID)
	if err != nil {
		return models.PlanState{}, err
	}
	if !quota.HasCapacity(plan, kind) {
		used, limit := quota.Usage(plan, kind)
		return models.PlanState{}, &LimitReachedError{
			Kind:  kind,
			Used:  used,
			Limit: limit,
			Tier:  plan.Tier,
		}
	}
	return plan, nil
}

// gatherCandidates joins the hard-filtered providers with their covering free
// windows and upcoming-session counts. Reads run without locks; the commit-time
// re-validation inside the transaction is the correctness backstop.
func (s *DefaultSessionBookingService) gatherCandidates(ctx context.Context, providers []models.Provider, reqStart, reqEnd time.Time, now time.Time) ([]Candidate, error) {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}

	covering, err := s.Availability.GetFreeCovering(ctx, ids, reqStart, reqEnd)
	if err != nil {
		return nil, fmt.Errorf("availability query failed: %w", err)
	}

	eligible := make([]string, 0, len(providers))
	for _, p := range providers {
		if len(covering[p.ID]) > 0 {
			eligible = append(eligible, p.ID)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleProvider
	}

	counts, err := s.Bookings.CountUpcomingByProviders(ctx, eligible, now)
	if err != nil {
		return nil, fmt.Errorf("load count query failed: %w", err)
	}

	candidates := make([]Candidate, 0, len(eligible))
	for _, p := range providers {
		windows := covering[p.ID]
		if len(windows) == 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			Provider: p,
			Windows:  windows,
			Upcoming: counts[p.ID],
		})
	}
	return candidates, nil
}

// commit performs the atomic reservation and emits the success result. There
// is no fallback to a second-best candidate: a lost race surfaces as
// ErrNoAvailableSlot for this request.
func (s *DefaultSessionBookingService) commit(ctx context.Context, booking models.Booking, window models.AvailabilityWindow, plan models.PlanState) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	split := SplitRemainder(window, booking.Start, booking.End())

	err := s.Bookings.ReserveAndBook(ctx, bookingRepo.Reservation{
		Window:    window,
		Fragments: split.Fragments,
		Booking:   booking,
	})
	switch {
	case errors.Is(err, bookingRepo.ErrWindowTaken):
		return nil, ErrNoAvailableSlot
	case errors.Is(err, bookingRepo.ErrQuotaExhausted):
		used, limit := quota.Usage(plan, booking.Kind)
		return nil, &LimitReachedError{Kind: booking.Kind, Used: used, Limit: limit, Tier: plan.Tier}
	case err != nil:
		return nil, fmt.Errorf("booking transaction failed: %w", err)
	}

	logger.Info("booking committed",
		zap.String("bookingID", booking.ID),
		zap.String("providerID", booking.ProviderID),
		zap.String("kind", booking.Kind),
		zap.Int("reclaimedMinutes", split.ReclaimedMinutes),
		zap.Int("discardedMinutes", split.DiscardedMinutes))

	// Fire-and-forget: confirmation delivery must never fail the booking.
	if s.Notifier != nil {
		if err := s.Notifier.SendBookingConfirmation(ctx, booking); err != nil {
			logger.Warn("failed to enqueue booking confirmation",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	return &models.BookingResult{
		Booking:          booking,
		ReclaimedMinutes: split.ReclaimedMinutes,
		DiscardedMinutes: split.DiscardedMinutes,
	}, nil
}
