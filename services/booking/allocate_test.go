package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "mentorhub/database/repository/booking"
	providerRepo "mentorhub/database/repository/provider"
	"mentorhub/models"
	"mentorhub/services/quota"
)

// fakeProviderRepo serves a fixed provider set.
type fakeProviderRepo struct {
	providers []models.Provider
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	for _, p := range f.providers {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeProviderRepo) CandidateSearch(_ context.Context, criteria providerRepo.CandidateCriteria) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Status != models.ProviderStatusApproved || !p.OffersKind(criteria.SessionKind) {
			continue
		}
		if criteria.InterviewType != "" && !contains(p.InterviewTypes, criteria.InterviewType) {
			continue
		}
		if criteria.Difficulty != "" && !contains(p.Difficulties, criteria.Difficulty) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProviderRepo) EnsureIndexes() error { return nil }

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// fakeAvailabilityRepo serves windows from memory.
type fakeAvailabilityRepo struct {
	mu      sync.Mutex
	windows map[string]*models.AvailabilityWindow
}

func newFakeAvailabilityRepo(windows ...models.AvailabilityWindow) *fakeAvailabilityRepo {
	m := make(map[string]*models.AvailabilityWindow, len(windows))
	for i := range windows {
		w := windows[i]
		m[w.ID] = &w
	}
	return &fakeAvailabilityRepo{windows: m}
}

func (f *fakeAvailabilityRepo) CreateMany(_ context.Context, windows []models.AvailabilityWindow) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(windows))
	for i := range windows {
		w := windows[i]
		f.windows[w.ID] = &w
		ids[i] = w.ID
	}
	return ids, nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, windowID string) (*models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[windowID]
	if !ok {
		return nil, assert.AnError
	}
	cp := *w
	return &cp, nil
}

func (f *fakeAvailabilityRepo) GetFreeByProvider(_ context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProviderID == providerID && !w.Booked {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) GetFreeCovering(_ context.Context, providerIDs []string, start, end time.Time) (map[string][]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]models.AvailabilityWindow)
	for _, w := range f.windows {
		if w.Booked || !w.Covers(start, end) || !contains(providerIDs, w.ProviderID) {
			continue
		}
		out[w.ProviderID] = append(out[w.ProviderID], *w)
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) HasOverlap(_ context.Context, providerID string, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.ProviderID == providerID && !w.Booked && w.Start.Before(end) && start.Before(w.End) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAvailabilityRepo) DeleteUnbooked(_ context.Context, providerID, windowID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[windowID]
	if !ok || w.ProviderID != providerID || w.Booked {
		return assert.AnError
	}
	delete(f.windows, windowID)
	return nil
}

func (f *fakeAvailabilityRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, w := range f.windows {
		if !w.Booked && w.End.Before(cutoff) {
			delete(f.windows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeAvailabilityRepo) EnsureIndexes() error { return nil }

// fakeBookingRepo mimics the transactional reservation: the window mutation,
// fragment inserts, booking insert, and quota increment apply atomically under
// one lock, with the same conditional checks the real transaction runs.
type fakeBookingRepo struct {
	mu           sync.Mutex
	availability *fakeAvailabilityRepo
	users        map[string]*models.User
	bookings     []models.Booking
	upcoming     map[string]int
}

func newFakeBookingRepo(avail *fakeAvailabilityRepo, users map[string]*models.User) *fakeBookingRepo {
	return &fakeBookingRepo{
		availability: avail,
		users:        users,
		upcoming:     make(map[string]int),
	}
}

func (f *fakeBookingRepo) ReserveAndBook(_ context.Context, res bookingRepo.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availability.mu.Lock()
	defer f.availability.mu.Unlock()

	w, ok := f.availability.windows[res.Window.ID]
	if !ok || w.Booked || !w.Covers(res.Booking.Start, res.Booking.End()) {
		return bookingRepo.ErrWindowTaken
	}

	usr, ok := f.users[res.Booking.UserID]
	if !ok {
		return assert.AnError
	}
	if !quota.HasCapacity(usr.Plan, res.Booking.Kind) {
		return bookingRepo.ErrQuotaExhausted
	}

	w.Booked = true
	w.BookingID = res.Booking.ID
	for i := range res.Fragments {
		frag := res.Fragments[i]
		f.availability.windows[frag.ID] = &frag
	}
	f.bookings = append(f.bookings, res.Booking)
	if res.Booking.Kind == models.SessionKindInterview {
		usr.Plan.InterviewsUsed++
	} else {
		usr.Plan.GuidanceUsed++
	}
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID {
			cp := b
			return &cp, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListUpcomingByProvider(_ context.Context, providerID string, after time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.Start.After(after) && b.Status == models.BookingStatusScheduled {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountUpcomingByProviders(_ context.Context, providerIDs []string, after time.Time) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int)
	for k, v := range f.upcoming {
		if contains(providerIDs, k) {
			out[k] = v
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, bookingID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID && f.bookings[i].UserID == userID &&
			f.bookings[i].Status == models.BookingStatusScheduled {
			f.bookings[i].Status = models.BookingStatusCancelled
			return nil
		}
	}
	return assert.AnError
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// fakeUserStore is the in-memory user repository backing the quota ledger.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdatePlan(_ context.Context, userID string, plan models.PlanState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[userID].Plan = plan
	return nil
}

func (f *fakeUserStore) EnsureIndexes() error { return nil }

type allocFixture struct {
	svc      *DefaultSessionBookingService
	avail    *fakeAvailabilityRepo
	bookings *fakeBookingRepo
	users    map[string]*models.User
}

func newAllocFixture(providers []models.Provider, windows []models.AvailabilityWindow, users map[string]*models.User) *allocFixture {
	avail := newFakeAvailabilityRepo(windows...)
	bookings := newFakeBookingRepo(avail, users)
	svc := &DefaultSessionBookingService{
		Providers:    &fakeProviderRepo{providers: providers},
		Availability: avail,
		Bookings:     bookings,
		Quota:        &quota.Ledger{Users: &fakeUserStore{users: users}},
	}
	return &allocFixture{svc: svc, avail: avail, bookings: bookings, users: users}
}

func approvedProvider(id string, kinds ...string) models.Provider {
	return models.Provider{
		ID:             id,
		Status:         models.ProviderStatusApproved,
		Roles:          []string{"Backend Engineer"},
		SessionKinds:   kinds,
		InterviewTypes: []string{"system-design"},
		Difficulties:   []string{"senior"},
	}
}

func baseUser(id string) *models.User {
	return &models.User{ID: id, Plan: quota.BasePlan()}
}

func interviewInput(start time.Time) models.InterviewBookingInput {
	return models.InterviewBookingInput{
		Role:            "Backend Engineer",
		Difficulty:      "senior",
		InterviewType:   "system-design",
		DurationMinutes: 60,
		Start:           start,
	}
}

func TestBookInterviewHappyPath(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	prov := approvedProvider("prov-1", models.SessionKindInterview)
	// 09:00-style 4h window around the request: 60 before, 120 after the hour.
	win := window("win-1", "prov-1", start.Add(-60*time.Minute), 240)

	fx := newAllocFixture(
		[]models.Provider{prov},
		[]models.AvailabilityWindow{win},
		map[string]*models.User{"u1": baseUser("u1")},
	)

	res, err := fx.svc.BookInterview(context.Background(), "u1", interviewInput(start))
	require.NoError(t, err)

	assert.Equal(t, "prov-1", res.Booking.ProviderID)
	assert.Equal(t, models.SessionKindInterview, res.Booking.Kind)
	assert.Equal(t, models.BookingStatusScheduled, res.Booking.Status)
	assert.Equal(t, "win-1", res.Booking.WindowID)
	assert.Equal(t, 180, res.ReclaimedMinutes)
	assert.Equal(t, 0, res.DiscardedMinutes)

	// Window consumed and both fragments landed in the pool.
	consumed, err := fx.avail.GetByID(context.Background(), "win-1")
	require.NoError(t, err)
	assert.True(t, consumed.Booked)
	assert.Equal(t, res.Booking.ID, consumed.BookingID)

	free, err := fx.avail.GetFreeByProvider(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Len(t, free, 2)

	// Usage charged against the interview bucket only.
	assert.Equal(t, 1, fx.users["u1"].Plan.InterviewsUsed)
	assert.Equal(t, 0, fx.users["u1"].Plan.GuidanceUsed)
}

func TestBookInterviewRejections(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	prov := approvedProvider("prov-1", models.SessionKindInterview)
	win := window("win-1", "prov-1", start, 60)

	t.Run("non-positive duration", func(t *testing.T) {
		fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{win},
			map[string]*models.User{"u1": baseUser("u1")})
		in := interviewInput(start)
		in.DurationMinutes = 0

		_, err := fx.svc.BookInterview(context.Background(), "u1", in)
		var invalid *InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("past start", func(t *testing.T) {
		fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{win},
			map[string]*models.User{"u1": baseUser("u1")})
		in := interviewInput(time.Now().Add(-time.Hour))

		_, err := fx.svc.BookInterview(context.Background(), "u1", in)
		var invalid *InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("quota exhausted before any search", func(t *testing.T) {
		usr := baseUser("u1")
		usr.Plan.InterviewsUsed = usr.Plan.InterviewsLimit
		fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{win},
			map[string]*models.User{"u1": usr})

		_, err := fx.svc.BookInterview(context.Background(), "u1", interviewInput(start))
		var limit *LimitReachedError
		require.ErrorAs(t, err, &limit)
		assert.Equal(t, models.SessionKindInterview, limit.Kind)
		assert.Equal(t, 5, limit.Used)
		assert.Equal(t, 5, limit.Limit)
		assert.Equal(t, models.TierBase, limit.Tier)
	})

	t.Run("no provider passes hard filters", func(t *testing.T) {
		fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{win},
			map[string]*models.User{"u1": baseUser("u1")})
		in := interviewInput(start)
		in.Difficulty = "principal"

		_, err := fx.svc.BookInterview(context.Background(), "u1", in)
		assert.ErrorIs(t, err, ErrNoEligibleProvider)
	})

	t.Run("no covering window", func(t *testing.T) {
		short := window("win-2", "prov-1", start, 30)
		fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{short},
			map[string]*models.User{"u1": baseUser("u1")})

		_, err := fx.svc.BookInterview(context.Background(), "u1", interviewInput(start))
		assert.ErrorIs(t, err, ErrNoEligibleProvider)
	})

	t.Run("zero qualification score still books", func(t *testing.T) {
		fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{win},
			map[string]*models.User{"u1": baseUser("u1")})
		in := interviewInput(start)
		in.Role = "Quantum Gardener"

		res, err := fx.svc.BookInterview(context.Background(), "u1", in)
		require.NoError(t, err)
		assert.Equal(t, "prov-1", res.Booking.ProviderID)
	})
}

func TestBookInterviewPrefersHigherScore(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	strong := approvedProvider("prov-strong", models.SessionKindInterview)
	weak := approvedProvider("prov-weak", models.SessionKindInterview)
	weak.Roles = []string{"Product Designer"}

	fx := newAllocFixture(
		[]models.Provider{weak, strong},
		[]models.AvailabilityWindow{
			window("w-strong", "prov-strong", start, 60),
			window("w-weak", "prov-weak", start, 60),
		},
		map[string]*models.User{"u1": baseUser("u1")},
	)
	fx.bookings.upcoming["prov-strong"] = 2

	res, err := fx.svc.BookInterview(context.Background(), "u1", interviewInput(start))
	require.NoError(t, err)
	// Full qualification (40) beats zero even with the load penalty.
	assert.Equal(t, "prov-strong", res.Booking.ProviderID)
}

func TestBookGuidance(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	prov := approvedProvider("prov-1", models.SessionKindGuidance)

	input := models.GuidanceBookingInput{
		ProviderID:      "prov-1",
		Topic:           "career growth",
		DurationMinutes: 45,
		Start:           start,
	}

	t.Run("happy path charges guidance bucket", func(t *testing.T) {
		fx := newAllocFixture([]models.Provider{prov},
			[]models.AvailabilityWindow{window("win-1", "prov-1", start, 45)},
			map[string]*models.User{"u1": baseUser("u1")})

		res, err := fx.svc.BookGuidance(context.Background(), "u1", input)
		require.NoError(t, err)
		assert.Equal(t, models.SessionKindGuidance, res.Booking.Kind)
		assert.Equal(t, "career growth", res.Booking.Topic)
		assert.Equal(t, 0, fx.users["u1"].Plan.InterviewsUsed)
		assert.Equal(t, 1, fx.users["u1"].Plan.GuidanceUsed)
	})

	t.Run("provider not offering guidance", func(t *testing.T) {
		interviewOnly := approvedProvider("prov-1", models.SessionKindInterview)
		fx := newAllocFixture([]models.Provider{interviewOnly},
			[]models.AvailabilityWindow{window("win-1", "prov-1", start, 45)},
			map[string]*models.User{"u1": baseUser("u1")})

		_, err := fx.svc.BookGuidance(context.Background(), "u1", input)
		assert.ErrorIs(t, err, ErrNoEligibleProvider)
	})

	t.Run("no covering window", func(t *testing.T) {
		fx := newAllocFixture([]models.Provider{prov},
			[]models.AvailabilityWindow{window("win-1", "prov-1", start.Add(2*time.Hour), 45)},
			map[string]*models.User{"u1": baseUser("u1")})

		_, err := fx.svc.BookGuidance(context.Background(), "u1", input)
		assert.ErrorIs(t, err, ErrNoAvailableSlot)
	})
}

func TestConcurrentBookingsOneWindow(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	prov := approvedProvider("prov-1", models.SessionKindInterview)
	win := window("win-1", "prov-1", start, 60)

	fx := newAllocFixture(
		[]models.Provider{prov},
		[]models.AvailabilityWindow{win},
		map[string]*models.User{"u1": baseUser("u1"), "u2": baseUser("u2")},
	)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			_, err := fx.svc.BookInterview(context.Background(), uid, interviewInput(start))
			results <- err
		}(userID)
	}
	wg.Wait()
	close(results)

	var successes, lostRaces int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrNoAvailableSlot):
			lostRaces++
		}
	}

	// Exactly one request wins the window; the loser sees a clean rejection
	// and no partial effects.
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, lostRaces)

	total := fx.users["u1"].Plan.InterviewsUsed + fx.users["u2"].Plan.InterviewsUsed
	assert.Equal(t, 1, total)
	assert.Len(t, fx.bookings.bookings, 1)
}

func TestListAndCancel(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	prov := approvedProvider("prov-1", models.SessionKindInterview)
	win := window("win-1", "prov-1", start, 60)

	fx := newAllocFixture([]models.Provider{prov}, []models.AvailabilityWindow{win},
		map[string]*models.User{"u1": baseUser("u1")})

	res, err := fx.svc.BookInterview(context.Background(), "u1", interviewInput(start))
	require.NoError(t, err)

	listed, err := fx.svc.ListUserBookings(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, res.Booking.ID, listed[0].ID)

	require.NoError(t, fx.svc.CancelBooking(context.Background(), "u1", res.Booking.ID))

	// Cancelling someone else's booking fails.
	assert.Error(t, fx.svc.CancelBooking(context.Background(), "u2", res.Booking.ID))
}
