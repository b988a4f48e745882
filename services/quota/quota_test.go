package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub/models"
)

func elevatedPlan(expiresAt time.Time) models.PlanState {
	return models.PlanState{
		Tier:            models.TierElevated,
		InterviewsUsed:  12,
		GuidanceUsed:    3,
		InterviewsLimit: ElevatedInterviewLimit,
		GuidanceLimit:   ElevatedGuidanceLimit,
		ExpiresAt:       &expiresAt,
	}
}

func TestCheckAndReset(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expired elevated plan collapses to base", func(t *testing.T) {
		p := elevatedPlan(now.Add(-time.Hour))

		got, changed := CheckAndReset(p, now)
		assert.True(t, changed)
		assert.Equal(t, models.TierBase, got.Tier)
		assert.Zero(t, got.InterviewsUsed)
		assert.Zero(t, got.GuidanceUsed)
		assert.Equal(t, BaseInterviewLimit, got.InterviewsLimit)
		assert.Equal(t, BaseGuidanceLimit, got.GuidanceLimit)
		assert.Nil(t, got.ExpiresAt)
	})

	t.Run("reset is idempotent", func(t *testing.T) {
		p := elevatedPlan(now.Add(-time.Hour))

		once, _ := CheckAndReset(p, now)
		twice, changed := CheckAndReset(once, now)
		assert.False(t, changed)
		assert.Equal(t, once, twice)
	})

	t.Run("unexpired elevated plan untouched", func(t *testing.T) {
		p := elevatedPlan(now.Add(time.Hour))
		got, changed := CheckAndReset(p, now)
		assert.False(t, changed)
		assert.Equal(t, p, got)
	})

	t.Run("base plan untouched", func(t *testing.T) {
		p := BasePlan()
		p.InterviewsUsed = 3
		got, changed := CheckAndReset(p, now)
		assert.False(t, changed)
		assert.Equal(t, p, got)
	})
}

func TestHasCapacity(t *testing.T) {
	p := BasePlan()
	assert.True(t, HasCapacity(p, models.SessionKindInterview))
	assert.True(t, HasCapacity(p, models.SessionKindGuidance))

	p.InterviewsUsed = BaseInterviewLimit
	assert.False(t, HasCapacity(p, models.SessionKindInterview))
	// The other bucket is independent.
	assert.True(t, HasCapacity(p, models.SessionKindGuidance))

	used, limit := Usage(p, models.SessionKindInterview)
	assert.Equal(t, 5, used)
	assert.Equal(t, 5, limit)
}

func TestUpgrade(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("from base", func(t *testing.T) {
		p := BasePlan()
		p.InterviewsUsed = 4

		got := Upgrade(p, now)
		assert.Equal(t, models.TierElevated, got.Tier)
		assert.Zero(t, got.InterviewsUsed)
		assert.Zero(t, got.GuidanceUsed)
		assert.Equal(t, ElevatedInterviewLimit, got.InterviewsLimit)
		assert.Equal(t, ElevatedGuidanceLimit, got.GuidanceLimit)
		require.NotNil(t, got.ExpiresAt)
		assert.Equal(t, now.AddDate(0, 1, 0), *got.ExpiresAt)
	})

	t.Run("repeat payment extends from the current expiry", func(t *testing.T) {
		expiry := now.Add(10 * 24 * time.Hour)
		p := elevatedPlan(expiry)

		got := Upgrade(p, now)
		require.NotNil(t, got.ExpiresAt)
		assert.Equal(t, expiry.AddDate(0, 1, 0), *got.ExpiresAt)
		assert.Zero(t, got.InterviewsUsed)
	})

	t.Run("lapsed expiry extends from now", func(t *testing.T) {
		p := elevatedPlan(now.Add(-time.Hour))

		got := Upgrade(p, now)
		require.NotNil(t, got.ExpiresAt)
		assert.Equal(t, now.AddDate(0, 1, 0), *got.ExpiresAt)
	})
}

// fakeUserRepo is an in-memory UserRepository for ledger tests.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdatePlan(_ context.Context, userID string, plan models.PlanState) error {
	f.users[userID].Plan = plan
	return nil
}

func (f *fakeUserRepo) EnsureIndexes() error { return nil }

func TestLedgerCurrentStatePersistsLazyReset(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	repo := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Plan: elevatedPlan(expired)},
	}}
	ledger := &Ledger{Users: repo}

	plan, err := ledger.CurrentState(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TierBase, plan.Tier)

	// The downgrade was written back, not just computed.
	assert.Equal(t, models.TierBase, repo.users["u1"].Plan.Tier)
	assert.Zero(t, repo.users["u1"].Plan.InterviewsUsed)
}

func TestLedgerApplyUpgrade(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Plan: BasePlan()},
	}}
	ledger := &Ledger{Users: repo}

	plan, err := ledger.ApplyUpgrade(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TierElevated, plan.Tier)
	assert.Equal(t, models.TierElevated, repo.users["u1"].Plan.Tier)
}
