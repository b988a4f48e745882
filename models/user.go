package models

import "time"

// Plan tiers.
const (
	TierBase     = "base"
	TierElevated = "elevated"
)

// PlanState is the consumer's quota ledger, embedded in the user document.
// Counters reset monthly via the expiry-downgrade rule in services/quota.
type PlanState struct {
	Tier            string     `bson:"tier" json:"tier"`
	InterviewsUsed  int        `bson:"interviewsUsed" json:"interviewsUsed"`
	GuidanceUsed    int        `bson:"guidanceUsed" json:"guidanceUsed"`
	InterviewsLimit int        `bson:"interviewsLimit" json:"interviewsLimit"`
	GuidanceLimit   int        `bson:"guidanceLimit" json:"guidanceLimit"`
	ExpiresAt       *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// User represents a consumer of mentoring sessions.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Plan      PlanState `bson:"plan" json:"plan"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
