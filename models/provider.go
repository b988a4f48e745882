package models

import "time"

// Provider statuses.
const (
	ProviderStatusPending  = "pending"
	ProviderStatusApproved = "approved"
)

// Provider represents a mentor who publishes availability windows.
type Provider struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Status string `bson:"status" json:"status"`

	// Roles are the qualification tags a provider supports, e.g. "Backend Engineer".
	Roles []string `bson:"roles" json:"roles"`
	// SessionKinds lists the session kinds the provider offers ("interview", "guidance").
	SessionKinds []string `bson:"sessionKinds" json:"sessionKinds"`
	// InterviewTypes and Difficulties are hard filters for the interview kind.
	InterviewTypes []string `bson:"interviewTypes,omitempty" json:"interviewTypes,omitempty"`
	Difficulties   []string `bson:"difficulties,omitempty" json:"difficulties,omitempty"`

	YearsExperience *int      `bson:"yearsExperience,omitempty" json:"yearsExperience,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// OffersKind reports whether the provider offers the given session kind.
func (p Provider) OffersKind(kind string) bool {
	for _, k := range p.SessionKinds {
		if k == kind {
			return true
		}
	}
	return false
}
