package models

import "time"

// Session kinds (the two quota buckets).
const (
	SessionKindInterview = "interview"
	SessionKindGuidance  = "guidance"
)

// Booking states.
const (
	BookingStatusScheduled = "scheduled"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a confirmed session record.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	UserID     string `bson:"userId" json:"userId"`
	ProviderID string `bson:"providerId" json:"providerId"`
	Kind       string `bson:"kind" json:"kind"`

	// Interview-specific fields.
	Role          string `bson:"role,omitempty" json:"role,omitempty"`
	Difficulty    string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	InterviewType string `bson:"interviewType,omitempty" json:"interviewType,omitempty"`
	// Guidance-specific field.
	Topic string `bson:"topic,omitempty" json:"topic,omitempty"`

	Start           time.Time `bson:"start" json:"start"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Status          string    `bson:"status" json:"status"`
	WindowID        string    `bson:"windowId" json:"windowId"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// End returns the scheduled end instant.
func (b Booking) End() time.Time {
	return b.Start.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
