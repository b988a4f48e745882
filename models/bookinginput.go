package models

import "time"

// InterviewBookingInput is the typed request for the structured session variant.
// The allocator runs the candidate search; no provider is named.
type InterviewBookingInput struct {
	Role            string    `json:"role" binding:"required"`
	Difficulty      string    `json:"difficulty" binding:"required"`
	InterviewType   string    `json:"interviewType" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
}

// GuidanceBookingInput is the typed request for the unstructured session variant.
// The user picks the mentor explicitly.
type GuidanceBookingInput struct {
	ProviderID      string    `json:"providerId" binding:"required"`
	Topic           string    `json:"topic" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
}

// PublishWindowInput describes one availability window a provider wants to publish.
type PublishWindowInput struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// BookingResult is the success outcome of an allocation, including the
// reclaimed-minutes metadata used for observability and testing.
type BookingResult struct {
	Booking          Booking `json:"booking"`
	ReclaimedMinutes int     `json:"reclaimedMinutes"`
	DiscardedMinutes int     `json:"discardedMinutes"`
}

// QuotaStatus surfaces usage, limit and tier so callers can render an upgrade prompt.
type QuotaStatus struct {
	Kind  string `json:"kind"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
	Tier  string `json:"tier"`
}
