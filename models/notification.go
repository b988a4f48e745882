package models

import "time"

// Notification is a persisted in-app notification record, written by the
// background worker after a booking commits.
type Notification struct {
	ID            string            `bson:"id" json:"id"`
	RecipientID   string            `bson:"recipientId" json:"recipientId"`
	RecipientRole string            `bson:"recipientRole" json:"recipientRole"` // "user" or "provider"
	Title         string            `bson:"title" json:"title"`
	Body          string            `bson:"body" json:"body"`
	Data          map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read          bool              `bson:"read" json:"read"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
}

// BookingConfirmedPayload is the task payload enqueued after a booking commits.
type BookingConfirmedPayload struct {
	BookingID       string    `json:"bookingId"`
	UserID          string    `json:"userId"`
	ProviderID      string    `json:"providerId"`
	Kind            string    `json:"kind"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
}
