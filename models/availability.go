package models

import "time"

// AvailabilityWindow is a contiguous, provider-owned block of bookable time.
// A window is either fully free or fully booked; a reservation replaces one
// free window with a consumed marker plus up to two remainder fragments.
type AvailabilityWindow struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Start      time.Time `bson:"start" json:"start"`
	End        time.Time `bson:"end" json:"end"`
	Booked     bool      `bson:"booked" json:"booked"`
	BookingID  string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// DurationMinutes returns the window length in whole minutes.
func (w AvailabilityWindow) DurationMinutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// Covers reports whether the window fully contains [start, end].
func (w AvailabilityWindow) Covers(start, end time.Time) bool {
	return !w.Start.After(start) && !w.End.Before(end)
}
