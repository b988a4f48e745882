// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced by the reservation transaction. The allocator maps
// them onto its domain error taxonomy.
var (
	// ErrWindowTaken means the window was consumed (or stopped covering the
	// request) between candidate selection and commit.
	ErrWindowTaken = errors.New("availability window already booked or no longer covers the request")
	// ErrQuotaExhausted means the guarded usage increment found no capacity left.
	ErrQuotaExhausted = errors.New("usage quota exhausted for this session kind")
)

// Reservation bundles the five effects that must commit together: mark the
// window booked, insert the remainder fragments, insert the booking record,
// and increment the consumer's usage bucket.
type Reservation struct {
	Window    models.AvailabilityWindow
	Fragments []models.AvailabilityWindow
	Booking   models.Booking
}

// BookingRepository persists session bookings and owns the atomic reservation
// transaction.
type BookingRepository interface {
	// ReserveAndBook applies the whole Reservation in one multi-document
	// transaction. On ErrWindowTaken or ErrQuotaExhausted nothing is applied.
	ReserveAndBook(ctx context.Context, res Reservation) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListUpcomingByProvider(ctx context.Context, providerID string, after time.Time) ([]models.Booking, error)
	// CountUpcomingByProviders returns, per provider, the number of scheduled
	// sessions starting after the given instant. Providers with none are absent.
	CountUpcomingByProviders(ctx context.Context, providerIDs []string, after time.Time) (map[string]int, error)
	// Cancel marks a scheduled booking cancelled. The consumed window is kept
	// as a historical record and is not resurrected.
	Cancel(ctx context.Context, bookingID, userID string) error
	EnsureIndexes() error
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl      *mongo.Collection
	availabilityColl *mongo.Collection
	userColl         *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &MongoBookingRepo{
		bookingColl:      db.Collection("bookings"),
		availabilityColl: db.Collection("availability_windows"),
		userColl:         db.Collection("users"),
	}
}
