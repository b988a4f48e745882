// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mentorhub/models"
)

// ReserveAndBook applies the reservation as a single multi-document
// transaction: conditionally mark the window booked (re-validating free state
// and full containment at commit time), insert the remainder fragments, insert
// the booking record, and increment the consumer's usage bucket under a
// capacity guard. Any failed step aborts the whole transaction.
func (repo *MongoBookingRepo) ReserveAndBook(ctx context.Context, res Reservation) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	booking := res.Booking

	txnFn := func(sc mongo.SessionContext) error {
		// Step 1: consume the window. The filter re-checks booked=false and
		// full containment so a lost race surfaces as MatchedCount == 0.
		windowFilter := bson.M{
			"id":         res.Window.ID,
			"providerId": booking.ProviderID,
			"booked":     false,
			"start":      bson.M{"$lte": booking.Start},
			"end":        bson.M{"$gte": booking.End()},
		}
		windowUpdate := bson.M{
			"$set": bson.M{
				"booked":    true,
				"bookingId": booking.ID,
			},
		}
		windowRes, err := repo.availabilityColl.UpdateOne(sc, windowFilter, windowUpdate)
		if err != nil {
			return fmt.Errorf("consume window failed: %w", err)
		}
		if windowRes.MatchedCount == 0 {
			return ErrWindowTaken
		}

		// Step 2: insert the remainder fragments, if any survived the
		// minimum-size policy.
		if len(res.Fragments) > 0 {
			docs := make([]interface{}, len(res.Fragments))
			now := time.Now()
			for i, f := range res.Fragments {
				if f.CreatedAt.IsZero() {
					f.CreatedAt = now
				}
				docs[i] = f
			}
			if _, err := repo.availabilityColl.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert remainder fragments failed: %w", err)
			}
		}

		// Step 3: insert the booking record.
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		// Step 4: guarded usage increment. Comparing the stored counter with
		// the stored limit closes the check-then-increment race between
		// concurrent bookings by the same consumer.
		usedField := "plan.guidanceUsed"
		limitField := "$plan.guidanceLimit"
		if booking.Kind == models.SessionKindInterview {
			usedField = "plan.interviewsUsed"
			limitField = "$plan.interviewsLimit"
		}
		quotaFilter := bson.M{
			"id":    booking.UserID,
			"$expr": bson.M{"$lt": bson.A{"$" + usedField, limitField}},
		}
		quotaUpdate := bson.M{"$inc": bson.M{usedField: 1}}
		quotaRes, err := repo.userColl.UpdateOne(sc, quotaFilter, quotaUpdate)
		if err != nil {
			return fmt.Errorf("quota increment failed: %w", err)
		}
		if quotaRes.MatchedCount == 0 {
			return ErrQuotaExhausted
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
