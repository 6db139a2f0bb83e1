package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "flipfit/internal/bookings/errors"
	"flipfit/pkg/config"
	mongotx "flipfit/pkg/db/mongo"
	"flipfit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BookingsCollection = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*model.Booking, error)
	FindByCustomerAndDate(ctx context.Context, customerID, date string) ([]*model.Booking, error)
	CountConfirmed(ctx context.Context, slotID, date string) (int, error)
	CountConfirmedBySlots(ctx context.Context, slotIDs []string, date string) (map[string]int, error)
	Reuse(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingsCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("booking for %s on %s: %w", booking.SlotID, booking.BookingDate, bookingserrors.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

// FindByCustomer returns every booking of the customer, newest date first.
func (r *mongoBookingRepository) FindByCustomer(ctx context.Context, customerID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"customer_id": customerID})
}

// FindByCustomerAndDate returns the customer's bookings on date in every status.
func (r *mongoBookingRepository) FindByCustomerAndDate(ctx context.Context, customerID, date string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"customer_id": customerID, "booking_date": date})
}

func (r *mongoBookingRepository) CountConfirmed(ctx context.Context, slotID, date string) (int, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"slot_id":      slotID,
		"booking_date": date,
		"status":       model.BookingConfirmed,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return int(count), nil
}

// CountConfirmedBySlots counts confirmed bookings per slot on date in one aggregation.
// Slots without bookings are absent from the result.
func (r *mongoBookingRepository) CountConfirmedBySlots(ctx context.Context, slotIDs []string, date string) (map[string]int, error) {
	counts := make(map[string]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return counts, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"slot_id":      bson.M{"$in": slotIDs},
			"booking_date": date,
			"status":       model.BookingConfirmed,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$slot_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		SlotID string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking counts: %w", err)
	}
	for _, row := range rows {
		counts[row.SlotID] = row.Count
	}
	return counts, nil
}

// Reuse flips a cancelled booking back to confirmed, keeping its ID.
func (r *mongoBookingRepository) Reuse(ctx context.Context, id string) error {
	return r.UpdateStatus(ctx, id, model.BookingCancelled, model.BookingConfirmed)
}

// UpdateStatus moves a booking from one status to another. It fails with ErrStatusTransition
// when the row exists but is not in from.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{
			"status":     to,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return fmt.Errorf("booking %s is not %s: %w", id, from, bookingserrors.ErrStatusTransition)
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "booking_date", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
