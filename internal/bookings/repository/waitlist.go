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
	WaitlistCollection = "Waitlist"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *model.WaitlistEntry) error
	FindFirstWaiting(ctx context.Context, slotID, date string) (*model.WaitlistEntry, error)
	MarkAllocated(ctx context.Context, id string) error
	IsWaiting(ctx context.Context, customerID, slotID, date string) (bool, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*model.WaitlistEntry, error)
}

type mongoWaitlistRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoWaitlistRepository(cfg *config.Config) WaitlistRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWaitlistRepository{
		cfg:        cfg,
		collection: db.Collection(WaitlistCollection),
	}
}

// Create enqueues a WAITING entry. The partial unique index turns a second WAITING entry for the
// same customer, slot and date into ErrDuplicateEntry.
func (r *mongoWaitlistRepository) Create(ctx context.Context, entry *model.WaitlistEntry) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	entry.CreatedAt = now.Truncate(time.Millisecond)
	entry.Position = now.UnixNano()
	entry.Status = model.WaitlistWaiting

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("waitlist %s/%s for %s: %w", entry.SlotID, entry.RequestedDate, entry.CustomerID, bookingserrors.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert waitlist entry: %w", err)
	}
	return nil
}

// FindFirstWaiting returns the FIFO head for the slot on date, or nil when nobody is waiting.
func (r *mongoWaitlistRepository) FindFirstWaiting(ctx context.Context, slotID, date string) (*model.WaitlistEntry, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "position", Value: 1},
	})
	filter := bson.M{
		"slot_id":        slotID,
		"requested_date": date,
		"status":         model.WaitlistWaiting,
	}

	var entry model.WaitlistEntry
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find waitlist head: %w", err)
	}
	return &entry, nil
}

func (r *mongoWaitlistRepository) MarkAllocated(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.WaitlistWaiting},
		bson.M{"$set": bson.M{
			"status":       model.WaitlistAllocated,
			"allocated_at": time.Now().UTC().Truncate(time.Millisecond),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to allocate waitlist entry: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("waitlist entry %s is not waiting: %w", id, bookingserrors.ErrStatusTransition)
	}
	return nil
}

func (r *mongoWaitlistRepository) IsWaiting(ctx context.Context, customerID, slotID, date string) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"customer_id":    customerID,
		"slot_id":        slotID,
		"requested_date": date,
		"status":         model.WaitlistWaiting,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check waitlist: %w", err)
	}
	return count > 0, nil
}

func (r *mongoWaitlistRepository) FindByCustomer(ctx context.Context, customerID string) ([]*model.WaitlistEntry, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "requested_date", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find waitlist entries: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []*model.WaitlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode waitlist entries: %w", err)
	}
	return entries, nil
}
