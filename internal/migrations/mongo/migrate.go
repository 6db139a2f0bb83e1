package mongo

import (
	"context"
	"fmt"
	"sort"

	bookingsrepo "flipfit/internal/bookings/repository"
	catalogrepo "flipfit/internal/catalog/repository"
	"flipfit/internal/migrations/mongo/validators"
	notificationsrepo "flipfit/internal/notifications/repository"
	"flipfit/pkg/lock"
	"flipfit/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	GymCentersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "city_key", Value: 1}, {Key: "name", Value: 1}}},
	}

	SlotsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "gym_id", Value: 1},
			{Key: "active", Value: 1},
			{Key: "start_time", Value: 1},
		}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "slot_id", Value: 1},
				{Key: "booking_date", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_customer_slot_date"),
		},
		{Keys: bson.D{
			{Key: "slot_id", Value: 1},
			{Key: "booking_date", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "customer_id", Value: 1},
			{Key: "booking_date", Value: 1},
		}},
	}

	WaitlistIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "slot_id", Value: 1},
				{Key: "requested_date", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_waiting_customer_slot_date").
				SetPartialFilterExpression(bson.M{"status": "WAITING"}),
		},
		{Keys: bson.D{
			{Key: "slot_id", Value: 1},
			{Key: "requested_date", Value: 1},
			{Key: "status", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "position", Value: 1},
		}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}

	NotificationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	SlotLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	}
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the services use, with its validator and indexes.
func Collections() map[string]CollectionDef {
	return map[string]CollectionDef{
		catalogrepo.GymCentersCollection:          {Indexes: GymCentersIndexes, Validator: validators.GymCenterValidator},
		catalogrepo.SlotsCollection:               {Indexes: SlotsIndexes, Validator: validators.SlotValidator},
		bookingsrepo.BookingsCollection:           {Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		bookingsrepo.WaitlistCollection:           {Indexes: WaitlistIndexes, Validator: validators.WaitlistValidator},
		notificationsrepo.NotificationsCollection: {Indexes: NotificationsIndexes, Validator: validators.NotificationValidator},
		lock.LocksCollection:                      {Indexes: SlotLocksIndexes, Validator: validators.SlotLockValidator},
	}
}

// RunMigration creates missing collections, refreshes validators on existing ones and ensures indexes.
// It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	defs := Collections()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	created, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", created)
	return nil
}
