package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogerrors "flipfit/internal/catalog/errors"
	"flipfit/pkg/config"
	mongotx "flipfit/pkg/db/mongo"
	"flipfit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SlotsCollection = "Slots"

type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	FindByID(ctx context.Context, id string) (*model.Slot, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Slot, error)
	FindActiveByGyms(ctx context.Context, gymIDs []string) ([]*model.Slot, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(SlotsCollection),
	}
}

func (r *mongoSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	slot.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, slot); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("slot %s: %w", slot.ID, catalogerrors.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var slot model.Slot
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}
	return &slot, nil
}

// FindByIDs returns the slots that exist among ids, active or not.
func (r *mongoSlotRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Slot, error) {
	if len(ids) == 0 {
		return []*model.Slot{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// FindActiveByGyms returns active slots ordered by gym, then start time.
func (r *mongoSlotRepository) FindActiveByGyms(ctx context.Context, gymIDs []string) ([]*model.Slot, error) {
	if len(gymIDs) == 0 {
		return []*model.Slot{}, nil
	}
	return r.find(ctx, bson.M{"gym_id": bson.M{"$in": gymIDs}, "active": true})
}

func (r *mongoSlotRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalogerrors.ErrSlotNotFound
	}
	return nil
}

func (r *mongoSlotRepository) find(ctx context.Context, filter bson.M) ([]*model.Slot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "gym_id", Value: 1},
		{Key: "start_time", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	slots := []*model.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}
