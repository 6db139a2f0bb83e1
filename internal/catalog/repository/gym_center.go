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

const GymCentersCollection = "Gym_centers"

type GymCenterRepository interface {
	Create(ctx context.Context, gym *model.GymCenter) error
	FindByID(ctx context.Context, id string) (*model.GymCenter, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.GymCenter, error)
	FindByCityKey(ctx context.Context, cityKey string) ([]*model.GymCenter, error)
}

type mongoGymCenterRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoGymCenterRepository(cfg *config.Config) GymCenterRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGymCenterRepository{
		cfg:        cfg,
		collection: db.Collection(GymCentersCollection),
	}
}

func (r *mongoGymCenterRepository) Create(ctx context.Context, gym *model.GymCenter) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	gym.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, gym); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("gym center %s: %w", gym.ID, catalogerrors.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert gym center: %w", err)
	}
	return nil
}

func (r *mongoGymCenterRepository) FindByID(ctx context.Context, id string) (*model.GymCenter, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var gym model.GymCenter
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&gym); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrGymNotFound
		}
		return nil, fmt.Errorf("failed to find gym center: %w", err)
	}
	return &gym, nil
}

func (r *mongoGymCenterRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.GymCenter, error) {
	if len(ids) == 0 {
		return []*model.GymCenter{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoGymCenterRepository) FindByCityKey(ctx context.Context, cityKey string) ([]*model.GymCenter, error) {
	return r.find(ctx, bson.M{"city_key": cityKey})
}

func (r *mongoGymCenterRepository) find(ctx context.Context, filter bson.M) ([]*model.GymCenter, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find gym centers: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	gyms := []*model.GymCenter{}
	if err := cursor.All(ctx, &gyms); err != nil {
		return nil, fmt.Errorf("failed to decode gym centers: %w", err)
	}
	return gyms, nil
}
