package repository

import (
	"context"
	"fmt"
	"time"

	notificationserrors "flipfit/internal/notifications/errors"
	"flipfit/pkg/config"
	mongotx "flipfit/pkg/db/mongo"
	"flipfit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NotificationsCollection = "Notifications"

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type mongoNotificationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoNotificationRepository(cfg *config.Config) NotificationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoNotificationRepository{
		cfg:        cfg,
		collection: db.Collection(NotificationsCollection),
	}
}

// Create stores n under its own ID, so replaying an event yields ErrDuplicateEntry.
func (r *mongoNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.CreatedAt = n.CreatedAt.Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, n); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("notification %s: %w", n.ID, notificationserrors.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepository) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	notifications := []*model.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return notificationserrors.ErrNotFound
	}
	return nil
}

func (r *mongoNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *mongoNotificationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return notificationserrors.ErrNotFound
	}
	return nil
}
