package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	dbmongo "flipfit/pkg/db/mongo"
	"flipfit/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// LocksCollection holds one lease document per locked key.
	LocksCollection = "Slot_locks"

	releaseTimeout = 5 * time.Second
)

// MongoLocker leases keys by inserting a document whose _id is the key.
// A TTL index on expires_at reclaims leases left behind by crashed holders.
type MongoLocker struct {
	collection *mongo.Collection
	ttl        time.Duration
	retry      time.Duration
	tokenFn    func() string
}

func NewMongoLocker(collection *mongo.Collection, ttl, retry time.Duration) *MongoLocker {
	return &MongoLocker{
		collection: collection,
		ttl:        ttl,
		retry:      retry,
		tokenFn:    uuid.NewString,
	}
}

func (l *MongoLocker) Lock(ctx context.Context, key string) (func(), error) {
	owner := l.tokenFn()
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		acquired, err := l.tryAcquire(ctx, key, owner)
		if err != nil {
			return nil, err
		}
		if acquired {
			return l.releaser(key, owner), nil
		}

		select {
		case <-ctx.Done():
			return nil, timeoutError(key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *MongoLocker) tryAcquire(ctx context.Context, key, owner string) (bool, error) {
	now := time.Now().UTC()
	doc := model.SlotLock{
		ID:        key,
		Owner:     owner,
		ExpiresAt: now.Add(l.ttl),
		CreatedAt: now,
	}

	_, err := l.collection.InsertOne(ctx, doc)
	if err == nil {
		return true, nil
	}
	if !dbmongo.IsDuplicateKey(err) {
		if ctx.Err() != nil {
			return false, timeoutError(key, ctx.Err())
		}
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	// The TTL monitor only runs once a minute, so clear an expired lease ourselves.
	res, err := l.collection.DeleteOne(ctx, bson.M{"_id": key, "expires_at": bson.M{"$lt": now}})
	if err != nil {
		if ctx.Err() != nil {
			return false, timeoutError(key, ctx.Err())
		}
		return false, fmt.Errorf("reclaim expired lock %s: %w", key, err)
	}
	if res.DeletedCount > 0 {
		return l.tryAcquire(ctx, key, owner)
	}
	return false, nil
}

func (l *MongoLocker) releaser(key, owner string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()
			_, _ = l.collection.DeleteOne(ctx, bson.M{"_id": key, "owner": owner})
		})
	}
}
