//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"flipfit/pkg/client"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const healthTimeout = 30 * time.Second

type testEnv struct {
	api *client.FlipFitClient
	db  *mongo.Database
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// setup connects to the running bookings service and its database and wipes the collections.
func setup(t *testing.T) *testEnv {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	serverURL := getEnv("TEST_SERVER_URL", "http://localhost:8080")
	api := client.NewFlipFitClient(serverURL)
	if err := api.HTTP().WaitForHealthy(ctx, serverURL+"/health", healthTimeout); err != nil {
		t.Fatalf("bookings service not healthy: %v", err)
	}

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(getEnv("TEST_MONGO_URI", "mongodb://localhost:27017")))
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = mc.Disconnect(context.Background())
	})

	env := &testEnv{api: api, db: mc.Database(getEnv("TEST_DB_NAME", "flipfit"))}
	env.clean(t)
	return env
}

func (e *testEnv) clean(t *testing.T) {
	t.Helper()
	for _, name := range []string{"Gym_centers", "Slots", "Bookings", "Waitlist", "Notifications", "Slot_locks"} {
		if _, err := e.db.Collection(name).DeleteMany(context.Background(), bson.D{}); err != nil {
			t.Fatalf("clean %s: %v", name, err)
		}
	}
}
