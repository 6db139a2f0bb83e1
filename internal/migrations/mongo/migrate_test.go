package mongo

import (
	"context"
	"sort"
	"testing"

	"flipfit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	for _, name := range []string{"Gym_centers", "Slots", "Bookings", "Waitlist", "Notifications", "Slot_locks"} {
		def, ok := defs[name]
		require.True(t, ok, "missing collection %s", name)
		assert.NotNil(t, def.Validator, name)
		assert.NotEmpty(t, def.Indexes, name)
	}

	unique := BookingsIndexes[0].Options
	require.NotNil(t, unique)
	assert.True(t, *unique.Unique)

	waiting := WaitlistIndexes[0].Options
	require.NotNil(t, waiting)
	assert.True(t, *waiting.Unique)
	assert.Equal(t, bson.M{"status": "WAITING"}, waiting.PartialFilterExpression)

	ttl := SlotLocksIndexes[0].Options
	require.NotNil(t, ttl)
	assert.Equal(t, int32(0), *ttl.ExpireAfterSeconds)
}

func TestRunMigration(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updates existing collections", func(mt *mtest.T) {
		names := make([]string, 0)
		for name := range Collections() {
			names = append(names, name)
		}
		sort.Strings(names)

		ns := mt.DB.Name() + ".$cmd.listCollections"
		for _, name := range names {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "name", Value: name}, {Key: "type", Value: "collection"}}),
				mtest.CreateSuccessResponse(),
				mtest.CreateSuccessResponse(),
			)
		}

		require.NoError(mt, RunMigration(context.Background(), mt.DB, logger.Discard()))
	})

	mt.Run("surfaces list failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		err := RunMigration(context.Background(), mt.DB, logger.Discard())
		assert.Error(mt, err)
	})
}
