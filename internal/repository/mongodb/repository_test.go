package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

func mockRepository(mt *mtest.T) *MongoDBRepository {
	return &MongoDBRepository{client: mt.Client, dbName: mt.DB.Name()}
}

func TestSnapshots(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	generated := time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC)

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		err := mockRepository(mt).SaveSnapshot(ctx, models.DashboardSnapshot{ID: "snap-1", Timeline: "week"})
		assert.NoError(mt, err)
	})

	mt.Run("save duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		err := mockRepository(mt).SaveSnapshot(ctx, models.DashboardSnapshot{ID: "snap-1"})
		assert.Error(mt, err)
	})

	mt.Run("list", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + SnapshotsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "snap-2"},
				{Key: "timeline", Value: "week"},
				{Key: "generated_at", Value: primitive.NewDateTimeFromTime(generated)},
				{Key: "total_patients", Value: int32(12)},
				{Key: "total_revenue", Value: "2500.00"},
			},
			bson.D{{Key: "_id", Value: "snap-1"}, {Key: "timeline", Value: "month"}},
		))

		snapshots, err := mockRepository(mt).ListSnapshots(ctx, 0)
		require.NoError(mt, err)
		require.Len(mt, snapshots, 2)
		assert.Equal(mt, "snap-2", snapshots[0].ID)
		assert.Equal(mt, 12, snapshots[0].TotalPatients)
		assert.Equal(mt, "2500.00", snapshots[0].TotalRevenue)
		assert.True(mt, generated.Equal(snapshots[0].GeneratedAt))
		assert.Equal(mt, "month", snapshots[1].Timeline)
	})
}

func TestFetchSnapshot(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reads collections keyed by id", func(mt *mtest.T) {
		db := mt.DB.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, db+"."+DepartmentsCollection, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "Emergency"}, {Key: "localMeds", Value: bson.D{{Key: "m1", Value: bson.D{{Key: "quantity", Value: int32(10)}}}}}},
			),
			mtest.CreateCursorResponse(0, db+"."+PatientsCollection, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "p1"}, {Key: "age", Value: int32(30)}},
				bson.D{{Key: "_id", Value: "p2"}, {Key: "age", Value: int64(41)}},
			),
			mtest.CreateCursorResponse(0, db+"."+BillingCollection, mtest.FirstBatch),
		)

		snapshot, err := mockRepository(mt).FetchSnapshot(context.Background())
		require.NoError(mt, err)

		assert.Equal(mt, map[string]any{
			"localMeds": map[string]any{"m1": map[string]any{"quantity": 10.0}},
		}, snapshot.Departments["Emergency"])
		assert.Equal(mt, map[string]any{"age": 41.0}, snapshot.Patients["p2"])
		assert.Len(mt, snapshot.Patients, 2)
		assert.Empty(mt, snapshot.Billing)
	})

	mt.Run("query failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		_, err := mockRepository(mt).FetchSnapshot(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), DepartmentsCollection)
	})
}
