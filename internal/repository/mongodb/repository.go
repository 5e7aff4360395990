package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// Collection names.
const (
	DepartmentsCollection = "departments"
	PatientsCollection    = "patients"
	BillingCollection     = "billing"
	SnapshotsCollection   = "dashboard_snapshots"
)

const defaultSnapshotLimit = 30

// Repository defines the interface for snapshot storage.
type Repository interface {
	SaveSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error
	ListSnapshots(ctx context.Context, limit int) ([]models.DashboardSnapshot, error)
}

// MongoDBRepository archives dashboard snapshots and can serve raw collections as a source.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveSnapshot stores an archived dashboard summary.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(SnapshotsCollection)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert dashboard snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the most recent snapshots, newest first.
func (r *MongoDBRepository) ListSnapshots(ctx context.Context, limit int) ([]models.DashboardSnapshot, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.client.Database(r.dbName).Collection(SnapshotsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := make([]models.DashboardSnapshot, 0, limit)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard snapshots: %w", err)
	}
	return snapshots, nil
}

// FetchSnapshot reads the raw departments, patients and billing collections.
func (r *MongoDBRepository) FetchSnapshot(ctx context.Context) (models.SourceSnapshot, error) {
	departments, err := r.readCollection(ctx, DepartmentsCollection)
	if err != nil {
		return models.SourceSnapshot{}, err
	}
	patients, err := r.readCollection(ctx, PatientsCollection)
	if err != nil {
		return models.SourceSnapshot{}, err
	}
	billing, err := r.readCollection(ctx, BillingCollection)
	if err != nil {
		return models.SourceSnapshot{}, err
	}

	return models.SourceSnapshot{
		Departments: departments,
		Patients:    patients,
		Billing:     billing,
	}, nil
}

// readCollection loads every document keyed by its _id, the way the realtime store keys children.
func (r *MongoDBRepository) readCollection(ctx context.Context, name string) (map[string]any, error) {
	cursor, err := r.client.Database(r.dbName).Collection(name).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	tree := make(map[string]any)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", name, err)
		}
		key := documentKey(doc["_id"])
		delete(doc, "_id")
		tree[key] = plain(doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", name, err)
	}
	return tree, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
