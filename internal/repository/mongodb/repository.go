package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
)

// ErrNotFound is returned when an id-based lookup targets a document that
// does not exist.
var ErrNotFound = errors.New("document not found")

const (
	colNewspapers = "newspapers"
	colRecords    = "records"
	colUsers      = "users"
)

// NewspaperStore defines the storage operations for newspaper definitions.
type NewspaperStore interface {
	ListNewspapersByPeriod(ctx context.Context, month, year int) ([]models.Newspaper, error)
	FindNewspaperByID(ctx context.Context, id primitive.ObjectID) (*models.Newspaper, error)
	FindNewspapersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Newspaper, error)
	InsertNewspaper(ctx context.Context, paper *models.Newspaper) error
	UpdateNewspaper(ctx context.Context, id primitive.ObjectID, paper *models.Newspaper) (*models.Newspaper, error)
	DeleteNewspaper(ctx context.Context, id primitive.ObjectID) error
}

// RecordStore defines the storage operations for the delivery ledger.
type RecordStore interface {
	FindRecordsByDay(ctx context.Context, day time.Time) ([]models.Record, error)
	FindRecordsInRange(ctx context.Context, from, to time.Time) ([]models.Record, error)
	UpsertRecord(ctx context.Context, newspaperID primitive.ObjectID, date time.Time, received bool) (*models.Record, error)
}

// UserStore defines the storage operations for user accounts.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	InsertUser(ctx context.Context, user *models.User) error
}

// Repository implements the store interfaces on top of MongoDB.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the indexes the invariants rely on: the unique
// (newspaper_id, date) pair on the ledger and the unique user email.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(colRecords).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "newspaper_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create records index: %w", err)
	}

	_, err = r.db.Collection(colUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
