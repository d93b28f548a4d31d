package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
)

// FindUserByEmail returns the account for an email address or ErrNotFound.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.Collection(colUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// FindUserByID returns the account for an id or ErrNotFound.
func (r *Repository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.db.Collection(colUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// CountUsers reports how many accounts exist.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	count, err := r.db.Collection(colUsers).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// InsertUser stores a new account and fills in its id.
func (r *Repository) InsertUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := r.db.Collection(colUsers).InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
