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

// ListNewspapersByPeriod returns every newspaper defined for the given
// month/year.
func (r *Repository) ListNewspapersByPeriod(ctx context.Context, month, year int) ([]models.Newspaper, error) {
	cursor, err := r.db.Collection(colNewspapers).Find(ctx, bson.M{"month": month, "year": year})
	if err != nil {
		return nil, fmt.Errorf("failed to query newspapers: %w", err)
	}

	var papers []models.Newspaper
	if err := cursor.All(ctx, &papers); err != nil {
		return nil, fmt.Errorf("failed to decode newspapers: %w", err)
	}
	return papers, nil
}

// FindNewspaperByID returns a single newspaper or ErrNotFound.
func (r *Repository) FindNewspaperByID(ctx context.Context, id primitive.ObjectID) (*models.Newspaper, error) {
	var paper models.Newspaper
	err := r.db.Collection(colNewspapers).FindOne(ctx, bson.M{"_id": id}).Decode(&paper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find newspaper: %w", err)
	}
	return &paper, nil
}

// FindNewspapersByIDs returns the newspapers whose ids appear in the given
// set. Ids with no matching document are simply absent from the result.
func (r *Repository) FindNewspapersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Newspaper, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.db.Collection(colNewspapers).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query newspapers by ids: %w", err)
	}

	var papers []models.Newspaper
	if err := cursor.All(ctx, &papers); err != nil {
		return nil, fmt.Errorf("failed to decode newspapers: %w", err)
	}
	return papers, nil
}

// InsertNewspaper stores a new newspaper and fills in its id and timestamps.
func (r *Repository) InsertNewspaper(ctx context.Context, paper *models.Newspaper) error {
	now := time.Now().UTC()
	paper.CreatedAt = now
	paper.UpdatedAt = now

	res, err := r.db.Collection(colNewspapers).InsertOne(ctx, paper)
	if err != nil {
		return fmt.Errorf("failed to insert newspaper: %w", err)
	}
	paper.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateNewspaper replaces the mutable fields of an existing newspaper and
// returns the updated document, or ErrNotFound.
func (r *Repository) UpdateNewspaper(ctx context.Context, id primitive.ObjectID, paper *models.Newspaper) (*models.Newspaper, error) {
	update := bson.M{"$set": bson.M{
		"name":       paper.Name,
		"month":      paper.Month,
		"year":       paper.Year,
		"rates":      paper.Rates,
		"updated_at": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Newspaper
	err := r.db.Collection(colNewspapers).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update newspaper: %w", err)
	}
	return &updated, nil
}

// DeleteNewspaper removes a newspaper. Ledger entries referencing it are
// left in place; readers filter the dangling references out.
func (r *Repository) DeleteNewspaper(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(colNewspapers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete newspaper: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
