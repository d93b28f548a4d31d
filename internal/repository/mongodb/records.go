package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
)

// FindRecordsByDay returns every ledger entry for one calendar day.
func (r *Repository) FindRecordsByDay(ctx context.Context, day time.Time) ([]models.Record, error) {
	day = models.DayOf(day)
	return r.findRecords(ctx, bson.M{"date": bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}})
}

// FindRecordsInRange returns every ledger entry with from <= date < to.
func (r *Repository) FindRecordsInRange(ctx context.Context, from, to time.Time) ([]models.Record, error) {
	return r.findRecords(ctx, bson.M{"date": bson.M{"$gte": from, "$lt": to}})
}

func (r *Repository) findRecords(ctx context.Context, filter bson.M) ([]models.Record, error) {
	cursor, err := r.db.Collection(colRecords).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	var records []models.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// UpsertRecord writes the delivery status for one (newspaper, day) pair.
// The date is normalized to its UTC calendar day and the write is a single
// atomic find-and-modify keyed on that pair, so at most one ledger entry
// ever exists per newspaper per day, even under concurrent calls.
func (r *Repository) UpsertRecord(ctx context.Context, newspaperID primitive.ObjectID, date time.Time, received bool) (*models.Record, error) {
	day := models.DayOf(date)
	now := time.Now().UTC()

	filter := bson.M{"newspaper_id": newspaperID, "date": day}
	update := bson.M{
		"$set":         bson.M{"received": received, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var record models.Record
	if err := r.db.Collection(colRecords).FindOneAndUpdate(ctx, filter, update, opts).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to upsert record: %w", err)
	}
	return &record, nil
}
