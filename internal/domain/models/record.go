package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record marks whether one newspaper was received on one calendar day.
// NewspaperID is a weak reference: the newspaper may have been deleted
// since; readers must tolerate that.
type Record struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NewspaperID primitive.ObjectID `bson:"newspaper_id" json:"newspaperId"`
	Date        time.Time          `bson:"date" json:"date"`
	Received    bool               `bson:"received" json:"received"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ExpandedRecord is the API shape of a record with its newspaper reference
// resolved. Newspaper is null when the reference no longer resolves.
type ExpandedRecord struct {
	ID        primitive.ObjectID `json:"id"`
	Newspaper *Newspaper         `json:"newspaperId"`
	Date      time.Time          `json:"date"`
	Received  bool               `json:"received"`
}

// Expand resolves the record against the given newspaper (which may be nil).
func (r Record) Expand(paper *Newspaper) ExpandedRecord {
	return ExpandedRecord{
		ID:        r.ID,
		Newspaper: paper,
		Date:      r.Date,
		Received:  r.Received,
	}
}

// DayOf truncates a timestamp to its UTC calendar day. Every date stored in
// the records collection goes through this, so day lookups are plain
// equality matches.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
