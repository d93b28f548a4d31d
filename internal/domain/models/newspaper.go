package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Newspaper is a deliverable title with a per-weekday price table, scoped
// to one month/year period.
type Newspaper struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Month     int                `bson:"month" json:"month"`
	Year      int                `bson:"year" json:"year"`
	Rates     Rates              `bson:"rates" json:"rates"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Rates holds the price per weekday. All seven keys are always present on
// the wire; a weekday omitted on input decodes to 0.
type Rates struct {
	Sunday    float64 `bson:"sunday" json:"sunday"`
	Monday    float64 `bson:"monday" json:"monday"`
	Tuesday   float64 `bson:"tuesday" json:"tuesday"`
	Wednesday float64 `bson:"wednesday" json:"wednesday"`
	Thursday  float64 `bson:"thursday" json:"thursday"`
	Friday    float64 `bson:"friday" json:"friday"`
	Saturday  float64 `bson:"saturday" json:"saturday"`
}

// ForWeekday maps time.Weekday onto the stored rate keys. time.Weekday
// numbers Sunday as 0, the same convention the rate table was written
// with; this switch is the single place that mapping lives.
func (r Rates) ForWeekday(d time.Weekday) float64 {
	switch d {
	case time.Sunday:
		return r.Sunday
	case time.Monday:
		return r.Monday
	case time.Tuesday:
		return r.Tuesday
	case time.Wednesday:
		return r.Wednesday
	case time.Thursday:
		return r.Thursday
	case time.Friday:
		return r.Friday
	case time.Saturday:
		return r.Saturday
	}
	return 0
}
