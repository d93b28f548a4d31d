package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles known to the access gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that may sign in. Password holds the bcrypt hash and
// never leaves the process.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
