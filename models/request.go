package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestStatusOpen      = "open"
	RequestStatusFulfilled = "fulfilled"

	DefaultRequestCategory = "buah"
	DefaultRequestQuantity = "1"
)

func ValidRequestStatus(s string) bool {
	return s == RequestStatusOpen || s == RequestStatusFulfilled
}

// Request is a wanted-plant listing. Quantity is free text ("1", "2 kg",
// "a handful"), unlike the numeric quantity on posts.
type Request struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PlantName string             `bson:"plantName" json:"plantName"`
	Location  string             `bson:"location" json:"location"`
	Reason    string             `bson:"reason" json:"reason"`
	Category  string             `bson:"category" json:"category"`
	Quantity  string             `bson:"quantity" json:"quantity"`
	Status    string             `bson:"status" json:"status"`
	User      *UserRef           `bson:"-" json:"user,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
