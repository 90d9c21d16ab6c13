package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	HistoryTypePost    = "post"
	HistoryTypeRequest = "request"
)

func ValidHistoryType(t string) bool {
	return t == HistoryTypePost || t == HistoryTypeRequest
}

// History records a completed exchange between two users. PostID or
// RequestID points at the listing it settled, depending on Type; either
// may dangle if the listing was deleted afterwards.
type History struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID    *primitive.ObjectID `bson:"postId,omitempty" json:"postId,omitempty"`
	RequestID *primitive.ObjectID `bson:"requestId,omitempty" json:"requestId,omitempty"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	PartnerID primitive.ObjectID  `bson:"partnerId" json:"partnerId"`
	PlantName string              `bson:"plantName" json:"plantName"`
	Date      time.Time           `bson:"date" json:"date"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Type      string              `bson:"type" json:"type"`
}

// PostRef and RequestRef are the populated shapes of history's listing
// references.
type PostRef struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title string             `bson:"title" json:"title"`
}

type RequestRef struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PlantName string             `bson:"plantName" json:"plantName"`
}
