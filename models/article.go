package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Article struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Image     string             `bson:"image" json:"image"`
	Category  string             `bson:"category" json:"category"`
	Tags      []string           `bson:"tags" json:"tags"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	User      *UserRef           `bson:"-" json:"user,omitempty"` // populated in responses only
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
