package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostTypeSeed    = "seed"
	PostTypeHarvest = "harvest"

	ExchangeBarter = "barter"
	ExchangeFree   = "free"

	// Canonical post lifecycle. "reserved" sits between a match being
	// agreed and the hand-off being recorded in history.
	PostStatusAvailable = "available"
	PostStatusReserved  = "reserved"
	PostStatusCompleted = "completed"
)

func ValidPostType(t string) bool {
	return t == PostTypeSeed || t == PostTypeHarvest
}

func ValidExchangeType(t string) bool {
	return t == ExchangeBarter || t == ExchangeFree
}

func ValidPostStatus(s string) bool {
	return s == PostStatusAvailable || s == PostStatusReserved || s == PostStatusCompleted
}

type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Title        string             `bson:"title" json:"title"`
	Type         string             `bson:"type" json:"type"`
	ExchangeType string             `bson:"exchangeType" json:"exchangeType"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Location     string             `bson:"location" json:"location"`
	Images       []string           `bson:"images" json:"images"`
	Description  string             `bson:"description" json:"description"`
	Status       string             `bson:"status" json:"status"`
	User         *UserRef           `bson:"-" json:"user,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
