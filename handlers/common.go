package handlers

import (
	"context"
	"time"

	"ecocropshare/database"
	"ecocropshare/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler carries the shared dependencies for every endpoint. One instance
// is built in main and registered on the router.
type Handler struct {
	db        *database.DB
	log       zerolog.Logger
	jwtSecret string
}

func New(db *database.DB, log zerolog.Logger, jwtSecret string) *Handler {
	return &Handler{db: db, log: log, jwtSecret: jwtSecret}
}

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.JSON(500, gin.H{"message": msg})
}

// OwnerOrUnknown converts a populated owner reference to its response
// shape, degrading to a placeholder when the referenced user is gone.
func OwnerOrUnknown(ref *models.UserRef, placeholder string) models.UserRef {
	if ref == nil || ref.Name == "" {
		return models.UserRef{Name: placeholder}
	}
	return models.UserRef{ID: ref.ID, Name: ref.Name, Email: ref.Email}
}

// ownerLookupPipeline is the shared list shape: filter, newest first, then
// join the owning user and keep rows whose owner is missing.
func ownerLookupPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.UsersCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
