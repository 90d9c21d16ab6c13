package handlers

import (
	"net/http"
	"time"

	"ecocropshare/database"
	"ecocropshare/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type historyWithRefs struct {
	models.History `bson:",inline"`
	User           *models.UserRef    `bson:"user"`
	Partner        *models.UserRef    `bson:"partner"`
	Post           *models.PostRef    `bson:"post"`
	Request        *models.RequestRef `bson:"request"`
}

// HistoryEntry is the read shape of a history record: references resolved,
// with placeholders where the target no longer exists.
type HistoryEntry struct {
	ID        primitive.ObjectID `json:"id"`
	User      models.UserRef     `json:"userId"`
	Partner   models.UserRef     `json:"partnerId"`
	Post      *models.PostRef    `json:"postId"`
	Request   *models.RequestRef `json:"requestId"`
	PlantName string             `json:"plantName"`
	Date      time.Time          `json:"date"`
	Notes     string             `json:"notes,omitempty"`
	Type      string             `json:"type"`
}

func historyResponse(row historyWithRefs) HistoryEntry {
	return HistoryEntry{
		ID:        row.History.ID,
		User:      OwnerOrUnknown(row.User, "Unknown User"),
		Partner:   OwnerOrUnknown(row.Partner, "Unknown Partner"),
		Post:      row.Post,
		Request:   row.Request,
		PlantName: row.History.PlantName,
		Date:      row.History.Date,
		Notes:     row.History.Notes,
		Type:      row.History.Type,
	}
}

func historyPipeline() mongo.Pipeline {
	lookup := func(from, local, as string) bson.D {
		return bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: local},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}}
	}
	unwind := func(path string) bson.D {
		return bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + path},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}}
	}
	return mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		lookup(database.UsersCollection, "userId", "user"),
		unwind("user"),
		lookup(database.UsersCollection, "partnerId", "partner"),
		unwind("partner"),
		lookup(database.PostsCollection, "postId", "post"),
		unwind("post"),
		lookup(database.RequestsCollection, "requestId", "request"),
		unwind("request"),
	}
}

func (h *Handler) ListHistory(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := h.db.History.Aggregate(ctx, historyPipeline())
	if err != nil {
		h.internalError(c, "Error fetching history", err)
		return
	}
	defer cursor.Close(ctx)

	var rows []historyWithRefs
	if err := cursor.All(ctx, &rows); err != nil {
		h.internalError(c, "Error fetching history", err)
		return
	}

	entries := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = historyResponse(row)
	}

	c.JSON(http.StatusOK, entries)
}

type CreateHistoryRequest struct {
	PostID    string `json:"postId"`
	RequestID string `json:"requestId"`
	UserID    string `json:"userId" binding:"required"`
	PartnerID string `json:"partnerId" binding:"required"`
	PlantName string `json:"plantName" binding:"required"`
	Notes     string `json:"notes"`
	Type      string `json:"type" binding:"required"`
}

func (h *Handler) CreateHistory(c *gin.Context) {
	var req CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "UserId, partnerId, plantName, and type are required"})
		return
	}

	if !models.ValidHistoryType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Type must be post or request"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}
	partnerID, err := primitive.ObjectIDFromHex(req.PartnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid partnerId"})
		return
	}

	entry := models.History{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		PartnerID: partnerID,
		PlantName: req.PlantName,
		Date:      time.Now(),
		Notes:     req.Notes,
		Type:      req.Type,
	}

	if req.PostID != "" {
		postID, err := primitive.ObjectIDFromHex(req.PostID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid postId"})
			return
		}
		entry.PostID = &postID
	}
	if req.RequestID != "" {
		requestID, err := primitive.ObjectIDFromHex(req.RequestID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid requestId"})
			return
		}
		entry.RequestID = &requestID
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := h.db.History.InsertOne(ctx, entry); err != nil {
		h.internalError(c, "Error creating history", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) DeleteHistory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid history ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.History.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		h.internalError(c, "Error deleting history", err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "History not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "History deleted successfully"})
}
