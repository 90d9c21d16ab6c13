package handlers

import (
	"context"
	"net/http"
	"time"

	"ecocropshare/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type requestWithOwner struct {
	models.Request `bson:",inline"`
	Owner          *models.UserRef `bson:"user"`
}

func requestResponse(r requestWithOwner) models.Request {
	owner := OwnerOrUnknown(r.Owner, "Unknown User")
	r.Request.User = &owner
	return r.Request
}

func (h *Handler) ListRequests(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := h.db.Requests.Aggregate(ctx, ownerLookupPipeline(bson.D{}))
	if err != nil {
		h.internalError(c, "Error fetching requests", err)
		return
	}
	defer cursor.Close(ctx)

	var rows []requestWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		h.internalError(c, "Error fetching requests", err)
		return
	}

	requests := make([]models.Request, len(rows))
	for i, row := range rows {
		requests[i] = requestResponse(row)
	}

	c.JSON(http.StatusOK, requests)
}

type CreateRequestRequest struct {
	UserID    string `json:"userId" binding:"required"`
	PlantName string `json:"plantName" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Category  string `json:"category"`
	Quantity  string `json:"quantity"`
	Status    string `json:"status"`
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "PlantName, location, reason, and userId are required"})
		return
	}

	if req.Category == "" {
		req.Category = models.DefaultRequestCategory
	}
	if req.Quantity == "" {
		req.Quantity = models.DefaultRequestQuantity
	}
	if req.Status == "" {
		req.Status = models.RequestStatusOpen
	}
	if !models.ValidRequestStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be open or fulfilled"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var owner models.UserRef
	err = h.db.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error creating request", err)
		return
	}

	now := time.Now()
	request := models.Request{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		PlantName: req.PlantName,
		Location:  req.Location,
		Reason:    req.Reason,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Status:    req.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.db.Requests.InsertOne(ctx, request); err != nil {
		h.internalError(c, "Error creating request", err)
		return
	}

	request.User = &owner
	c.JSON(http.StatusCreated, request)
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	request, err := h.findRequest(ctx, id)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Request not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error fetching request", err)
		return
	}

	c.JSON(http.StatusOK, request)
}

type UpdateRequestRequest struct {
	PlantName string `json:"plantName" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

func (h *Handler) UpdateRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request ID"})
		return
	}

	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "PlantName, location, reason, category, quantity, and status are required"})
		return
	}
	if !models.ValidRequestStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be open or fulfilled"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Requests.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"plantName": req.PlantName,
		"location":  req.Location,
		"reason":    req.Reason,
		"category":  req.Category,
		"quantity":  req.Quantity,
		"status":    req.Status,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		h.internalError(c, "Error updating request", err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Request not found"})
		return
	}

	request, err := h.findRequest(ctx, id)
	if err != nil {
		h.internalError(c, "Error updating request", err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *Handler) DeleteRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Requests.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		h.internalError(c, "Error deleting request", err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}

func (h *Handler) findRequest(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	cursor, err := h.db.Requests.Aggregate(ctx, ownerLookupPipeline(bson.D{{Key: "_id", Value: id}}))
	if err != nil {
		return models.Request{}, err
	}
	defer cursor.Close(ctx)

	var rows []requestWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		return models.Request{}, err
	}
	if len(rows) == 0 {
		return models.Request{}, mongo.ErrNoDocuments
	}
	return requestResponse(rows[0]), nil
}
