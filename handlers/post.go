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

type postWithOwner struct {
	models.Post `bson:",inline"`
	Owner       *models.UserRef `bson:"user"`
}

func postResponse(p postWithOwner) models.Post {
	owner := OwnerOrUnknown(p.Owner, "Unknown User")
	p.Post.User = &owner
	return p.Post
}

func (h *Handler) ListPosts(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := h.db.Posts.Aggregate(ctx, ownerLookupPipeline(bson.D{}))
	if err != nil {
		h.internalError(c, "Error fetching posts", err)
		return
	}
	defer cursor.Close(ctx)

	var rows []postWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		h.internalError(c, "Error fetching posts", err)
		return
	}

	posts := make([]models.Post, len(rows))
	for i, row := range rows {
		posts[i] = postResponse(row)
	}

	c.JSON(http.StatusOK, posts)
}

type CreatePostRequest struct {
	UserID       string   `json:"userId" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	ExchangeType string   `json:"exchangeType"`
	Quantity     int      `json:"quantity" binding:"required,min=1"`
	Location     string   `json:"location" binding:"required"`
	Images       []string `json:"images"`
	Description  string   `json:"description" binding:"required"`
	Status       string   `json:"status"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, type, quantity, location, description, and userId are required"})
		return
	}

	if !models.ValidPostType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Type must be seed or harvest"})
		return
	}
	if req.ExchangeType == "" {
		req.ExchangeType = models.ExchangeBarter
	}
	if !models.ValidExchangeType(req.ExchangeType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Exchange type must be barter or free"})
		return
	}
	if req.Status == "" {
		req.Status = models.PostStatusAvailable
	}
	if !models.ValidPostStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be available, reserved, or completed"})
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
		h.internalError(c, "Error creating post", err)
		return
	}

	now := time.Now()
	post := models.Post{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Title:        req.Title,
		Type:         req.Type,
		ExchangeType: req.ExchangeType,
		Quantity:     req.Quantity,
		Location:     req.Location,
		Images:       req.Images,
		Description:  req.Description,
		Status:       req.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if post.Images == nil {
		post.Images = []string{}
	}

	if _, err := h.db.Posts.InsertOne(ctx, post); err != nil {
		h.internalError(c, "Error creating post", err)
		return
	}

	post.User = &owner
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) GetPost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	post, err := h.findPost(ctx, id)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error fetching post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type UpdatePostRequest struct {
	Title        string   `json:"title" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	ExchangeType string   `json:"exchangeType" binding:"required"`
	Quantity     int      `json:"quantity" binding:"required,min=1"`
	Location     string   `json:"location" binding:"required"`
	Images       []string `json:"images"`
	Description  string   `json:"description" binding:"required"`
	Status       string   `json:"status" binding:"required"`
}

func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, type, exchangeType, quantity, location, description, and status are required"})
		return
	}

	if !models.ValidPostType(req.Type) || !models.ValidExchangeType(req.ExchangeType) || !models.ValidPostStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid type, exchangeType, or status"})
		return
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":        req.Title,
		"type":         req.Type,
		"exchangeType": req.ExchangeType,
		"quantity":     req.Quantity,
		"location":     req.Location,
		"images":       req.Images,
		"description":  req.Description,
		"status":       req.Status,
		"updatedAt":    time.Now(),
	}})
	if err != nil {
		h.internalError(c, "Error updating post", err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	post, err := h.findPost(ctx, id)
	if err != nil {
		h.internalError(c, "Error updating post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		h.internalError(c, "Error deleting post", err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (h *Handler) findPost(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	cursor, err := h.db.Posts.Aggregate(ctx, ownerLookupPipeline(bson.D{{Key: "_id", Value: id}}))
	if err != nil {
		return models.Post{}, err
	}
	defer cursor.Close(ctx)

	var rows []postWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		return models.Post{}, err
	}
	if len(rows) == 0 {
		return models.Post{}, mongo.ErrNoDocuments
	}
	return postResponse(rows[0]), nil
}
