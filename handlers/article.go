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

type articleWithOwner struct {
	models.Article `bson:",inline"`
	Owner          *models.UserRef `bson:"user"`
}

func articleResponse(a articleWithOwner) models.Article {
	owner := OwnerOrUnknown(a.Owner, "Unknown User")
	a.Article.User = &owner
	return a.Article
}

func (h *Handler) ListArticles(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := h.db.Articles.Aggregate(ctx, ownerLookupPipeline(bson.D{}))
	if err != nil {
		h.internalError(c, "Error fetching articles", err)
		return
	}
	defer cursor.Close(ctx)

	var rows []articleWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		h.internalError(c, "Error fetching articles", err)
		return
	}

	articles := make([]models.Article, len(rows))
	for i, row := range rows {
		articles[i] = articleResponse(row)
	}

	c.JSON(http.StatusOK, articles)
}

type CreateArticleRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	UserID   string   `json:"userId" binding:"required"`
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, content, and userId are required"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	// The owner must exist at creation time; articles may dangle later if
	// the user is deleted, list rendering tolerates that.
	var owner models.UserRef
	err = h.db.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error creating article", err)
		return
	}

	now := time.Now()
	article := models.Article{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		Image:     req.Image,
		Category:  req.Category,
		Tags:      req.Tags,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}

	if _, err := h.db.Articles.InsertOne(ctx, article); err != nil {
		h.internalError(c, "Error creating article", err)
		return
	}

	article.User = &owner
	c.JSON(http.StatusCreated, article)
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid article ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	article, err := h.findArticle(ctx, id)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error fetching article", err)
		return
	}

	c.JSON(http.StatusOK, article)
}

type UpdateArticleRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid article ID"})
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and content are required"})
		return
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Articles.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":     req.Title,
		"content":   req.Content,
		"image":     req.Image,
		"category":  req.Category,
		"tags":      req.Tags,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		h.internalError(c, "Error updating article", err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	article, err := h.findArticle(ctx, id)
	if err != nil {
		h.internalError(c, "Error updating article", err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid article ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Articles.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		h.internalError(c, "Error deleting article", err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

func (h *Handler) findArticle(ctx context.Context, id primitive.ObjectID) (models.Article, error) {
	cursor, err := h.db.Articles.Aggregate(ctx, ownerLookupPipeline(bson.D{{Key: "_id", Value: id}}))
	if err != nil {
		return models.Article{}, err
	}
	defer cursor.Close(ctx)

	var rows []articleWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		return models.Article{}, err
	}
	if len(rows) == 0 {
		return models.Article{}, mongo.ErrNoDocuments
	}
	return articleResponse(rows[0]), nil
}
