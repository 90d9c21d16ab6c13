package handlers

import (
	"net/http"
	"strings"
	"time"

	"ecocropshare/middleware"
	"ecocropshare/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// All user endpoints sit behind middleware.RequireSuperadmin; the checks
// here are the per-document rules (self-modification, email uniqueness).

func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := h.db.Users.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		h.internalError(c, "Error fetching users", err)
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		h.internalError(c, "Error fetching users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	err = h.db.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error fetching user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and password are required"})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be user, admin, or superadmin"})
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := dbCtx()
	defer cancel()

	count, err := h.db.Users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		h.internalError(c, "Error creating user", err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.internalError(c, "Error creating user", err)
		return
	}

	now := time.Now()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     isActive,
		Preferences: models.Preferences{
			Notifications: models.NotificationPrefs{Email: true, Push: true},
			Privacy:       models.PrivacyPrefs{ShowProfile: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.db.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
		h.internalError(c, "Error creating user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, role, and isActive are required"})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be user, admin, or superadmin"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	err = h.db.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error updating user", err)
		return
	}

	// A superadmin cannot demote or deactivate their own account.
	if user.ID.Hex() == c.GetString(middleware.CtxUserID) {
		if req.Role != user.Role || *req.IsActive != user.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot modify your own role or status"})
			return
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != user.Email {
		count, err := h.db.Users.CountDocuments(ctx, bson.M{"email": email, "_id": bson.M{"$ne": id}})
		if err != nil {
			h.internalError(c, "Error updating user", err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
	}

	update := bson.M{
		"name":      strings.TrimSpace(req.Name),
		"email":     email,
		"role":      req.Role,
		"isActive":  *req.IsActive,
		"updatedAt": time.Now(),
	}

	if req.Password != "" {
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			h.internalError(c, "Error updating user", err)
			return
		}
		update["password"] = string(hash)
	}

	var updated models.User
	err = h.db.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
		h.internalError(c, "Error updating user", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	if id.Hex() == c.GetString(middleware.CtxUserID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete your own account"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := h.db.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		h.internalError(c, "Error deleting user", err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
