package handlers

import (
	"net/http"
	"strings"
	"time"

	"ecocropshare/middleware"
	"ecocropshare/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin-panel session against the users collection.
// Only active accounts with role admin or superadmin may sign in; every
// failure mode returns the same 401 body.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	err := h.db.Users.FindOne(ctx, bson.M{
		"email":    strings.ToLower(strings.TrimSpace(req.Email)),
		"isActive": true,
		"role":     bson.M{"$in": []string{models.RoleAdmin, models.RoleSuperadmin}},
	}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		h.internalError(c, "Error signing in", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	// lastLogin moves only after the password checks out.
	now := time.Now()
	if _, err := h.db.Users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"lastLogin": now}},
	); err != nil {
		h.internalError(c, "Error signing in", err)
		return
	}
	user.LastLogin = &now

	token, err := h.issueToken(&user)
	if err != nil {
		h.internalError(c, "Error signing in", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID.Hex(),
			"email":    user.Email,
			"name":     user.Name,
			"role":     user.Role,
			"isActive": user.IsActive,
		},
	})
}

// Me returns the authenticated principal, reloaded from the store so role
// or status changes made since login are visible.
func (h *Handler) Me(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	err = h.db.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error fetching profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) issueToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		IsActive: user.IsActive,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
