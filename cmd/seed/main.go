// Command seed bootstraps the admin-panel accounts. Safe to run more than
// once: existing emails are left untouched.
package main

import (
	"context"
	"time"

	"ecocropshare/config"
	"ecocropshare/database"
	"ecocropshare/logger"
	"ecocropshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	log := logger.Init()

	if cfg.MongoURI == "" {
		log.Fatal().Msg("MONGODB_URI must be set")
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to MongoDB")
	}
	defer db.Disconnect()

	accounts := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Super Administrator", "superadmin@ecocropshare.com", "password123", models.RoleSuperadmin},
		{"Administrator", "admin@ecocropshare.com", "password123", models.RoleAdmin},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, acc := range accounts {
		count, err := db.Users.CountDocuments(ctx, bson.M{"email": acc.email})
		if err != nil {
			log.Fatal().Err(err).Msg("Error checking existing accounts")
		}
		if count > 0 {
			log.Info().Str("email", acc.email).Msg("Account already exists, skipping")
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), 12)
		if err != nil {
			log.Fatal().Err(err).Msg("Error hashing password")
		}

		now := time.Now()
		user := models.User{
			ID:           primitive.NewObjectID(),
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: string(hash),
			Role:         acc.role,
			IsActive:     true,
			Preferences: models.Preferences{
				Notifications: models.NotificationPrefs{Email: true, Push: true},
				Privacy:       models.PrivacyPrefs{ShowProfile: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := db.Users.InsertOne(ctx, user); err != nil {
			log.Fatal().Err(err).Str("email", acc.email).Msg("Error creating account")
		}
		log.Info().Str("email", acc.email).Str("role", acc.role).Msg("Account created")
	}
}
