package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a principal can hold. Admin-panel sessions require RoleAdmin or
// RoleSuperadmin; RoleUser accounts exist only as data managed by the panel.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleSuperadmin
}

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// GeoPoint is a GeoJSON point, [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Profile struct {
	Avatar   string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio      string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Phone    string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address  *Address  `bson:"address,omitempty" json:"address,omitempty"`
	Location *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
}

type NotificationPrefs struct {
	Email bool `bson:"email" json:"email"`
	Push  bool `bson:"push" json:"push"`
}

type PrivacyPrefs struct {
	ShowProfile bool `bson:"showProfile" json:"showProfile"`
	ShowEmail   bool `bson:"showEmail" json:"showEmail"`
}

type Preferences struct {
	Notifications NotificationPrefs `bson:"notifications" json:"notifications"`
	Privacy       PrivacyPrefs      `bson:"privacy" json:"privacy"`
}

type Stats struct {
	PostsCount       int     `bson:"postsCount" json:"postsCount"`
	RequestsCount    int     `bson:"requestsCount" json:"requestsCount"`
	SuccessfulTrades int     `bson:"successfulTrades" json:"successfulTrades"`
	Rating           float64 `bson:"rating" json:"rating"`
	TotalRatings     int     `bson:"totalRatings" json:"totalRatings"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Profile      Profile            `bson:"profile,omitempty" json:"profile"`
	Preferences  Preferences        `bson:"preferences,omitempty" json:"preferences"`
	Stats        Stats              `bson:"stats,omitempty" json:"stats"`
	LastLogin    *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserRef is the populated shape of an owner reference: just enough to
// render "who" in a list without leaking the rest of the account.
type UserRef struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}
