package handlers

import (
	"testing"
	"time"

	"ecocropshare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHistoryResponsePlaceholders(t *testing.T) {
	row := historyWithRefs{
		History: models.History{
			ID:        primitive.NewObjectID(),
			UserID:    primitive.NewObjectID(),
			PartnerID: primitive.NewObjectID(),
			PlantName: "Tomat",
			Date:      time.Now(),
			Type:      models.HistoryTypePost,
		},
	}

	entry := historyResponse(row)

	if entry.User.Name != "Unknown User" {
		t.Errorf("missing user should map to placeholder, got %q", entry.User.Name)
	}
	if entry.Partner.Name != "Unknown Partner" {
		t.Errorf("missing partner should map to placeholder, got %q", entry.Partner.Name)
	}
	if entry.Post != nil {
		t.Errorf("missing post reference should stay nil")
	}
	if entry.Request != nil {
		t.Errorf("missing request reference should stay nil")
	}
}

func TestHistoryResponseResolvedRefs(t *testing.T) {
	userID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	row := historyWithRefs{
		History: models.History{
			ID:        primitive.NewObjectID(),
			PostID:    &postID,
			PlantName: "Cabai",
			Type:      models.HistoryTypePost,
		},
		User:    &models.UserRef{ID: userID, Name: "Budi", Email: "budi@example.com"},
		Partner: &models.UserRef{Name: "Sari", Email: "sari@example.com"},
		Post:    &models.PostRef{ID: postID, Title: "Bibit cabai"},
	}

	entry := historyResponse(row)

	if entry.User.Name != "Budi" || entry.User.Email != "budi@example.com" {
		t.Errorf("resolved user mangled: %+v", entry.User)
	}
	if entry.Partner.Name != "Sari" {
		t.Errorf("resolved partner mangled: %+v", entry.Partner)
	}
	if entry.Post == nil || entry.Post.Title != "Bibit cabai" {
		t.Errorf("resolved post mangled: %+v", entry.Post)
	}
}

func TestOwnerOrUnknown(t *testing.T) {
	if got := OwnerOrUnknown(nil, "Unknown User"); got.Name != "Unknown User" || got.Email != "" {
		t.Errorf("nil ref: got %+v", got)
	}
	if got := OwnerOrUnknown(&models.UserRef{}, "Unknown Partner"); got.Name != "Unknown Partner" {
		t.Errorf("empty ref: got %+v", got)
	}
	ref := &models.UserRef{ID: primitive.NewObjectID(), Name: "Ana", Email: "ana@example.com"}
	if got := OwnerOrUnknown(ref, "Unknown User"); got.Name != "Ana" || got.Email != "ana@example.com" {
		t.Errorf("present ref: got %+v", got)
	}
}
