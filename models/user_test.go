package models

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserJSONNeverLeaksPassword(t *testing.T) {
	u := User{
		ID:           primitive.NewObjectID(),
		Name:         "Admin",
		Email:        "admin@ecocropshare.com",
		PasswordHash: "$2a$12$secrethashsecrethash",
		Role:         RoleSuperadmin,
		IsActive:     true,
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "secrethash") {
		t.Errorf("serialized user contains password hash: %s", out)
	}
	if strings.Contains(string(out), "password") {
		t.Errorf("serialized user exposes a password field: %s", out)
	}
}

func TestRoleChecks(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAdmin, RoleSuperadmin} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	if ValidRole("owner") || ValidRole("") {
		t.Error("unknown roles should be invalid")
	}

	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() || admin.IsSuperadmin() {
		t.Error("admin role checks wrong")
	}
	super := User{Role: RoleSuperadmin}
	if !super.IsAdmin() || !super.IsSuperadmin() {
		t.Error("superadmin role checks wrong")
	}
	plain := User{Role: RoleUser}
	if plain.IsAdmin() {
		t.Error("plain user should not be admin")
	}
}

func TestPostEnums(t *testing.T) {
	for _, s := range []string{PostStatusAvailable, PostStatusReserved, PostStatusCompleted} {
		if !ValidPostStatus(s) {
			t.Errorf("ValidPostStatus(%q) = false", s)
		}
	}
	if ValidPostStatus("traded") {
		t.Error("traded is not a canonical status")
	}
	if !ValidPostType(PostTypeSeed) || !ValidPostType(PostTypeHarvest) || ValidPostType("flower") {
		t.Error("post type validation wrong")
	}
	if !ValidExchangeType(ExchangeBarter) || !ValidExchangeType(ExchangeFree) || ValidExchangeType("loan") {
		t.Error("exchange type validation wrong")
	}
}

func TestRequestAndHistoryEnums(t *testing.T) {
	if !ValidRequestStatus(RequestStatusOpen) || !ValidRequestStatus(RequestStatusFulfilled) || ValidRequestStatus("closed") {
		t.Error("request status validation wrong")
	}
	if !ValidHistoryType(HistoryTypePost) || !ValidHistoryType(HistoryTypeRequest) || ValidHistoryType("trade") {
		t.Error("history type validation wrong")
	}
}
