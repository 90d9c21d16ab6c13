package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecocropshare/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// These exercise the validation paths that reject a payload before any
// store call is made; the handler deliberately has no database behind it.
func testHandler() *Handler {
	return New(nil, zerolog.Nop(), "test-secret")
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string, setup func(*gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if setup != nil {
		setup(c)
	}
	handler(c)
	return w
}

func TestCreateArticleRejectsMissingFields(t *testing.T) {
	h := testHandler()

	cases := []struct {
		name string
		body string
	}{
		{"empty", `{}`},
		{"no title", `{"content":"c","userId":"abc"}`},
		{"no content", `{"title":"t","userId":"abc"}`},
		{"no userId", `{"title":"t","content":"c"}`},
	}
	for _, tc := range cases {
		w := postJSON(t, h.CreateArticle, tc.body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, w.Code)
		}
	}
}

func TestCreateArticleRejectsMalformedUserID(t *testing.T) {
	h := testHandler()
	w := postJSON(t, h.CreateArticle, `{"title":"t","content":"c","userId":"not-an-oid"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestCreatePostValidation(t *testing.T) {
	h := testHandler()
	oid := primitive.NewObjectID().Hex()

	cases := []struct {
		name string
		body string
	}{
		{"missing everything", `{}`},
		{"bad type", `{"userId":"` + oid + `","title":"t","type":"flower","quantity":1,"location":"l","description":"d"}`},
		{"zero quantity", `{"userId":"` + oid + `","title":"t","type":"seed","quantity":0,"location":"l","description":"d"}`},
		{"bad exchange type", `{"userId":"` + oid + `","title":"t","type":"seed","exchangeType":"loan","quantity":1,"location":"l","description":"d"}`},
		{"bad status", `{"userId":"` + oid + `","title":"t","type":"seed","quantity":1,"location":"l","description":"d","status":"traded"}`},
	}
	for _, tc := range cases {
		w := postJSON(t, h.CreatePost, tc.body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, w.Code)
		}
	}
}

func TestCreateHistoryValidation(t *testing.T) {
	h := testHandler()
	oid := primitive.NewObjectID().Hex()

	cases := []struct {
		name string
		body string
	}{
		{"missing partner", `{"userId":"` + oid + `","plantName":"p","type":"post"}`},
		{"bad type", `{"userId":"` + oid + `","partnerId":"` + oid + `","plantName":"p","type":"trade"}`},
		{"bad postId", `{"userId":"` + oid + `","partnerId":"` + oid + `","plantName":"p","type":"post","postId":"xyz"}`},
	}
	for _, tc := range cases {
		w := postJSON(t, h.CreateHistory, tc.body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, w.Code)
		}
	}
}

func TestCreateUserValidation(t *testing.T) {
	h := testHandler()

	cases := []struct {
		name string
		body string
	}{
		{"short password", `{"name":"n","email":"a@b.com","password":"12345"}`},
		{"bad email", `{"name":"n","email":"nope","password":"123456"}`},
		{"bad role", `{"name":"n","email":"a@b.com","password":"123456","role":"owner"}`},
	}
	for _, tc := range cases {
		w := postJSON(t, h.CreateUser, tc.body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, w.Code)
		}
	}
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	h := testHandler()
	selfID := primitive.NewObjectID()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: selfID.Hex()}}
	c.Set(middleware.CtxUserID, selfID.Hex())

	h.DeleteUser(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("self-delete: got %d, want 400", w.Code)
	}
}

func TestDeletePostRejectsMalformedID(t *testing.T) {
	h := testHandler()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "bogus"}}

	h.DeletePost(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}
