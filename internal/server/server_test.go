package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/smartdetector/moderation/internal/alert"
	"github.com/smartdetector/moderation/internal/classifier"
	"github.com/smartdetector/moderation/internal/models"
	"github.com/smartdetector/moderation/internal/moderation"
	"github.com/smartdetector/moderation/internal/storage"
)

type recordingNotifier struct {
	sent []models.AlertMessage
}

func (r *recordingNotifier) Notify(_ context.Context, msg models.AlertMessage) error {
	r.sent = append(r.sent, msg)
	return nil
}

func newTestServer(t *testing.T) (*Server, *storage.MemoryStorage, *recordingNotifier) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := storage.NewMemoryStorage()
	notifier := &recordingNotifier{}
	orchestrator := moderation.New(
		classifier.NewKeywordClassifier(),
		store,
		store,
		alert.NewComposer("http://localhost:3000"),
		notifier,
		logger,
	)
	return New(store, orchestrator, logger), store, notifier
}

func seedFriends(t *testing.T, store *storage.MemoryStorage) {
	t.Helper()
	require.NoError(t, store.SaveUser(&models.User{ID: "author-1", Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, store.SaveUser(&models.User{ID: "friend-1", Name: "Bob", Email: "bob@example.com"}))
	require.NoError(t, store.SaveUser(&models.User{ID: "friend-2", Name: "Carol", Email: "carol@example.com"}))
	require.NoError(t, store.AddFriend("author-1", "friend-1"))
	require.NoError(t, store.AddFriend("author-1", "friend-2"))
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreatePostFlagsRiskyContentAndNotifiesFriends(t *testing.T) {
	srv, store, notifier := newTestServer(t)
	seedFriends(t, store)
	handler := srv.Routes()

	rec := postJSON(t, handler, "/api/posts", createPostRequest{
		AuthorID: "author-1",
		Title:    "I want to end it",
		Content:  "",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.ContentItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.True(t, post.RiskFlag)
	assert.Equal(t, 1, post.RiskScore)
	assert.NotNil(t, post.RiskDetectedAt)

	// Annotation is persisted with the post.
	stored, err := store.GetPost(post.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.RiskFlag)

	require.Len(t, notifier.sent, 2)
	for _, msg := range notifier.sent {
		assert.Contains(t, msg.HTMLBody, "post="+post.ID)
	}
}

func TestCreatePostSafeContentSendsNoAlerts(t *testing.T) {
	srv, store, notifier := newTestServer(t)
	seedFriends(t, store)

	rec := postJSON(t, srv.Routes(), "/api/posts", createPostRequest{
		AuthorID: "author-1",
		Title:    "Sunny day",
		Content:  "Great weather",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.ContentItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.False(t, post.RiskFlag)
	assert.Nil(t, post.RiskDetectedAt)
	assert.Empty(t, notifier.sent)
}

func TestCreatePostValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := postJSON(t, srv.Routes(), "/api/posts", createPostRequest{Title: "no author"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCommentFlagsAndNotifiesCommentersFriends(t *testing.T) {
	srv, store, notifier := newTestServer(t)
	seedFriends(t, store)
	require.NoError(t, store.SaveUser(&models.User{ID: "commenter-1", Name: "Frank", Email: "frank@example.com"}))
	require.NoError(t, store.SaveUser(&models.User{ID: "friend-9", Name: "Erin", Email: "erin@example.com"}))
	require.NoError(t, store.AddFriend("commenter-1", "friend-9"))

	handler := srv.Routes()

	rec := postJSON(t, handler, "/api/posts", createPostRequest{
		AuthorID: "author-1",
		Title:    "Sunny day",
		Content:  "Great weather",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.ContentItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	require.Empty(t, notifier.sent)

	rec = postJSON(t, handler, "/api/posts/"+post.ID+"/comments", addCommentRequest{
		UserID: "commenter-1",
		Text:   "no reason to live",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.ContentItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.Comments, 1)
	assert.True(t, updated.Comments[0].RiskFlag)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "erin@example.com", notifier.sent[0].RecipientEmail)
	assert.Equal(t, alert.SubjectComment, notifier.sent[0].Subject)
}

func TestAddCommentUnknownPost(t *testing.T) {
	srv, store, _ := newTestServer(t)
	require.NoError(t, store.SaveUser(&models.User{ID: "u1", Name: "Alice"}))

	rec := postJSON(t, srv.Routes(), "/api/posts/missing/comments", addCommentRequest{
		UserID: "u1",
		Text:   "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPost(t *testing.T) {
	srv, store, _ := newTestServer(t)
	require.NoError(t, store.SaveUser(&models.User{ID: "author-1", Name: "Alice"}))
	require.NoError(t, store.CreatePost(&models.ContentItem{ID: "post-1", AuthorID: "author-1", Kind: models.PostContent, Title: "Hi"}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/post-1", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil)
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
