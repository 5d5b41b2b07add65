package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartdetector/moderation/internal/models"
	"github.com/smartdetector/moderation/internal/moderation"
	"github.com/smartdetector/moderation/internal/storage"
)

// Server is the thin content-creation write path. It owns persistence and
// hands every new post or comment to the moderation orchestrator before
// writing it, so the annotated risk fields are what gets persisted.
type Server struct {
	store  storage.Storage
	mod    *moderation.Orchestrator
	logger *zap.Logger
}

func New(store storage.Storage, mod *moderation.Orchestrator, logger *zap.Logger) *Server {
	return &Server{store: store, mod: mod, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/posts", s.handleCreatePost)
		r.Get("/posts/{id}", s.handleGetPost)
		r.Post("/posts/{id}/comments", s.handleAddComment)
	})

	return r
}

type createPostRequest struct {
	AuthorID string `json:"author_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
}

type addCommentRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AuthorID == "" {
		s.writeError(w, http.StatusBadRequest, "author_id is required")
		return
	}

	post := &models.ContentItem{
		ID:        uuid.NewString(),
		AuthorID:  req.AuthorID,
		Kind:      models.PostContent,
		Title:     req.Title,
		Text:      req.Content,
		MediaPath: req.Image,
		CreatedAt: time.Now(),
	}

	// Classification completes before the response; fan-out failures never
	// reach the caller.
	s.mod.ModeratePost(r.Context(), post)

	if err := s.store.CreatePost(post); err != nil {
		s.logger.Error("failed to create post", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	s.writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.GetPost(chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error("failed to fetch post", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	if post == nil {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}

	s.writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "user_id and text are required")
		return
	}

	post, err := s.store.GetPost(chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error("failed to fetch post", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	if post == nil {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}

	comment := &models.ContentItem{
		ID:           uuid.NewString(),
		AuthorID:     req.UserID,
		Kind:         models.CommentContent,
		Text:         req.Text,
		ParentPostID: post.ID,
		CreatedAt:    time.Now(),
	}

	s.mod.ModerateComment(r.Context(), comment, post.MediaPath)

	if err := s.store.AddComment(comment); err != nil {
		s.logger.Error("failed to add comment", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to add comment")
		return
	}

	updated, err := s.store.GetPost(post.ID)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload post", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to reload post")
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
