package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/schoolboard/backend/internal/middleware"
	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps methods for post and comment business logic.
type ContentService interface {
	// Method ListPosts retrieves post summaries, newest first, optionally filtered
	// by exact category and a case-insensitive title/content search.
	ListPosts(ctx context.Context, category, search string) ([]models.PostSummary, error)
	// Method CreatePost validates and persists a post with its images for the caller.
	//
	// Fails with models.ErrUnauthenticated without an identity and models.ErrValidation
	// on blank title or content.
	CreatePost(ctx context.Context, identity *models.Identity, req *models.CreatePostRequest) (int, error)
	// Method GetPost retrieves a post with its images and comments.
	//
	// Fails with models.ErrNotFound when no such post exists.
	GetPost(ctx context.Context, postID int) (*models.PostDetail, error)
	// Method DeletePost removes a post and everything attached to it; admin only.
	DeletePost(ctx context.Context, identity *models.Identity, postID int) error
	// Method AddComment adds a comment to an existing post for the caller.
	AddComment(ctx context.Context, identity *models.Identity, postID int, content string) error
}

// PostHandler handles post and comment HTTP requests
type PostHandler struct {
	BaseHandler
	contentService ContentService
}

// NewPostHandler creates a new post handler
func NewPostHandler(contentService ContentService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		BaseHandler:    BaseHandler{logger: logger},
		contentService: contentService,
	}
}

// RegisterRoutes registers all post handler routes
// Note: This assumes the router is already scoped to /api
func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Create)
			r.Post("/{id}/delete", h.Delete)
			r.Post("/{id}/comments", h.AddComment)
		})
	})
}

// List handles GET /api/posts
// @Summary List posts
// @Description List post summaries newest first, filtered by category and/or search query
// @Tags posts
// @Produce json
// @Param category query string false "Exact category filter"
// @Param q query string false "Case-insensitive title/content search"
// @Success 200 {object} map[string]any "Post list"
// @Router /api/posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("q")

	posts, err := h.contentService.ListPosts(r.Context(), category, search)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "posts": posts})
}

// Create handles POST /api/posts
// @Summary Create a post
// @Description Create a post with optional category and up to 10 inline images
// @Tags posts
// @Accept json
// @Produce json
// @Param request body models.CreatePostRequest true "Post creation request"
// @Success 200 {object} map[string]any "Created post id"
// @Failure 400 {object} map[string]any "Missing title or content"
// @Failure 401 {object} map[string]any "Authentication required"
// @Router /api/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())

	postID, err := h.contentService.CreatePost(r.Context(), identity, &req)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "post_id": postID})
}

// Get handles GET /api/posts/{id}
// @Summary Get post detail
// @Description Get a post with its ordered images and comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]any "Post detail"
// @Failure 404 {object} map[string]any "Post not found"
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.postIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.contentService.GetPost(r.Context(), postID)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"post":     detail.Post,
		"images":   detail.Images,
		"comments": detail.Comments,
	})
}

// Delete handles POST /api/posts/{id}/delete
// @Summary Delete a post
// @Description Delete a post with all its images and comments; admin only
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]any "Post deleted"
// @Failure 403 {object} map[string]any "Admin privilege required"
// @Failure 404 {object} map[string]any "Post not found"
// @Router /api/posts/{id}/delete [post]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.postIDParam(w, r)
	if !ok {
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())

	if err := h.contentService.DeletePost(r.Context(), identity, postID); err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// AddComment handles POST /api/posts/{id}/comments
// @Summary Add a comment
// @Description Add a comment to an existing post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body models.CommentRequest true "Comment request"
// @Success 200 {object} map[string]any "Comment added"
// @Failure 400 {object} map[string]any "Missing content"
// @Failure 404 {object} map[string]any "Post not found"
// @Router /api/posts/{id}/comments [post]
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.postIDParam(w, r)
	if !ok {
		return
	}

	var req models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())

	if err := h.contentService.AddComment(r.Context(), identity, postID, req.Content); err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// postIDParam parses the {id} URL parameter, responding with 400 on garbage
func (h *PostHandler) postIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idParam := chi.URLParam(r, "id")
	postID, err := strconv.Atoi(idParam)
	if err != nil || postID < 1 {
		h.respondError(w, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return postID, true
}
