package handler

import (
	"net/http"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/store"
)

// PostHandler handles /api/posts and the likes and comments below it.
type PostHandler struct {
	store *store.Store
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(s *store.Store) *PostHandler {
	return &PostHandler{store: s}
}

// List handles GET /api/posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context(), tenantOf(r).TenantID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Content  string   `json:"content" validate:"required,max=5000"`
	Type     string   `json:"type" validate:"max=50"`
	AuthorID *uint    `json:"authorId"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decode(w, r, &req) {
		return
	}
	ac := tenantOf(r)
	authorID, err := actingUser(ac, req.AuthorID, "authorId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	post, err := h.store.CreatePost(r.Context(), ac.TenantID, store.NewPost{
		Content:  req.Content,
		Type:     req.Type,
		AuthorID: authorID,
		Tags:     req.Tags,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, post)
}

type likeRequest struct {
	UserID *uint `json:"userId"`
}

type likeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// ToggleLike handles POST /api/posts/{postId}/like. A new like answers 201,
// a removed one 200.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var req likeRequest
	if !decode(w, r, &req) {
		return
	}
	ac := tenantOf(r)
	userID, err := actingUser(ac, req.UserID, "userId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	liked, err := h.store.ToggleLike(r.Context(), ac.TenantID, postID, userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if liked {
		respond.JSON(w, http.StatusCreated, likeResponse{Message: "post liked", Liked: true})
		return
	}
	respond.JSON(w, http.StatusOK, likeResponse{Message: "post unliked", Liked: false})
}

// ListComments handles GET /api/posts/{postId}/comments.
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	comments, err := h.store.ListComments(r.Context(), tenantOf(r).TenantID, postID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.List(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	AuthorID *uint  `json:"authorId"`
}

// CreateComment handles POST /api/posts/{postId}/comments.
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var req createCommentRequest
	if !decode(w, r, &req) {
		return
	}
	ac := tenantOf(r)
	authorID, err := actingUser(ac, req.AuthorID, "authorId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.store.CreateComment(r.Context(), ac.TenantID, postID, authorID, req.Content)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, c)
}
