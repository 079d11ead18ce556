package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
	log         zerolog.Logger
}

func NewPostHandler(postService *service.PostService, log zerolog.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Text); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, input)
	if err != nil {
		h.log.Error().Err(err).Msg("create post")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// List handles GET /api/posts, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list posts")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{id}. A malformed id and a valid-but-missing
// id both surface as the same 400 "Post not found".
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Post not found")
		return
	}

	post, err := h.postService.Get(r.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeMsg(w, http.StatusBadRequest, "Post not found")
		} else {
			h.log.Error().Err(err).Msg("get post")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}, author-only.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Post not found")
		return
	}

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeMsg(w, http.StatusBadRequest, "Post not found")
		case errors.Is(err, service.ErrNotPostAuthor):
			writeMsg(w, http.StatusUnauthorized, "User not authorized")
		default:
			h.log.Error().Err(err).Msg("delete post")
			writeServerError(w)
		}
		return
	}

	writeMsg(w, http.StatusOK, "Post removed successfully")
}

// Like handles PUT /api/posts/like/{id} and returns the updated like list.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Post not found")
		return
	}

	likes, err := h.postService.Like(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeMsg(w, http.StatusBadRequest, "Post not found")
		case errors.Is(err, service.ErrAlreadyLiked):
			writeMsg(w, http.StatusBadRequest, "Post already liked")
		default:
			h.log.Error().Err(err).Msg("like post")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// Unlike handles PUT /api/posts/unlike/{id}.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Post not found")
		return
	}

	likes, err := h.postService.Unlike(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeMsg(w, http.StatusBadRequest, "Post not found")
		case errors.Is(err, service.ErrNotLiked):
			writeMsg(w, http.StatusBadRequest, "Post has not yet been liked")
		default:
			h.log.Error().Err(err).Msg("unlike post")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// AddComment handles PUT /api/posts/comment/{id}. Unlike the other post
// routes, the comment routes answer 404 for a missing post.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Post not found")
		return
	}

	var input service.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Text); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.postService.AddComment(r.Context(), userID, postID, input)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeMsg(w, http.StatusNotFound, "Post not found")
		} else {
			h.log.Error().Err(err).Msg("add comment")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// RemoveComment handles PUT /api/posts/comment/{id}/{comment_id}.
func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Post not found")
		return
	}
	commentID, err := uuid.Parse(r.PathValue("comment_id"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Comment does not exist")
		return
	}

	post, err := h.postService.RemoveComment(r.Context(), postID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeMsg(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrCommentNotFound):
			writeMsg(w, http.StatusNotFound, "Comment does not exist")
		default:
			h.log.Error().Err(err).Msg("remove comment")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}
