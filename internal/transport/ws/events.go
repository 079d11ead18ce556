package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vedran77/devlink/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client
const (
	EventTypePostNew        = "post.new"
	EventTypePostDeleted    = "post.deleted"
	EventTypePostLikes      = "post.likes"
	EventTypeCommentNew     = "comment.new"
	EventTypeCommentRemoved = "comment.removed"
	EventTypePong           = "pong"
	EventTypeError          = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Server → Client payloads ---

type PostPayload struct {
	domain.Post
}

type PostDeletedPayload struct {
	ID primitive.ObjectID `json:"id"`
}

type LikesPayload struct {
	PostID primitive.ObjectID `json:"post_id"`
	Likes  []domain.Like      `json:"likes"`
}

type CommentPayload struct {
	PostID  primitive.ObjectID `json:"post_id"`
	Comment domain.Comment     `json:"comment"`
}

type CommentRemovedPayload struct {
	PostID    primitive.ObjectID `json:"post_id"`
	CommentID uuid.UUID          `json:"comment_id"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
