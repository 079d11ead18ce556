package ws

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vedran77/devlink/internal/domain"
)

// HubNotifier implements service.Notifier using the feed Hub.
type HubNotifier struct {
	hub *Hub
	log zerolog.Logger
}

func NewHubNotifier(hub *Hub, log zerolog.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) NotifyNewPost(post *domain.Post) {
	n.push(EventTypePostNew, PostPayload{Post: *post})
}

func (n *HubNotifier) NotifyPostDeleted(postID primitive.ObjectID) {
	n.push(EventTypePostDeleted, PostDeletedPayload{ID: postID})
}

func (n *HubNotifier) NotifyLikes(postID primitive.ObjectID, likes []domain.Like) {
	n.push(EventTypePostLikes, LikesPayload{PostID: postID, Likes: likes})
}

func (n *HubNotifier) NotifyNewComment(postID primitive.ObjectID, comment *domain.Comment) {
	n.push(EventTypeCommentNew, CommentPayload{PostID: postID, Comment: *comment})
}

func (n *HubNotifier) NotifyCommentRemoved(postID primitive.ObjectID, commentID uuid.UUID) {
	n.push(EventTypeCommentRemoved, CommentRemovedPayload{PostID: postID, CommentID: commentID})
}

func (n *HubNotifier) push(eventType string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		n.log.Error().Err(err).Str("event", eventType).Msg("feed notifier: marshal")
		return
	}
	n.hub.Broadcast(evt)
}
