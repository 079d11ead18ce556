package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post carries a snapshot of the author's name and avatar taken at creation
// time. Later profile edits do not flow back into existing posts.
type Post struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	UserID   primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// Like references the liking user. A user appears at most once per post;
// the list is kept most-recent-first.
type Like struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Comment is embedded in a post, most-recent-first. Name and avatar are a
// snapshot of the commenting user, like the post's own author fields.
type Comment struct {
	ID     uuid.UUID          `bson:"id" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}

// HasLikeBy reports whether userID already appears in the like list.
func (p *Post) HasLikeBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
