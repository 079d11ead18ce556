package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Skills         []string           `bson:"skills" json:"skills"`
	Social         Social             `bson:"social,omitempty" json:"social,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Date           time.Time          `bson:"date" json:"date"`

	// Joined fields, resolved from the owning user on reads.
	UserName   string `bson:"-" json:"user_name,omitempty"`
	UserAvatar string `bson:"-" json:"user_avatar,omitempty"`
}

type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is a single work-history record embedded in a profile.
// The experience list is kept most-recent-first.
type Experience struct {
	ID          uuid.UUID `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Company     string    `bson:"company" json:"company"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	From        string    `bson:"from" json:"from"`
	To          string    `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool      `bson:"current" json:"current"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
}
