package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostAuthor = errors.New("user is not the author of this post")
)

// Post is one entry in the community feed.
type Post struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	TeamID    *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	Text      string     `json:"text" db:"text"`
	ImageURL  *string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	AuthorName   *string `json:"author_name,omitempty" db:"author_name"`
	AuthorAvatar *string `json:"author_avatar,omitempty" db:"author_avatar"`
}

type CreatePostInput struct {
	Text   string     `json:"text" validate:"required,min=1,max=1000"`
	TeamID *uuid.UUID `json:"team_id,omitempty"`
}
