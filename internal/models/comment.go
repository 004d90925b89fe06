package models

import "time"

// Comment represents a comment on a post with its author's username
// joined in. Author is nil when the author account has been deleted.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"-"`
	AuthorID  int       `json:"-"`
	Content   string    `json:"content"`
	Author    *string   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentRequest represents a comment creation request body
type CommentRequest struct {
	Content string `json:"content"`
}
