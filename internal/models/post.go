package models

import "time"

// DefaultCategory is assigned when a post is created without a category
const DefaultCategory = "free"

// MaxPostImages caps how many images can be attached to a single post
const MaxPostImages = 10

// Post represents a board post with its author's username joined in.
// Author is nil when the author account has been deleted.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	AuthorID  int       `json:"-"`
	Author    *string   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// PostSummary is the list-view shape of a post: no body, one thumbnail.
// Thumbnail is the earliest-inserted image of the post, nil when it has none.
type PostSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Author    *string   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Thumbnail *string   `json:"thumbnail"`
}

// PostImage is an image attached to a post. Data holds the inline
// base64 data URL exactly as the client submitted it.
type PostImage struct {
	ID   int    `json:"id"`
	Data string `json:"data"`
}

// PostDetail is the full detail-view shape: the post plus its ordered
// images and comments.
type PostDetail struct {
	Post     *Post       `json:"post"`
	Images   []PostImage `json:"images"`
	Comments []Comment   `json:"comments"`
}

// CreatePostRequest represents a post creation request body
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Images   []string `json:"images"`
}
