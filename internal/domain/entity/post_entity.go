package entity

import "time"

// Post is the feed aggregate. Author name/avatar are snapshots taken at
// creation time; later profile edits do not change historical posts.
// Likes and comments are ordered sub-collections, newest first.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// Like records a single user's like. A user may like a post at most once.
type Like struct {
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"date"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
