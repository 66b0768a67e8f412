package entity

import "time"

type Comment struct {
	ID        string
	Body      string
	ArticleID string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithAuthor joins a comment with its author row for enrichment.
type CommentWithAuthor struct {
	Comment
	Author User
}
