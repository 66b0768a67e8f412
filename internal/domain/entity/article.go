package entity

import "time"

// Article is owned by its author; only the author may mutate or delete it.
// Slug is unique and derived from Title.
type Article struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Body        string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticleWithData is an article row joined with its author and the sorted,
// deduplicated tag names, as loaded by the storage layer. Viewer-relative
// fields (favorited, following, favoritesCount) are not part of it; they are
// computed by the enrichment assembler.
type ArticleWithData struct {
	Article
	Author  User
	TagList []string
}

// Tag names are globally unique and created lazily on first reference.
type Tag struct {
	ID   string
	Name string
}
