package application

import (
	"time"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
)

// Response shapes of the RealWorld API. Timestamps are ISO-8601 in UTC with
// millisecond precision.

type Author struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

type ArticleView struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Body           string   `json:"body"`
	TagList        []string `json:"tagList"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Favorited      bool     `json:"favorited"`
	FavoritesCount int      `json:"favoritesCount"`
	Author         Author   `json:"author"`
}

// ArticleListItem is an ArticleView without the body, used in list responses.
type ArticleListItem struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	TagList        []string `json:"tagList"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Favorited      bool     `json:"favorited"`
	FavoritesCount int      `json:"favoritesCount"`
	Author         Author   `json:"author"`
}

type SingleArticleResponse struct {
	Article ArticleView `json:"article"`
}

type ArticlesResponse struct {
	Articles      []ArticleListItem `json:"articles"`
	ArticlesCount int               `json:"articlesCount"`
}

type CommentView struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Body      string `json:"body"`
	Author    Author `json:"author"`
}

type SingleCommentResponse struct {
	Comment CommentView `json:"comment"`
}

type CommentsResponse struct {
	Comments []CommentView `json:"comments"`
}

type Profile struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

type UserView struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

type UserResponse struct {
	User UserView `json:"user"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// NewProfile builds a viewer-relative profile view.
func NewProfile(u *entity.User, following bool) Profile {
	return Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}
