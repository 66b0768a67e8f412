package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
	"github.com/conduitapp/conduit-api/pkg/helpers"
)

// memDB is a single in-memory store shared by the fake repositories so that
// service tests exercise cross-repository behavior without Postgres.
type memDB struct {
	seq         int
	users       map[string]entity.User
	articles    map[string]entity.Article
	tagIDByName map[string]string
	tagNameByID map[string]string
	articleTags map[string][]string          // article id -> tag ids
	follows     map[string]map[string]bool   // follower id -> followed ids
	favorites   map[string]map[string]bool   // user id -> article ids
	comments    map[string]entity.Comment
	now         time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[string]entity.User{},
		articles:    map[string]entity.Article{},
		tagIDByName: map[string]string{},
		tagNameByID: map[string]string{},
		articleTags: map[string][]string{},
		follows:     map[string]map[string]bool{},
		favorites:   map[string]map[string]bool{},
		comments:    map[string]entity.Comment{},
		now:         time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (db *memDB) nextID() string {
	db.seq++
	return fmt.Sprintf("id-%d", db.seq)
}

// tick advances the shared clock so ordering by created_at is deterministic.
func (db *memDB) tick() time.Time {
	db.now = db.now.Add(time.Minute)
	return db.now
}

func (db *memDB) ensureTag(name string) string {
	if id, ok := db.tagIDByName[name]; ok {
		return id
	}
	id := db.nextID()
	db.tagIDByName[name] = id
	db.tagNameByID[id] = name
	return id
}

func (db *memDB) tagNames(articleID string) []string {
	names := make([]string, 0, len(db.articleTags[articleID]))
	for _, tagID := range db.articleTags[articleID] {
		names = append(names, db.tagNameByID[tagID])
	}
	sort.Strings(names)
	return names
}

func (db *memDB) withData(a entity.Article) entity.ArticleWithData {
	return entity.ArticleWithData{
		Article: a,
		Author:  db.users[a.AuthorID],
		TagList: db.tagNames(a.ID),
	}
}

// addUser is a test seeding shortcut.
func (db *memDB) addUser(username string) entity.User {
	u := entity.User{
		ID:        db.nextID(),
		Email:     username + "@example.com",
		Username:  username,
		Password:  "hash",
		CreatedAt: db.tick(),
	}
	u.UpdatedAt = u.CreatedAt
	db.users[u.ID] = u
	return u
}

type fakeUserRepo struct{ db *memDB }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return &repository.DuplicateError{Field: "email"}
		}
		if existing.Username == u.Username {
			return &repository.DuplicateError{Field: "username"}
		}
	}
	u.ID = r.db.nextID()
	u.CreatedAt = r.db.tick()
	u.UpdatedAt = u.CreatedAt
	r.db.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.db.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.db.users {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return &repository.DuplicateError{Field: "email"}
		}
		if existing.Username == u.Username {
			return &repository.DuplicateError{Field: "username"}
		}
	}
	u.UpdatedAt = r.db.tick()
	r.db.users[u.ID] = *u
	return nil
}

type fakeFollowRepo struct{ db *memDB }

func (r *fakeFollowRepo) Add(_ context.Context, followerID, followedID string) error {
	if r.db.follows[followerID] == nil {
		r.db.follows[followerID] = map[string]bool{}
	}
	r.db.follows[followerID][followedID] = true
	return nil
}

func (r *fakeFollowRepo) Remove(_ context.Context, followerID, followedID string) error {
	delete(r.db.follows[followerID], followedID)
	return nil
}

func (r *fakeFollowRepo) Exists(_ context.Context, followerID, followedID string) (bool, error) {
	return r.db.follows[followerID][followedID], nil
}

func (r *fakeFollowRepo) FollowedIDs(_ context.Context, followerID string) ([]string, error) {
	ids := make([]string, 0, len(r.db.follows[followerID]))
	for id := range r.db.follows[followerID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeFollowRepo) FollowedSet(_ context.Context, followerID string, candidateIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range candidateIDs {
		if r.db.follows[followerID][id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeArticleRepo struct{ db *memDB }

func (r *fakeArticleRepo) Create(_ context.Context, a *entity.Article, tagNames []string) error {
	a.ID = r.db.nextID()
	a.CreatedAt = r.db.tick()
	a.UpdatedAt = a.CreatedAt
	r.db.articles[a.ID] = *a
	for _, name := range tagNames {
		r.db.articleTags[a.ID] = append(r.db.articleTags[a.ID], r.db.ensureTag(name))
	}
	return nil
}

func (r *fakeArticleRepo) GetBySlug(_ context.Context, slug string) (*entity.ArticleWithData, error) {
	for _, a := range r.db.articles {
		if a.Slug == slug {
			out := r.db.withData(a)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*entity.ArticleWithData, error) {
	a, ok := r.db.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r.db.withData(a)
	return &out, nil
}

func (r *fakeArticleRepo) List(_ context.Context, f repository.ArticleFilter) ([]entity.ArticleWithData, error) {
	matched := make([]entity.Article, 0)
	for _, a := range r.db.articles {
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if len(f.AuthorIDs) > 0 && !containsStr(f.AuthorIDs, a.AuthorID) {
			continue
		}
		if f.FavoritedBy != "" && !r.db.favorites[f.FavoritedBy][a.ID] {
			continue
		}
		if f.TagID != "" && !containsStr(r.db.articleTags[a.ID], f.TagID) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if f.Offset > len(matched) {
		matched = nil
	} else {
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}

	out := make([]entity.ArticleWithData, 0, len(matched))
	for _, a := range matched {
		out = append(out, r.db.withData(a))
	}
	return out, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, a *entity.Article) error {
	if _, ok := r.db.articles[a.ID]; !ok {
		return repository.ErrNotFound
	}
	a.UpdatedAt = r.db.tick()
	r.db.articles[a.ID] = *a
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.articles, id)
	delete(r.db.articleTags, id)
	return nil
}

func (r *fakeArticleRepo) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	for _, a := range r.db.articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTagRepo struct{ db *memDB }

func (r *fakeTagRepo) ListNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.db.tagIDByName))
	for name := range r.db.tagIDByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *fakeTagRepo) GetByName(_ context.Context, name string) (*entity.Tag, error) {
	id, ok := r.db.tagIDByName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.Tag{ID: id, Name: name}, nil
}

func (r *fakeTagRepo) Ensure(_ context.Context, names []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, entity.Tag{ID: r.db.ensureTag(name), Name: name})
	}
	return tags, nil
}

func (r *fakeTagRepo) ReplaceArticleTags(_ context.Context, articleID string, names []string) error {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		ids = append(ids, r.db.ensureTag(name))
	}
	r.db.articleTags[articleID] = ids
	return nil
}

type fakeFavoriteRepo struct{ db *memDB }

func (r *fakeFavoriteRepo) Add(_ context.Context, userID, articleID string) error {
	if r.db.favorites[userID] == nil {
		r.db.favorites[userID] = map[string]bool{}
	}
	r.db.favorites[userID][articleID] = true
	return nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, articleID string) error {
	delete(r.db.favorites[userID], articleID)
	return nil
}

func (r *fakeFavoriteRepo) Exists(_ context.Context, userID, articleID string) (bool, error) {
	return r.db.favorites[userID][articleID], nil
}

func (r *fakeFavoriteRepo) Count(_ context.Context, articleID string) (int, error) {
	n := 0
	for _, set := range r.db.favorites {
		if set[articleID] {
			n++
		}
	}
	return n, nil
}

func (r *fakeFavoriteRepo) CountByArticle(_ context.Context, articleIDs []string) (map[string]int, error) {
	out := map[string]int{}
	for _, id := range articleIDs {
		for _, set := range r.db.favorites {
			if set[id] {
				out[id]++
			}
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) FavoritedSet(_ context.Context, userID string, articleIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range articleIDs {
		if r.db.favorites[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeCommentRepo struct{ db *memDB }

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	c.ID = r.db.nextID()
	c.CreatedAt = r.db.tick()
	c.UpdatedAt = c.CreatedAt
	r.db.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.CommentWithAuthor, error) {
	c, ok := r.db.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.CommentWithAuthor{Comment: c, Author: r.db.users[c.AuthorID]}, nil
}

func (r *fakeCommentRepo) ListByArticle(_ context.Context, articleID string) ([]entity.CommentWithAuthor, error) {
	out := make([]entity.CommentWithAuthor, 0)
	for _, c := range r.db.comments {
		if c.ArticleID == articleID {
			out = append(out, entity.CommentWithAuthor{Comment: c, Author: r.db.users[c.AuthorID]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.comments, id)
	return nil
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// testEnv bundles the fakes and the services under test.
type testEnv struct {
	db       *memDB
	users    *UserService
	profiles *ProfileService
	articles *ArticleService
	comments *CommentService
}

func newTestEnv() *testEnv {
	db := newMemDB()
	userRepo := &fakeUserRepo{db}
	followRepo := &fakeFollowRepo{db}
	articleRepo := &fakeArticleRepo{db}
	tagRepo := &fakeTagRepo{db}
	favoriteRepo := &fakeFavoriteRepo{db}
	commentRepo := &fakeCommentRepo{db}

	return &testEnv{
		db:       db,
		users:    NewUserService(userRepo, helpers.NewJWTManager("test-secret", time.Hour)),
		profiles: NewProfileService(userRepo, followRepo, nil),
		articles: NewArticleService(articleRepo, userRepo, tagRepo, favoriteRepo, followRepo, nil),
		comments: NewCommentService(commentRepo, articleRepo, followRepo),
	}
}
