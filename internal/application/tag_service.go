package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/conduitapp/conduit-api/internal/domain/repository"
	"github.com/conduitapp/conduit-api/pkg/helpers"
)

const tagCacheKey = "tags:all"

// TagService lists the global tag names, cached in Redis with a short TTL.
// Cache failures degrade to the database read, never to an error.
type TagService struct {
	tags     repository.TagRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewTagService(tags repository.TagRepository, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *TagService {
	return &TagService{tags: tags, rdb: rdb, cacheTTL: cacheTTL, logger: logger}
}

func (s *TagService) List(ctx context.Context) (*TagsResponse, error) {
	if s.rdb != nil {
		var cached []string
		hit, err := helpers.RedisGetJSON(ctx, s.rdb, tagCacheKey, &cached)
		if err != nil && s.logger != nil {
			s.logger.WithError(err).Warn("tag cache read failed")
		}
		if hit {
			return &TagsResponse{Tags: cached}, nil
		}
	}

	names, err := s.tags.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := helpers.RedisSetJSON(ctx, s.rdb, tagCacheKey, names, s.cacheTTL); err != nil && s.logger != nil {
			s.logger.WithError(err).Warn("tag cache write failed")
		}
	}
	return &TagsResponse{Tags: names}, nil
}
