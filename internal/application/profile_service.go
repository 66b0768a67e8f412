package application

import (
	"context"
	"errors"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
	"github.com/conduitapp/conduit-api/pkg/apperror"
)

// ProfileService serves viewer-relative profiles and follow mutations.
type ProfileService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	events  EventPublisher
}

func NewProfileService(users repository.UserRepository, follows repository.FollowRepository, events EventPublisher) *ProfileService {
	return &ProfileService{users: users, follows: follows, events: events}
}

func (s *ProfileService) lookup(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("profile")
		}
		return nil, err
	}
	return u, nil
}

// Get returns the profile as seen by viewerID, which may be empty for
// anonymous requests.
func (s *ProfileService) Get(ctx context.Context, viewerID, username string) (*ProfileResponse, error) {
	u, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" && viewerID != u.ID {
		following, err = s.follows.Exists(ctx, viewerID, u.ID)
		if err != nil {
			return nil, err
		}
	}
	return &ProfileResponse{Profile: NewProfile(u, following)}, nil
}

// Follow adds the follow edge. Following an already-followed profile is a
// no-op; following yourself is rejected.
func (s *ProfileService) Follow(ctx context.Context, viewerID, username string) (*ProfileResponse, error) {
	u, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.ID == viewerID {
		return nil, apperror.Unprocessable("profile", "cannot be followed by yourself")
	}
	if err := s.follows.Add(ctx, viewerID, u.ID); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.events, Event{
		Type: EventUserFollowed,
		Payload: map[string]string{
			"follower_id": viewerID,
			"followed_id": u.ID,
			"username":    u.Username,
		},
	})
	return &ProfileResponse{Profile: NewProfile(u, true)}, nil
}

// Unfollow removes the follow edge; unfollowing a non-followed profile is a
// no-op.
func (s *ProfileService) Unfollow(ctx context.Context, viewerID, username string) (*ProfileResponse, error) {
	u, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.ID == viewerID {
		return nil, apperror.Unprocessable("profile", "cannot be unfollowed by yourself")
	}
	if err := s.follows.Remove(ctx, viewerID, u.ID); err != nil {
		return nil, err
	}
	return &ProfileResponse{Profile: NewProfile(u, false)}, nil
}
