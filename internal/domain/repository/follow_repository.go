package repository

import "context"

// FollowRepository manages directed follow edges between users.
// Add is conflict-tolerant: following an already-followed user is a no-op.
// The storage schema forbids self-edges; callers reject them before writing.
type FollowRepository interface {
	Add(ctx context.Context, followerID, followedID string) error
	Remove(ctx context.Context, followerID, followedID string) error
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	// FollowedIDs returns every user id the follower observes.
	FollowedIDs(ctx context.Context, followerID string) ([]string, error)
	// FollowedSet returns, out of candidateIDs, the subset the follower
	// observes, keyed by followed user id. Batched for list enrichment.
	FollowedSet(ctx context.Context, followerID string, candidateIDs []string) (map[string]bool, error)
}
