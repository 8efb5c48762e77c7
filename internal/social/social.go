// Package social enforces the follow-graph rules: no self-follows, at
// most one edge per ordered pair, and idempotent unfollow.
package social

import (
	"errors"

	"inkwell/internal/store"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

type Service struct {
	follows store.Follows
}

func NewService(follows store.Follows) *Service {
	return &Service{follows: follows}
}

// Follow creates the (user, author) edge. Following someone already
// followed is a silent no-op; the unique pair index absorbs races.
func (s *Service) Follow(userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	return s.follows.Ensure(userID, authorID)
}

// Unfollow removes the edge if present. Unfollowing an account that was
// never followed is harmless.
func (s *Service) Unfollow(userID, authorID uint) error {
	return s.follows.Remove(userID, authorID)
}

// IsFollowing reports whether the edge exists.
func (s *Service) IsFollowing(userID, authorID uint) (bool, error) {
	return s.follows.Exists(userID, authorID)
}
