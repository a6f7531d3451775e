package services

import (
	"context"
	"sort"

	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

// SocialService maintains the symmetric friendship relation.
// Both AddFriend and RemoveFriend are idempotent and safe to retry.
type SocialService struct {
	friends repositories.FriendStore
}

func NewSocialService(friends repositories.FriendStore) *SocialService {
	return &SocialService{friends: friends}
}

func (s *SocialService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if err := validatePair(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.AddFriendshipPair(ctx, userID, friendID); err != nil {
		return err
	}
	logger.Info("Friendship added", "user_id", userID, "friend_id", friendID)
	return nil
}

// RemoveFriend succeeds whether or not the two were friends.
func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := validatePair(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.RemoveFriendshipPair(ctx, userID, friendID); err != nil {
		return err
	}
	logger.Info("Friendship removed", "user_id", userID, "friend_id", friendID)
	return nil
}

// Friends returns the user's friend ids in ascending order. Unknown users
// simply have no friends.
func (s *SocialService) Friends(ctx context.Context, userID uint) ([]uint, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}
	ids, err := s.friends.FriendIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return normalize(ids, userID), nil
}

// CommonFriends intersects the friend sets of both users. The result never
// contains either input and does not depend on argument order.
func (s *SocialService) CommonFriends(ctx context.Context, userID, otherID uint) ([]uint, error) {
	if err := validateIDs(userID, otherID); err != nil {
		return nil, err
	}

	mine, err := s.friends.FriendIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.friends.FriendIDsOf(ctx, otherID)
	if err != nil {
		return nil, err
	}

	set := make(map[uint]struct{}, len(mine))
	for _, id := range mine {
		set[id] = struct{}{}
	}

	common := make([]uint, 0)
	for _, id := range theirs {
		if _, ok := set[id]; ok {
			common = append(common, id)
		}
	}
	return normalize(common, userID, otherID), nil
}

func (s *SocialService) AreFriends(ctx context.Context, userID, otherID uint) (bool, error) {
	ids, err := s.Friends(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == otherID {
			return true, nil
		}
	}
	return false, nil
}

func validatePair(userID, friendID uint) error {
	if err := validateIDs(userID, friendID); err != nil {
		return err
	}
	if userID == friendID {
		return errors.Invalid("a user cannot befriend themselves")
	}
	return nil
}

// normalize drops the excluded ids and duplicates and sorts ascending.
func normalize(ids []uint, exclude ...uint) []uint {
	skip := make(map[uint]struct{}, len(exclude)+len(ids))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := skip[id]; ok {
			continue
		}
		skip[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
