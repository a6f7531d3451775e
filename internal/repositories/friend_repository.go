package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// AddFriendshipPair writes both directions of the friendship in one transaction.
// Rows are inserted lower user id first so concurrent (a,b) and (b,a) calls
// queue on the same index entry instead of deadlocking.
func (r *FriendRepository) AddFriendshipPair(ctx context.Context, userID, friendID uint) error {
	low, high := OrderedPair(userID, friendID)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := []models.Friendship{
			{UserID: low, FriendID: high},
			{UserID: high, FriendID: low},
		}
		for i := range rows {
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Omit(clause.Associations).
				Create(&rows[i]).Error
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add friendship")
			}
		}
		return nil
	})
}

// RemoveFriendshipPair deletes both directions; deleting an absent pair is fine
func (r *FriendRepository) RemoveFriendshipPair(ctx context.Context, userID, friendID uint) error {
	low, high := OrderedPair(userID, friendID)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pairs := [][2]uint{{low, high}, {high, low}}
		for _, p := range pairs {
			err := tx.Where("user_id = ? AND friend_id = ?", p[0], p[1]).
				Delete(&models.Friendship{}).Error
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove friendship")
			}
		}
		return nil
	})
}

// FriendIDsOf lists a user's friends in ascending id order
func (r *FriendRepository) FriendIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}
	return ids, nil
}

func (r *FriendRepository) DeleteUserFriendships(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Delete(&models.Friendship{}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete friendships")
	}
	return nil
}
