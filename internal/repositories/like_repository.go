package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// AddLike inserts the like unless it is already there
func (r *LikeRepository) AddLike(ctx context.Context, filmID, userID uint) error {
	like := &models.Like{FilmID: filmID, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(like).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add like")
	}
	return nil
}

func (r *LikeRepository) RemoveLike(ctx context.Context, filmID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove like")
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepository) HasLike(ctx context.Context, filmID, userID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check like")
	}
	return count > 0, nil
}

func (r *LikeRepository) CountLikes(ctx context.Context, filmID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Like{}).Where("film_id = ?", filmID).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count likes")
	}
	return count, nil
}

// FilmIDsByLikesDesc ranks liked films, ties broken by ascending film id
func (r *LikeRepository) FilmIDsByLikesDesc(ctx context.Context, limit int) ([]models.FilmLikes, error) {
	var rows []models.FilmLikes
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("film_id, COUNT(*) AS likes").
		Group("film_id").
		Order("likes DESC, film_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to rank films")
	}
	return rows, nil
}

func (r *LikeRepository) DeleteFilmLikes(ctx context.Context, filmID uint) error {
	if err := r.db.WithContext(ctx).Where("film_id = ?", filmID).Delete(&models.Like{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete film likes")
	}
	return nil
}

func (r *LikeRepository) DeleteUserLikes(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete user likes")
	}
	return nil
}
