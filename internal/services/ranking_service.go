package services

import (
	"context"
	"fmt"
	"math"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

// RankingService maintains likes and answers popularity queries.
// It trusts its caller to have checked that films and users exist.
type RankingService struct {
	likes repositories.LikeStore
	films repositories.FilmStore
}

func NewRankingService(likes repositories.LikeStore, films repositories.FilmStore) *RankingService {
	return &RankingService{
		likes: likes,
		films: films,
	}
}

// Like records that the user likes the film. Liking twice is a no-op.
func (s *RankingService) Like(ctx context.Context, filmID, userID uint) error {
	if err := validateIDs(filmID, userID); err != nil {
		return err
	}
	if err := s.likes.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	logger.Info("Film liked", "film_id", filmID, "user_id", userID)
	return nil
}

func (s *RankingService) Unlike(ctx context.Context, filmID, userID uint) error {
	if err := validateIDs(filmID, userID); err != nil {
		return err
	}
	removed, err := s.likes.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return &errors.AppError{
			Code:    errors.ErrCodeNotFound,
			Entity:  errors.EntityLike,
			ID:      filmID,
			Message: fmt.Sprintf("user %d has not liked film %d", userID, filmID),
		}
	}
	logger.Info("Film unliked", "film_id", filmID, "user_id", userID)
	return nil
}

func (s *RankingService) CountLikes(ctx context.Context, filmID uint) (int64, error) {
	if err := validateIDs(filmID); err != nil {
		return 0, err
	}
	return s.likes.CountLikes(ctx, filmID)
}

// TopFilms returns at most n films, most liked first, equal counts in
// ascending id order. Films nobody liked follow the liked ones.
func (s *RankingService) TopFilms(ctx context.Context, n int) ([]models.FilmWithStats, error) {
	if n <= 0 {
		return nil, errors.Invalid(fmt.Sprintf("count must be positive, got %d", n))
	}

	// n may be far larger than the catalog, so nothing is sized from it.
	var result []models.FilmWithStats
	seen := make(map[uint]struct{})

	// A like can outlive its film briefly; such rows are skipped and the
	// window widened until n live films are found or the ranking runs out.
	limit := n
	for {
		ranked, err := s.likes.FilmIDsByLikesDesc(ctx, limit)
		if err != nil {
			return nil, err
		}

		result = result[:0]
		for _, row := range ranked {
			film, err := s.films.GetFilm(ctx, row.FilmID)
			if errors.IsNotFound(err) {
				logger.Warn("Skipping likes of missing film", "film_id", row.FilmID)
				continue
			}
			if err != nil {
				return nil, err
			}
			seen[film.ID] = struct{}{}
			result = append(result, models.FilmWithStats{Film: *film, LikeCount: row.Likes})
		}

		if len(result) >= n || len(ranked) < limit {
			break
		}
		grow := n - len(result)
		if limit > math.MaxInt-grow {
			limit = math.MaxInt
		} else {
			limit += grow
		}
	}

	if len(result) < n {
		films, err := s.films.ListFilms(ctx)
		if err != nil {
			return nil, err
		}
		for _, film := range films {
			if len(result) == n {
				break
			}
			if _, ok := seen[film.ID]; ok {
				continue
			}
			result = append(result, models.FilmWithStats{Film: film})
		}
	}

	if len(result) > n {
		result = result[:n]
	}
	if result == nil {
		result = []models.FilmWithStats{}
	}
	return result, nil
}

func validateIDs(ids ...uint) error {
	for _, id := range ids {
		if id == 0 {
			return errors.Invalid("identifiers must be positive")
		}
	}
	return nil
}
