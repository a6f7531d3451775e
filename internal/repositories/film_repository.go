package repositories

import (
	"context"
	stderrors "errors"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
)

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// CreateFilm creates a new film. The id is always assigned by the database.
func (r *FilmRepository) CreateFilm(ctx context.Context, film *models.Film) error {
	film.ID = 0
	if err := r.db.WithContext(ctx).Create(film).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create film")
	}
	return nil
}

// UpdateFilm overwrites the descriptive fields of an existing film
func (r *FilmRepository) UpdateFilm(ctx context.Context, film *models.Film) error {
	result := r.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", film.ID).Updates(map[string]interface{}{
		"name":         film.Name,
		"description":  film.Description,
		"release_date": film.ReleaseDate,
		"duration":     film.Duration,
	})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update film")
	}
	if result.RowsAffected == 0 {
		return errors.NotFound(errors.EntityFilm, film.ID)
	}
	return nil
}

func (r *FilmRepository) DeleteFilm(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Film{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete film")
	}
	if result.RowsAffected == 0 {
		return errors.NotFound(errors.EntityFilm, id)
	}
	return nil
}

// GetFilm retrieves a film by ID
func (r *FilmRepository) GetFilm(ctx context.Context, id uint) (*models.Film, error) {
	var film models.Film
	result := r.db.WithContext(ctx).First(&film, id)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.NotFound(errors.EntityFilm, id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get film")
	}

	return &film, nil
}

func (r *FilmRepository) FilmExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check film existence")
	}
	return count > 0, nil
}

func (r *FilmRepository) ListFilms(ctx context.Context) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&films).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list films")
	}
	return films, nil
}
