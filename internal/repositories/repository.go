package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
)

// FilmStore owns film records and their identifiers.
type FilmStore interface {
	CreateFilm(ctx context.Context, film *models.Film) error
	UpdateFilm(ctx context.Context, film *models.Film) error
	DeleteFilm(ctx context.Context, id uint) error
	GetFilm(ctx context.Context, id uint) (*models.Film, error)
	FilmExists(ctx context.Context, id uint) (bool, error)
	// ListFilms returns every film in ascending id order.
	ListFilms(ctx context.Context) ([]models.Film, error)
}

// UserStore owns user records and their identifiers.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UserExists(ctx context.Context, id uint) (bool, error)
	// ListUsers returns every user in ascending id order.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// EntityStore is everything the catalog needs to know about films and users.
// GetFilm and GetUser return a NOT_FOUND AppError tagged with the entity.
type EntityStore interface {
	FilmStore
	UserStore
}

// LikeStore persists the likes relation. It does not check that the film or
// user exist.
type LikeStore interface {
	// AddLike is a no-op when the like is already present.
	AddLike(ctx context.Context, filmID, userID uint) error
	// RemoveLike reports whether a like was actually removed.
	RemoveLike(ctx context.Context, filmID, userID uint) (bool, error)
	HasLike(ctx context.Context, filmID, userID uint) (bool, error)
	CountLikes(ctx context.Context, filmID uint) (int64, error)
	// FilmIDsByLikesDesc returns up to limit films that have at least one like,
	// ordered by like count descending and film id ascending.
	FilmIDsByLikesDesc(ctx context.Context, limit int) ([]models.FilmLikes, error)
	DeleteFilmLikes(ctx context.Context, filmID uint) error
	DeleteUserLikes(ctx context.Context, userID uint) error
}

// FriendStore persists the friendship relation. Both directions of a pair are
// always written and removed together.
type FriendStore interface {
	AddFriendshipPair(ctx context.Context, userID, friendID uint) error
	RemoveFriendshipPair(ctx context.Context, userID, friendID uint) error
	FriendIDsOf(ctx context.Context, userID uint) ([]uint, error)
	// DeleteUserFriendships removes every pair the user takes part in.
	DeleteUserFriendships(ctx context.Context, userID uint) error
}

type RelationshipStore interface {
	LikeStore
	FriendStore
}

// OrderedPair returns the two ids lowest first. Stores use it to take row
// locks in the same order no matter which side started the operation.
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
