// Package memory keeps films, users and their relations in process memory.
// A single lock guards every map, so each store call is atomic with respect
// to every other call.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
)

type Store struct {
	mu sync.RWMutex

	films      map[uint]models.Film
	users      map[uint]models.User
	nextFilmID uint
	nextUserID uint

	likes   map[uint]map[uint]struct{} // film id -> user ids
	friends map[uint]map[uint]struct{} // user id -> friend ids
}

var (
	_ repositories.EntityStore       = (*Store)(nil)
	_ repositories.RelationshipStore = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		films:      make(map[uint]models.Film),
		users:      make(map[uint]models.User),
		nextFilmID: 1,
		nextUserID: 1,
		likes:      make(map[uint]map[uint]struct{}),
		friends:    make(map[uint]map[uint]struct{}),
	}
}

func (s *Store) CreateFilm(_ context.Context, film *models.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	film.ID = s.nextFilmID
	film.CreatedAt, film.UpdatedAt = now, now
	s.nextFilmID++
	s.films[film.ID] = *film
	return nil
}

func (s *Store) UpdateFilm(_ context.Context, film *models.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.films[film.ID]
	if !ok {
		return errors.NotFound(errors.EntityFilm, film.ID)
	}
	film.CreatedAt = existing.CreatedAt
	film.UpdatedAt = time.Now().UTC()
	s.films[film.ID] = *film
	return nil
}

func (s *Store) DeleteFilm(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return errors.NotFound(errors.EntityFilm, id)
	}
	delete(s.films, id)
	return nil
}

func (s *Store) GetFilm(_ context.Context, id uint) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, errors.NotFound(errors.EntityFilm, id)
	}
	return &film, nil
}

func (s *Store) FilmExists(_ context.Context, id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.films[id]
	return ok, nil
}

func (s *Store) ListFilms(_ context.Context) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]models.Film, 0, len(s.films))
	for _, f := range s.films {
		films = append(films, f)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identityTaken(user.Email, user.Login, 0) {
		return errors.New(errors.ErrCodeConflict, "email or login already in use")
	}

	now := time.Now().UTC()
	user.ID = s.nextUserID
	user.Name = user.DisplayName()
	user.CreatedAt, user.UpdatedAt = now, now
	s.nextUserID++
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return errors.NotFound(errors.EntityUser, user.ID)
	}
	if s.identityTaken(user.Email, user.Login, user.ID) {
		return errors.New(errors.ErrCodeConflict, "email or login already in use")
	}
	user.Name = user.DisplayName()
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

// identityTaken reports whether another user already holds the email or login.
// Caller holds the lock.
func (s *Store) identityTaken(email, login string, self uint) bool {
	for id, u := range s.users {
		if id == self {
			continue
		}
		if strings.EqualFold(u.Email, email) || u.Login == login {
			return true
		}
	}
	return false
}

func (s *Store) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return errors.NotFound(errors.EntityUser, id)
	}
	delete(s.users, id)
	return nil
}

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errors.NotFound(errors.EntityUser, id)
	}
	return &user, nil
}

func (s *Store) UserExists(_ context.Context, id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
