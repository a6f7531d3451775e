package services

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/security"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 200
	maxEmailLength       = 255
	maxLoginLength       = 100
)

// CatalogService is the single entry point for callers. It resolves every
// identifier against the entity store before touching a relation, so
// relations never reference films or users it has not seen.
type CatalogService struct {
	entities  repositories.EntityStore
	relations repositories.RelationshipStore
	ranking   *RankingService
	social    *SocialService
}

func NewCatalogService(entities repositories.EntityStore, relations repositories.RelationshipStore) *CatalogService {
	return &CatalogService{
		entities:  entities,
		relations: relations,
		ranking:   NewRankingService(relations, entities),
		social:    NewSocialService(relations),
	}
}

func (s *CatalogService) requireFilm(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.Invalid("film id must be positive")
	}
	ok, err := s.entities.FilmExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound(errors.EntityFilm, id)
	}
	return nil
}

func (s *CatalogService) requireUser(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.Invalid("user id must be positive")
	}
	ok, err := s.entities.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound(errors.EntityUser, id)
	}
	return nil
}

// Like fails with NotFound naming whichever of the film or user is missing.
func (s *CatalogService) Like(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.ranking.Like(ctx, filmID, userID)
}

func (s *CatalogService) Unlike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.ranking.Unlike(ctx, filmID, userID)
}

func (s *CatalogService) TopFilms(ctx context.Context, n int) ([]models.FilmWithStats, error) {
	return s.ranking.TopFilms(ctx, n)
}

// FilmWithStats returns the film together with its current like count.
func (s *CatalogService) FilmWithStats(ctx context.Context, id uint) (*models.FilmWithStats, error) {
	if id == 0 {
		return nil, errors.Invalid("film id must be positive")
	}
	film, err := s.entities.GetFilm(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.ranking.CountLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.FilmWithStats{Film: *film, LikeCount: count}, nil
}

func (s *CatalogService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if err := validatePair(userID, friendID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return err
	}
	return s.social.AddFriend(ctx, userID, friendID)
}

func (s *CatalogService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := validatePair(userID, friendID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return err
	}
	return s.social.RemoveFriend(ctx, userID, friendID)
}

// FriendsOf returns the user's friends ordered by id.
func (s *CatalogService) FriendsOf(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.social.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

func (s *CatalogService) CommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, otherID); err != nil {
		return nil, err
	}
	ids, err := s.social.CommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

// resolveUsers keeps the order of ids and skips users deleted meanwhile.
func (s *CatalogService) resolveUsers(ctx context.Context, ids []uint) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.entities.GetUser(ctx, id)
		if errors.IsNotFound(err) {
			logger.Warn("Skipping friendship with missing user", "user_id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (s *CatalogService) CreateFilm(ctx context.Context, film *models.Film) error {
	cleanFilm(film)
	if film.Name == "" {
		return errors.Invalid("film name is required")
	}
	if err := s.entities.CreateFilm(ctx, film); err != nil {
		return err
	}
	logger.Info("Film created", "film_id", film.ID, "name", film.Name)
	return nil
}

func (s *CatalogService) UpdateFilm(ctx context.Context, film *models.Film) error {
	if film.ID == 0 {
		return errors.Invalid("film id must be positive")
	}
	cleanFilm(film)
	if film.Name == "" {
		return errors.Invalid("film name is required")
	}
	if err := s.entities.UpdateFilm(ctx, film); err != nil {
		return err
	}
	logger.Info("Film updated", "film_id", film.ID)
	return nil
}

// DeleteFilm removes the film and then every like that points at it.
func (s *CatalogService) DeleteFilm(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.Invalid("film id must be positive")
	}
	if err := s.entities.DeleteFilm(ctx, id); err != nil {
		return err
	}
	if err := s.relations.DeleteFilmLikes(ctx, id); err != nil {
		logger.Error("Failed to drop likes of deleted film", "film_id", id, "error", err)
		return err
	}
	logger.Info("Film deleted", "film_id", id)
	return nil
}

func (s *CatalogService) GetFilm(ctx context.Context, id uint) (*models.Film, error) {
	if id == 0 {
		return nil, errors.Invalid("film id must be positive")
	}
	return s.entities.GetFilm(ctx, id)
}

func (s *CatalogService) ListFilms(ctx context.Context) ([]models.Film, error) {
	return s.entities.ListFilms(ctx)
}

func (s *CatalogService) CreateUser(ctx context.Context, user *models.User) error {
	cleanUser(user)
	if user.Email == "" || user.Login == "" {
		return errors.Invalid("email and login are required")
	}
	if err := s.entities.CreateUser(ctx, user); err != nil {
		return err
	}
	logger.Info("User created", "user_id", user.ID, "login", user.Login)
	return nil
}

// CreateUsers creates the users in order and stops at the first failure,
// returning the ones created so far.
func (s *CatalogService) CreateUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	if len(users) == 0 {
		return nil, errors.Invalid("no users to create")
	}
	created := make([]models.User, 0, len(users))
	for i := range users {
		user := users[i]
		if err := s.CreateUser(ctx, &user); err != nil {
			return created, err
		}
		created = append(created, user)
	}
	return created, nil
}

func (s *CatalogService) UpdateUser(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		return errors.Invalid("user id must be positive")
	}
	cleanUser(user)
	if user.Email == "" || user.Login == "" {
		return errors.Invalid("email and login are required")
	}
	if err := s.entities.UpdateUser(ctx, user); err != nil {
		return err
	}
	logger.Info("User updated", "user_id", user.ID)
	return nil
}

// DeleteUser removes the user, their likes and both sides of every friendship.
func (s *CatalogService) DeleteUser(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.Invalid("user id must be positive")
	}
	if err := s.entities.DeleteUser(ctx, id); err != nil {
		return err
	}
	if err := s.relations.DeleteUserLikes(ctx, id); err != nil {
		logger.Error("Failed to drop likes of deleted user", "user_id", id, "error", err)
		return err
	}
	if err := s.relations.DeleteUserFriendships(ctx, id); err != nil {
		logger.Error("Failed to drop friendships of deleted user", "user_id", id, "error", err)
		return err
	}
	logger.Info("User deleted", "user_id", id)
	return nil
}

func (s *CatalogService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.Invalid("user id must be positive")
	}
	return s.entities.GetUser(ctx, id)
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.entities.ListUsers(ctx)
}

func cleanFilm(film *models.Film) {
	film.Name = security.CleanText(film.Name, maxNameLength)
	film.Description = security.CleanText(film.Description, maxDescriptionLength)
}

func cleanUser(user *models.User) {
	user.Email = security.SanitizeString(user.Email, maxEmailLength)
	user.Login = security.SanitizeString(user.Login, maxLoginLength)
	user.Name = security.CleanText(user.Name, maxNameLength)
}
