//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/repositories/storetest"
	"github.com/mroshb/filmorate/internal/testinfra"
	"github.com/mroshb/filmorate/pkg/errors"
)

func TestGormStore_Relationships(t *testing.T) {
	db := testinfra.StartPostgres(t)

	storetest.RunRelationshipStore(t, func(t *testing.T) storetest.Fixture {
		ctx := context.Background()
		require.NoError(t, db.Exec("TRUNCATE likes, friendships, films, users RESTART IDENTITY CASCADE").Error)

		store := repositories.NewGormStore(db)
		fx := storetest.Fixture{Store: store}
		for i := 1; i <= 3; i++ {
			film := &models.Film{Name: fmt.Sprintf("Film %d", i)}
			require.NoError(t, store.CreateFilm(ctx, film))
			fx.Films = append(fx.Films, film.ID)
		}
		for i := 1; i <= 4; i++ {
			user := &models.User{Email: fmt.Sprintf("u%d@example.com", i), Login: fmt.Sprintf("u%d", i)}
			require.NoError(t, store.CreateUser(ctx, user))
			fx.Users = append(fx.Users, user.ID)
		}
		return fx
	})
}

func TestGormStore_Entities(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGormStore(testinfra.StartPostgres(t))

	ann := &models.User{Email: "ann@example.com", Login: "ann"}
	require.NoError(t, store.CreateUser(ctx, ann))
	assert.Equal(t, "ann", ann.Name)

	err := store.CreateUser(ctx, &models.User{Email: "ann@example.com", Login: "other"})
	assert.True(t, errors.IsConflict(err))

	err = store.UpdateUser(ctx, &models.User{ID: 999, Email: "x@example.com", Login: "x"})
	assert.True(t, errors.IsNotFound(err))

	film := &models.Film{Name: "Heat", Duration: 170}
	require.NoError(t, store.CreateFilm(ctx, film))

	ok, err := store.FilmExists(ctx, film.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.DeleteFilm(ctx, film.ID))
	_, err = store.GetFilm(ctx, film.ID)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.EntityFilm, errors.EntityOf(err))
}
