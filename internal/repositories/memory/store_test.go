package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories/storetest"
	"github.com/mroshb/filmorate/pkg/errors"
)

func TestStore_Relationships(t *testing.T) {
	storetest.RunRelationshipStore(t, func(t *testing.T) storetest.Fixture {
		ctx := context.Background()
		store := NewStore()
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

func TestStore_FilmLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &models.Film{Name: "First"}
	second := &models.Film{ID: 99, Name: "Second"}
	require.NoError(t, store.CreateFilm(ctx, first))
	require.NoError(t, store.CreateFilm(ctx, second))
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID, "caller supplied id is replaced")

	second.Name = "Second cut"
	require.NoError(t, store.UpdateFilm(ctx, second))
	got, err := store.GetFilm(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second cut", got.Name)

	require.NoError(t, store.DeleteFilm(ctx, first.ID))
	ok, err := store.FilmExists(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	tests := []struct {
		name string
		err  error
	}{
		{name: "get deleted", err: func() error { _, err := store.GetFilm(ctx, first.ID); return err }()},
		{name: "delete twice", err: store.DeleteFilm(ctx, first.ID)},
		{name: "update missing", err: store.UpdateFilm(ctx, &models.Film{ID: 7, Name: "x"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.IsNotFound(tt.err))
			assert.Equal(t, errors.EntityFilm, errors.EntityOf(tt.err))
		})
	}

	films, err := store.ListFilms(ctx)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, second.ID, films[0].ID)
}

func TestStore_UserIdentityConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	ann := &models.User{Email: "ann@example.com", Login: "ann"}
	bob := &models.User{Email: "bob@example.com", Login: "bob", Name: "Bob"}
	require.NoError(t, store.CreateUser(ctx, ann))
	require.NoError(t, store.CreateUser(ctx, bob))
	assert.Equal(t, "ann", ann.Name)
	assert.Equal(t, "Bob", bob.Name)

	tests := []struct {
		name string
		user *models.User
	}{
		{name: "same email other case", user: &models.User{Email: "ANN@example.com", Login: "ann2"}},
		{name: "same login", user: &models.User{Email: "other@example.com", Login: "bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.IsConflict(store.CreateUser(ctx, tt.user)))
		})
	}

	// Keeping one's own email is not a conflict, taking someone else's is.
	ann.Name = "Ann"
	require.NoError(t, store.UpdateUser(ctx, ann))
	ann.Login = "bob"
	assert.True(t, errors.IsConflict(store.UpdateUser(ctx, ann)))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ann", users[0].Login)
}
