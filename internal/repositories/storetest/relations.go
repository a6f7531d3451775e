// Package storetest holds behaviour checks shared by every
// RelationshipStore implementation.
package storetest

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
)

// Fixture is a fresh store plus films and users it may reference.
// At least three films and four users are expected.
type Fixture struct {
	Store repositories.RelationshipStore
	Films []uint
	Users []uint
}

// RunRelationshipStore runs every check against stores built by newFixture.
// Each subtest gets its own fixture.
func RunRelationshipStore(t *testing.T, newFixture func(t *testing.T) Fixture) {
	t.Run("LikeIsIdempotent", func(t *testing.T) { likeIsIdempotent(t, newFixture(t)) })
	t.Run("RemoveLike", func(t *testing.T) { removeLike(t, newFixture(t)) })
	t.Run("Ranking", func(t *testing.T) { ranking(t, newFixture(t)) })
	t.Run("DeleteFilmLikes", func(t *testing.T) { deleteFilmLikes(t, newFixture(t)) })
	t.Run("DeleteUserLikes", func(t *testing.T) { deleteUserLikes(t, newFixture(t)) })
	t.Run("FriendshipPairs", func(t *testing.T) { friendshipPairs(t, newFixture(t)) })
	t.Run("DeleteUserFriendships", func(t *testing.T) { deleteUserFriendships(t, newFixture(t)) })
	t.Run("ConcurrentPairs", func(t *testing.T) { concurrentPairs(t, newFixture(t)) })
}

func likeIsIdempotent(t *testing.T, fx Fixture) {
	ctx := context.Background()
	film, user := fx.Films[0], fx.Users[0]

	require.NoError(t, fx.Store.AddLike(ctx, film, user))
	require.NoError(t, fx.Store.AddLike(ctx, film, user))

	count, err := fx.Store.CountLikes(ctx, film)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ok, err := fx.Store.HasLike(ctx, film, user)
	require.NoError(t, err)
	assert.True(t, ok)
}

func removeLike(t *testing.T, fx Fixture) {
	ctx := context.Background()
	film, user := fx.Films[0], fx.Users[0]

	removed, err := fx.Store.RemoveLike(ctx, film, user)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, fx.Store.AddLike(ctx, film, user))
	removed, err = fx.Store.RemoveLike(ctx, film, user)
	require.NoError(t, err)
	assert.True(t, removed)

	rows, err := fx.Store.FilmIDsByLikesDesc(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func ranking(t *testing.T, fx Fixture) {
	ctx := context.Background()
	f, u := fx.Films, fx.Users

	// f[2] has three likes, f[0] and f[1] one each.
	for _, user := range u[:3] {
		require.NoError(t, fx.Store.AddLike(ctx, f[2], user))
	}
	require.NoError(t, fx.Store.AddLike(ctx, f[1], u[0]))
	require.NoError(t, fx.Store.AddLike(ctx, f[0], u[1]))

	rows, err := fx.Store.FilmIDsByLikesDesc(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.FilmLikes{
		{FilmID: f[2], Likes: 3},
		{FilmID: f[0], Likes: 1},
		{FilmID: f[1], Likes: 1},
	}, rows)

	rows, err = fx.Store.FilmIDsByLikesDesc(ctx, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = fx.Store.FilmIDsByLikesDesc(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.FilmLikes{
		{FilmID: f[2], Likes: 3},
		{FilmID: f[0], Likes: 1},
	}, rows)
}

func deleteFilmLikes(t *testing.T, fx Fixture) {
	ctx := context.Background()
	f, u := fx.Films, fx.Users

	require.NoError(t, fx.Store.AddLike(ctx, f[0], u[0]))
	require.NoError(t, fx.Store.AddLike(ctx, f[0], u[1]))
	require.NoError(t, fx.Store.AddLike(ctx, f[1], u[0]))

	require.NoError(t, fx.Store.DeleteFilmLikes(ctx, f[0]))

	count, err := fx.Store.CountLikes(ctx, f[0])
	require.NoError(t, err)
	assert.Zero(t, count)

	rows, err := fx.Store.FilmIDsByLikesDesc(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.FilmLikes{{FilmID: f[1], Likes: 1}}, rows)
}

func deleteUserLikes(t *testing.T, fx Fixture) {
	ctx := context.Background()
	f, u := fx.Films, fx.Users

	require.NoError(t, fx.Store.AddLike(ctx, f[0], u[0]))
	require.NoError(t, fx.Store.AddLike(ctx, f[1], u[0]))
	require.NoError(t, fx.Store.AddLike(ctx, f[1], u[1]))

	require.NoError(t, fx.Store.DeleteUserLikes(ctx, u[0]))

	rows, err := fx.Store.FilmIDsByLikesDesc(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.FilmLikes{{FilmID: f[1], Likes: 1}}, rows)
}

func friendshipPairs(t *testing.T, fx Fixture) {
	ctx := context.Background()
	u := fx.Users

	require.NoError(t, fx.Store.AddFriendshipPair(ctx, u[2], u[0]))
	require.NoError(t, fx.Store.AddFriendshipPair(ctx, u[0], u[2]))
	require.NoError(t, fx.Store.AddFriendshipPair(ctx, u[0], u[1]))

	ids, err := fx.Store.FriendIDsOf(ctx, u[0])
	require.NoError(t, err)
	assert.Equal(t, []uint{u[1], u[2]}, ids)

	ids, err = fx.Store.FriendIDsOf(ctx, u[2])
	require.NoError(t, err)
	assert.Equal(t, []uint{u[0]}, ids)

	require.NoError(t, fx.Store.RemoveFriendshipPair(ctx, u[0], u[2]))
	require.NoError(t, fx.Store.RemoveFriendshipPair(ctx, u[0], u[2]))

	ids, err = fx.Store.FriendIDsOf(ctx, u[2])
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func deleteUserFriendships(t *testing.T, fx Fixture) {
	ctx := context.Background()
	u := fx.Users

	require.NoError(t, fx.Store.AddFriendshipPair(ctx, u[0], u[1]))
	require.NoError(t, fx.Store.AddFriendshipPair(ctx, u[0], u[2]))
	require.NoError(t, fx.Store.AddFriendshipPair(ctx, u[1], u[2]))

	require.NoError(t, fx.Store.DeleteUserFriendships(ctx, u[0]))

	for _, other := range u[1:3] {
		ids, err := fx.Store.FriendIDsOf(ctx, other)
		require.NoError(t, err)
		assert.NotContains(t, ids, u[0])
	}
	ids, err := fx.Store.FriendIDsOf(ctx, u[1])
	require.NoError(t, err)
	assert.Equal(t, []uint{u[2]}, ids)
}

func concurrentPairs(t *testing.T, fx Fixture) {
	ctx := context.Background()
	u := fx.Users

	var wg sync.WaitGroup
	for i := range u {
		for j := range u {
			if i == j {
				continue
			}
			wg.Add(1)
			go func(a, b uint, remove bool) {
				defer wg.Done()
				if remove {
					assert.NoError(t, fx.Store.RemoveFriendshipPair(ctx, a, b))
					return
				}
				assert.NoError(t, fx.Store.AddFriendshipPair(ctx, a, b))
			}(u[i], u[j], (i*len(u)+j)%3 == 0)
		}
	}
	wg.Wait()

	for _, a := range u {
		ids, err := fx.Store.FriendIDsOf(ctx, a)
		require.NoError(t, err)
		for _, b := range ids {
			back, err := fx.Store.FriendIDsOf(ctx, b)
			require.NoError(t, err)
			assert.Contains(t, back, a, "friendship %d-%d is one-sided", a, b)
		}
	}
}
