//go:build integration

package redisstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroshb/filmorate/internal/repositories/redisstore"
	"github.com/mroshb/filmorate/internal/repositories/storetest"
	"github.com/mroshb/filmorate/internal/testinfra"
)

func TestStore_Relationships(t *testing.T) {
	client := testinfra.StartRedis(t)

	storetest.RunRelationshipStore(t, func(t *testing.T) storetest.Fixture {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		return storetest.Fixture{
			Store: redisstore.NewStore(client),
			Films: []uint{1, 2, 3},
			Users: []uint{1, 2, 3, 4},
		}
	})
}

func TestStore_RankingTieBreakAcrossDigits(t *testing.T) {
	ctx := context.Background()
	client := testinfra.StartRedis(t)
	store := redisstore.NewStore(client)

	// Redis sorts equal scores by member bytes, which would put "10" before "9".
	for _, film := range []uint{10, 9, 100, 2} {
		require.NoError(t, store.AddLike(ctx, film, 1))
	}
	require.NoError(t, store.AddLike(ctx, 100, 2))

	rows, err := store.FilmIDsByLikesDesc(ctx, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, uint(100), rows[0].FilmID)
	assert.Equal(t, uint(2), rows[1].FilmID)
	assert.Equal(t, uint(9), rows[2].FilmID)
}
