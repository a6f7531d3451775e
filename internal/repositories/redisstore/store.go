// Package redisstore keeps the likes and friendship relations in Redis.
//
// Layout:
//   - Set    "filmorate:film:{id}:likes"   user ids that like the film
//   - Set    "filmorate:user:{id}:likes"   film ids the user likes (cascade index)
//   - ZSet   "filmorate:films:likes"       film id -> like count
//   - Set    "filmorate:user:{id}:friends" friend ids
//
// Every mutation runs either as a Lua script or inside MULTI/EXEC, so the
// like sets, the ranking and both friendship directions never disagree.
package redisstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "filmorate:"
	keyRanking = keyPrefix + "films:likes"
)

func filmLikesKey(filmID uint) string {
	return fmt.Sprintf("%sfilm:%d:likes", keyPrefix, filmID)
}

func userLikesKey(userID uint) string {
	return fmt.Sprintf("%suser:%d:likes", keyPrefix, userID)
}

func friendsKey(userID uint) string {
	return fmt.Sprintf("%suser:%d:friends", keyPrefix, userID)
}

// Options holds connection settings for NewClient.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient opens a pooled client and checks the connection.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Store needs a single-node Redis. The cascade scripts derive the keys of
// related users and films inside Lua, which Redis Cluster does not allow.
type Store struct {
	rdb *redis.Client
}

var _ repositories.RelationshipStore = (*Store)(nil)

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// KEYS: film likes, user likes, ranking. ARGV: user id, film id.
var addLikeScript = redis.NewScript(`
if redis.call('SADD', KEYS[1], ARGV[1]) == 1 then
	redis.call('SADD', KEYS[2], ARGV[2])
	redis.call('ZINCRBY', KEYS[3], 1, ARGV[2])
end
return 1
`)

var removeLikeScript = redis.NewScript(`
if redis.call('SREM', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('SREM', KEYS[2], ARGV[2])
if tonumber(redis.call('ZINCRBY', KEYS[3], -1, ARGV[2])) <= 0 then
	redis.call('ZREM', KEYS[3], ARGV[2])
end
return 1
`)

// KEYS: film likes, ranking. ARGV: film id, key prefix.
var deleteFilmLikesScript = redis.NewScript(`
local users = redis.call('SMEMBERS', KEYS[1])
for _, u in ipairs(users) do
	redis.call('SREM', ARGV[2] .. 'user:' .. u .. ':likes', ARGV[1])
end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return #users
`)

// KEYS: user likes, ranking. ARGV: user id, key prefix.
var deleteUserLikesScript = redis.NewScript(`
local films = redis.call('SMEMBERS', KEYS[1])
for _, f in ipairs(films) do
	redis.call('SREM', ARGV[2] .. 'film:' .. f .. ':likes', ARGV[1])
	if tonumber(redis.call('ZINCRBY', KEYS[2], -1, f)) <= 0 then
		redis.call('ZREM', KEYS[2], f)
	end
end
redis.call('DEL', KEYS[1])
return #films
`)

// KEYS: user friends. ARGV: user id, key prefix.
var deleteFriendshipsScript = redis.NewScript(`
local friends = redis.call('SMEMBERS', KEYS[1])
for _, f in ipairs(friends) do
	redis.call('SREM', ARGV[2] .. 'user:' .. f .. ':friends', ARGV[1])
end
redis.call('DEL', KEYS[1])
return #friends
`)

func (s *Store) AddLike(ctx context.Context, filmID, userID uint) error {
	keys := []string{filmLikesKey(filmID), userLikesKey(userID), keyRanking}
	if err := addLikeScript.Run(ctx, s.rdb, keys, userID, filmID).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add like")
	}
	return nil
}

func (s *Store) RemoveLike(ctx context.Context, filmID, userID uint) (bool, error) {
	keys := []string{filmLikesKey(filmID), userLikesKey(userID), keyRanking}
	removed, err := removeLikeScript.Run(ctx, s.rdb, keys, userID, filmID).Int()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove like")
	}
	return removed == 1, nil
}

func (s *Store) HasLike(ctx context.Context, filmID, userID uint) (bool, error) {
	ok, err := s.rdb.SIsMember(ctx, filmLikesKey(filmID), userID).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check like")
	}
	return ok, nil
}

func (s *Store) CountLikes(ctx context.Context, filmID uint) (int64, error) {
	n, err := s.rdb.SCard(ctx, filmLikesKey(filmID)).Result()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count likes")
	}
	return n, nil
}

// FilmIDsByLikesDesc reads the top of the ranking set. Redis orders equal
// scores by member string, so the whole band at the boundary score is fetched
// and re-sorted by numeric film id before truncating.
func (s *Store) FilmIDsByLikesDesc(ctx context.Context, limit int) ([]models.FilmLikes, error) {
	if limit <= 0 {
		return nil, nil
	}

	top, err := s.rdb.ZRevRangeWithScores(ctx, keyRanking, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to rank films")
	}
	if len(top) == 0 {
		return nil, nil
	}

	entries := top
	if len(top) == limit {
		boundary := top[len(top)-1].Score
		bound := strconv.FormatFloat(boundary, 'f', -1, 64)
		band, err := s.rdb.ZRangeByScoreWithScores(ctx, keyRanking, &redis.ZRangeBy{Min: bound, Max: bound}).Result()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to rank films")
		}

		entries = make([]redis.Z, 0, len(top)+len(band))
		for _, z := range top {
			if z.Score > boundary {
				entries = append(entries, z)
			}
		}
		entries = append(entries, band...)
	}

	rows := make([]models.FilmLikes, 0, len(entries))
	for _, z := range entries {
		member, _ := z.Member.(string)
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		rows = append(rows, models.FilmLikes{FilmID: uint(id), Likes: int64(z.Score)})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Likes != rows[j].Likes {
			return rows[i].Likes > rows[j].Likes
		}
		return rows[i].FilmID < rows[j].FilmID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) DeleteFilmLikes(ctx context.Context, filmID uint) error {
	keys := []string{filmLikesKey(filmID), keyRanking}
	if err := deleteFilmLikesScript.Run(ctx, s.rdb, keys, filmID, keyPrefix).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete film likes")
	}
	return nil
}

func (s *Store) DeleteUserLikes(ctx context.Context, userID uint) error {
	keys := []string{userLikesKey(userID), keyRanking}
	if err := deleteUserLikesScript.Run(ctx, s.rdb, keys, userID, keyPrefix).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete user likes")
	}
	return nil
}

// AddFriendshipPair writes both directions in one MULTI/EXEC block
func (s *Store) AddFriendshipPair(ctx context.Context, userID, friendID uint) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, friendsKey(userID), friendID)
		pipe.SAdd(ctx, friendsKey(friendID), userID)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add friendship")
	}
	return nil
}

func (s *Store) RemoveFriendshipPair(ctx context.Context, userID, friendID uint) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, friendsKey(userID), friendID)
		pipe.SRem(ctx, friendsKey(friendID), userID)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove friendship")
	}
	return nil
}

func (s *Store) FriendIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	members, err := s.rdb.SMembers(ctx, friendsKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}
	return parseIDs(members), nil
}

func (s *Store) DeleteUserFriendships(ctx context.Context, userID uint) error {
	keys := []string{friendsKey(userID)}
	if err := deleteFriendshipsScript.Run(ctx, s.rdb, keys, userID, keyPrefix).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete friendships")
	}
	return nil
}

// parseIDs converts set members to ids in ascending order, skipping garbage.
func parseIDs(members []string) []uint {
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
