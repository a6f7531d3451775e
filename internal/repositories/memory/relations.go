package memory

import (
	"context"
	"sort"

	"github.com/mroshb/filmorate/internal/models"
)

func (s *Store) AddLike(_ context.Context, filmID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addEdge(s.likes, filmID, userID)
	return nil
}

func (s *Store) RemoveLike(_ context.Context, filmID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeEdge(s.likes, filmID, userID), nil
}

func (s *Store) HasLike(_ context.Context, filmID, userID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[filmID][userID]
	return ok, nil
}

func (s *Store) CountLikes(_ context.Context, filmID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.likes[filmID])), nil
}

func (s *Store) FilmIDsByLikesDesc(_ context.Context, limit int) ([]models.FilmLikes, error) {
	s.mu.RLock()
	rows := make([]models.FilmLikes, 0, len(s.likes))
	for filmID, users := range s.likes {
		rows = append(rows, models.FilmLikes{FilmID: filmID, Likes: int64(len(users))})
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Likes != rows[j].Likes {
			return rows[i].Likes > rows[j].Likes
		}
		return rows[i].FilmID < rows[j].FilmID
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) DeleteFilmLikes(_ context.Context, filmID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes, filmID)
	return nil
}

func (s *Store) DeleteUserLikes(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for filmID := range s.likes {
		removeEdge(s.likes, filmID, userID)
	}
	return nil
}

// AddFriendshipPair sets both directions under one lock, so no reader can see half a pair
func (s *Store) AddFriendshipPair(_ context.Context, userID, friendID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addEdge(s.friends, userID, friendID)
	addEdge(s.friends, friendID, userID)
	return nil
}

func (s *Store) RemoveFriendshipPair(_ context.Context, userID, friendID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removeEdge(s.friends, userID, friendID)
	removeEdge(s.friends, friendID, userID)
	return nil
}

func (s *Store) FriendIDsOf(_ context.Context, userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.friends[userID]))
	for id := range s.friends[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) DeleteUserFriendships(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for friendID := range s.friends[userID] {
		removeEdge(s.friends, friendID, userID)
	}
	delete(s.friends, userID)
	return nil
}

func addEdge(m map[uint]map[uint]struct{}, from, to uint) {
	set, ok := m[from]
	if !ok {
		set = make(map[uint]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

// removeEdge drops empty sets so ranking never sees films with zero likes.
func removeEdge(m map[uint]map[uint]struct{}, from, to uint) bool {
	set, ok := m[from]
	if !ok {
		return false
	}
	if _, ok := set[to]; !ok {
		return false
	}
	delete(set, to)
	if len(set) == 0 {
		delete(m, from)
	}
	return true
}
