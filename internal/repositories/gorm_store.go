package repositories

import "gorm.io/gorm"

// GormStore bundles the postgres repositories behind the store contracts.
type GormStore struct {
	*FilmRepository
	*UserRepository
	*LikeRepository
	*FriendRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		FilmRepository:   NewFilmRepository(db),
		UserRepository:   NewUserRepository(db),
		LikeRepository:   NewLikeRepository(db),
		FriendRepository: NewFriendRepository(db),
	}
}

var (
	_ EntityStore       = (*GormStore)(nil)
	_ RelationshipStore = (*GormStore)(nil)
)
