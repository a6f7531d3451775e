package models

import (
	"time"
)

type Film struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:varchar(200)" json:"description"`
	ReleaseDate time.Time `gorm:"type:date" json:"releaseDate"`
	Duration    int       `gorm:"not null;default:0" json:"duration"` // minutes
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName specifies the table name
func (Film) TableName() string {
	return "films"
}

// FilmWithStats is a film together with its current like count.
type FilmWithStats struct {
	Film
	LikeCount int64 `json:"likeCount"`
}

// FilmLikes is one row of the popularity ranking.
type FilmLikes struct {
	FilmID uint
	Likes  int64
}

// Like marks that a user likes a film. The composite key makes it a set element.
type Like struct {
	FilmID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Film      Film      `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}
