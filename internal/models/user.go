package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Login     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"login"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Birthday  time.Time `gorm:"type:date" json:"birthday"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// DisplayName falls back to the login when no name was given.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.Name) == "" {
		return u.Login
	}
	return u.Name
}

// BeforeCreate hook fills in the name from the login
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Name = u.DisplayName()
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Friendship is one direction of a friendship. Every pair is stored as two
// mirrored rows that are written and deleted in the same transaction.
type Friendship struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FriendID  uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Friend    User      `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Friendship) TableName() string {
	return "friendships"
}
