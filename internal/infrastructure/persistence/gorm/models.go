// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON column
type StringSlice []string

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
	return json.Unmarshal(data, s)
}

// RecipeModel represents the GORM model for catalog recipes. IDs come
// from the catalog import, so the primary key is never auto-assigned.
type RecipeModel struct {
	ID           int         `gorm:"primaryKey;autoIncrement:false"`
	Name         string      `gorm:"type:varchar(255);not null;index"`
	Type         string      `gorm:"type:varchar(20);not null;index"`
	Image        string      `gorm:"type:text"`
	TimeMinutes  int         `gorm:"column:time_minutes;not null"`
	Difficulty   string      `gorm:"type:varchar(20);not null"`
	Cost         string      `gorm:"type:varchar(20);not null"`
	Ingredients  StringSlice `gorm:"type:json"`
	Instructions StringSlice `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name
func (RecipeModel) TableName() string {
	return "recipes"
}

// UserModel represents the GORM model for user profiles
type UserModel struct {
	UID       string `gorm:"type:varchar(128);primaryKey"`
	Username  string `gorm:"type:varchar(50);not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Favorites []FavoriteModel `gorm:"foreignKey:UserUID"`
}

// TableName overrides the table name
func (UserModel) TableName() string {
	return "users"
}

// FavoriteModel is one element of a user's favorites set. The composite
// primary key gives AddFavorite/RemoveFavorite their set semantics.
type FavoriteModel struct {
	UserUID   string `gorm:"type:varchar(128);primaryKey"`
	RecipeID  int    `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

// TableName overrides the table name
func (FavoriteModel) TableName() string {
	return "favorites"
}

// RatingModel represents the GORM model for recipe ratings
type RatingModel struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	RecipeID  int    `gorm:"not null;index"`
	UserID    string `gorm:"type:varchar(128);not null;index"`
	Username  string `gorm:"type:varchar(50);not null"`
	Value     int    `gorm:"not null;check:value >= 1 AND value <= 5"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName overrides the table name
func (RatingModel) TableName() string {
	return "ratings"
}

// AccountModel stores identity credentials, separate from the profile
// record so the application layer never touches password hashes.
type AccountModel struct {
	UID          string `gorm:"type:varchar(128);primaryKey"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name
func (AccountModel) TableName() string {
	return "accounts"
}
