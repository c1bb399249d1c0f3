package model

import (
	"time"

	"gorm.io/gorm"
)

// Movie is the tracked cache/analytics row for an upstream movie. The primary
// key is the upstream catalog id, so there is exactly one row per movie.
// FavoriteCount is bumped once per detail fetch and only ever grows.
type Movie struct {
	ID            int64          `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title         string         `json:"title" gorm:"size:255;not null"`
	Budget        int64          `json:"budget" gorm:"default:0"`
	Revenue       int64          `json:"revenue" gorm:"default:0"`
	FavoriteCount int64          `json:"favorite_count" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
