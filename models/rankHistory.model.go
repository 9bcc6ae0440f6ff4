package models

import (
	"time"

	"gorm.io/gorm"
)

// RankHistory is an append-only monthly snapshot of a user's rank.
// Month always stores the first day of the month.
type RankHistory struct {
	gorm.Model
	UserID uint      `gorm:"index:idx_user_month,unique;not null" json:"user_id"`
	Month  time.Time `gorm:"index:idx_user_month,unique;not null" json:"month"`
	Rank   int       `gorm:"not null" json:"rank"`
}
