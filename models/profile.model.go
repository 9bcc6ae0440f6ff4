package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile holds the per-user aggregate state maintained by the
// verification pipeline and the rank recompute. One row per user.
type UserProfile struct {
	gorm.Model
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Department     string    `gorm:"size:100;default:''" json:"department"`
	JoinDate       time.Time `json:"join_date"`
	CurrentRank    int       `gorm:"default:0" json:"current_rank"`
	TotalWeightage float64   `gorm:"type:decimal(6,2);default:0" json:"total_weightage"`
}
