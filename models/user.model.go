package models

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string `gorm:"default:''"`
	FirstName    string `gorm:"size:30;default:''" json:"first_name"`
	LastName     string `gorm:"size:30;default:''" json:"last_name"`
	Email        string `gorm:"unique;not null" json:"email"`
	Role         string `gorm:"default:'USER'" json:"role"` // USER, ADMIN
	Password     string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsDeleted    bool   `gorm:"default:false" json:"-"`
}

// FullName returns the holder name as it should appear on a certificate
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
