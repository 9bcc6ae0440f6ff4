package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate status values. The upload pipeline only ever assigns PENDING;
// VERIFIED and FAILED are set later by attestation or an admin override.
const (
	CertStatusPending  = "pending"
	CertStatusVerified = "verified"
	CertStatusFailed   = "failed"
)

// Certificate represents one accepted certificate upload
type Certificate struct {
	gorm.Model
	UserID           uint       `gorm:"index;not null" json:"user_id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	Issuer           string     `gorm:"size:255;not null" json:"issuer"`
	Course           string     `gorm:"size:255;not null" json:"course"`
	Domain           string     `gorm:"size:100;default:'General'" json:"domain"`
	Weightage        float64    `gorm:"type:decimal(5,2);not null" json:"weightage"`
	Status           string     `gorm:"size:20;default:'pending'" json:"status"`
	FilePath         string     `gorm:"size:512" json:"file_path"`
	FileHash         string     `gorm:"size:64;index;not null" json:"-"` // sha256 of the uploaded bytes
	UploadDate       time.Time  `json:"upload_date"`
	VerificationDate *time.Time `json:"verification_date"`
	IsDeleted        bool       `gorm:"default:false" json:"-"`
}
