package models

import (
	"gorm.io/gorm"
)

// Domain is a per-(user, domain-name) rollup of certificate count and
// weightage. Created lazily on the first certificate in that domain.
type Domain struct {
	gorm.Model
	UserID           uint    `gorm:"index:idx_user_domain,unique;not null" json:"user_id"`
	Name             string  `gorm:"index:idx_user_domain,unique;size:100;not null" json:"name"`
	CertificateCount int     `gorm:"default:0" json:"certificate_count"`
	TotalWeightage   float64 `gorm:"type:decimal(6,2);default:0" json:"total_weightage"`
}
