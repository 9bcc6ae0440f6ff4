package models

import (
	"time"

	"gorm.io/gorm"
)

// BlockchainVerification records an on-chain attestation for a certificate.
// Written once by the attestation call, read-only afterward.
type BlockchainVerification struct {
	gorm.Model
	CertificateID     uint      `gorm:"uniqueIndex;not null" json:"certificate_id"`
	TransactionHash   string    `gorm:"size:255;not null" json:"transaction_hash"`
	BlockchainNetwork string    `gorm:"size:100" json:"blockchain_network"`
	VerifiedAt        time.Time `json:"verified_at"`
	Verified          bool      `gorm:"default:false" json:"verified"`
}
