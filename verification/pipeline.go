package verification

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"certvault/models"

	"gorm.io/gorm"
)

// Pipeline runs the verification flow for one certificate upload: duplicate
// checks, OCR extraction, fuzzy matching of the claimed fields against the
// extracted text, scoring, and the atomic write of the accepted certificate
// together with its profile and domain rollups.
type Pipeline struct {
	DB        *gorm.DB
	Extractor TextExtractor
	Threshold int
}

// NewPipeline wires a pipeline. The extractor is injected so tests can
// substitute a fake for the tesseract-backed one.
func NewPipeline(db *gorm.DB, extractor TextExtractor, threshold int) *Pipeline {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Pipeline{DB: db, Extractor: extractor, Threshold: threshold}
}

// Accepted describes a successfully verified and persisted certificate
type Accepted struct {
	Certificate *models.Certificate
	Weightage   float64
	Course      string
}

// Submit verifies one upload and persists it on acceptance. Rejections are
// returned as the typed errors in errors.go; no database mutation happens
// unless every check passes.
func (p *Pipeline) Submit(user *models.User, name, issuer, course, domain string, fileBytes []byte, storedPath string) (*Accepted, error) {
	name = strings.TrimSpace(name)
	issuer = strings.TrimSpace(issuer)
	course = strings.TrimSpace(course)
	domain = strings.TrimSpace(domain)
	if domain == "" {
		domain = "General"
	}

	db := p.DB

	// Same display name twice is almost always a double submit
	var count int64
	if err := db.Model(&models.Certificate{}).
		Where("user_id = ? AND name = ? AND is_deleted = false", user.ID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	// Identical bytes are never scored twice, whatever the claims say.
	// Hashing is cheap, so this runs before any OCR work.
	sum := sha256.Sum256(fileBytes)
	fileHash := hex.EncodeToString(sum[:])

	if err := db.Model(&models.Certificate{}).
		Where("user_id = ? AND file_hash = ? AND is_deleted = false", user.ID, fileHash).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateContent
	}

	if issuer == "" || course == "" {
		return nil, ErrMissingField
	}

	// OCR is slow and blocking; it runs before any transaction is opened so
	// a stuck document never holds one open
	text, err := p.Extractor.Extract(fileBytes)
	if err != nil {
		return nil, err
	}

	// All three claims must be supported by the document
	var failed []string
	if !IsSimilar(user.FullName(), text, p.Threshold) {
		failed = append(failed, "name")
	}
	if !IsSimilar(issuer, text, p.Threshold) {
		failed = append(failed, "issuer")
	}
	if !IsSimilar(course, text, p.Threshold) {
		failed = append(failed, "course")
	}
	if len(failed) > 0 {
		return nil, &MatchError{Fields: failed}
	}

	weightage := Weightage(issuer, course)

	certificate := &models.Certificate{
		UserID:     user.ID,
		Name:       name,
		Issuer:     issuer,
		Course:     course,
		Domain:     domain,
		Weightage:  weightage,
		Status:     models.CertStatusPending,
		FilePath:   storedPath,
		FileHash:   fileHash,
		UploadDate: time.Now(),
	}

	// Certificate row, domain rollup and profile total move together or not
	// at all
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(certificate).Error; err != nil {
			return err
		}

		var domainRow models.Domain
		if err := tx.Where(models.Domain{UserID: user.ID, Name: domain}).
			FirstOrCreate(&domainRow).Error; err != nil {
			return err
		}
		if err := tx.Model(&domainRow).Updates(map[string]interface{}{
			"certificate_count": gorm.Expr("certificate_count + 1"),
			"total_weightage":   gorm.Expr("total_weightage + ?", weightage),
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.UserProfile{}).
			Where("user_id = ?", user.ID).
			Update("total_weightage", gorm.Expr("total_weightage + ?", weightage)).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The upload itself already succeeded; a failed recompute is repaired on
	// the next trigger or by the nightly job
	if err := RecomputeRanks(db); err != nil {
		log.Printf("Rank recompute after upload failed: %v", err)
	}

	return &Accepted{Certificate: certificate, Weightage: weightage, Course: course}, nil
}
