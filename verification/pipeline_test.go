package verification

import (
	"errors"
	"testing"

	"certvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const certText = "CERTIFICATE OF COMPLETION\nJane Doe\nPython\nCoursera\nMarch 2026"

func TestSubmitAcceptsMatchingUpload(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	extractor := &fakeExtractor{text: certText}
	pipeline := NewPipeline(db, extractor, 70)

	accepted, err := pipeline.Submit(user, "Python Basics", "Coursera", "Python", "Programming", []byte("pdf-bytes"), "stored/key.pdf")
	require.NoError(t, err)

	assert.Equal(t, 8.25, accepted.Weightage)
	assert.Equal(t, "Python", accepted.Course)
	assert.Equal(t, models.CertStatusPending, accepted.Certificate.Status)

	// Certificate row persisted
	var cert models.Certificate
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cert).Error)
	assert.Equal(t, "Python Basics", cert.Name)
	assert.Equal(t, 8.25, cert.Weightage)
	assert.NotEmpty(t, cert.FileHash)

	// Domain rollup created lazily
	var domain models.Domain
	require.NoError(t, db.Where("user_id = ? AND name = ?", user.ID, "Programming").First(&domain).Error)
	assert.Equal(t, 1, domain.CertificateCount)
	assert.Equal(t, 8.25, domain.TotalWeightage)

	// Profile total updated and rank assigned
	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, 8.25, profile.TotalWeightage)
	assert.Equal(t, 1, profile.CurrentRank)
}

func TestSubmitProfileTotalMatchesLedger(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	extractor := &fakeExtractor{text: certText}
	pipeline := NewPipeline(db, extractor, 70)

	_, err := pipeline.Submit(user, "Python Basics", "Coursera", "Python", "", []byte("first"), "a.pdf")
	require.NoError(t, err)
	_, err = pipeline.Submit(user, "Python Advanced", "Coursera", "Python", "", []byte("second"), "b.pdf")
	require.NoError(t, err)

	var ledgerTotal float64
	require.NoError(t, db.Model(&models.Certificate{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(weightage), 0)").
		Scan(&ledgerTotal).Error)

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, ledgerTotal, profile.TotalWeightage)
}

func TestSubmitRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	pipeline := NewPipeline(db, &fakeExtractor{text: certText}, 70)

	_, err := pipeline.Submit(user, "Python Basics", "Coursera", "Python", "", []byte("one"), "a.pdf")
	require.NoError(t, err)

	_, err = pipeline.Submit(user, "Python Basics", "Coursera", "Python", "", []byte("two"), "b.pdf")
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.True(t, IsRejection(err))
}

func TestSubmitRejectsDuplicateContentBeforeExtraction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	extractor := &fakeExtractor{text: certText}
	pipeline := NewPipeline(db, extractor, 70)

	fileBytes := []byte("identical-bytes")
	_, err := pipeline.Submit(user, "Python Basics", "Coursera", "Python", "", fileBytes, "a.pdf")
	require.NoError(t, err)
	require.Equal(t, 1, extractor.calls)

	// Same bytes under a different name and claims: rejected without OCR
	_, err = pipeline.Submit(user, "Totally Different", "Udemy", "Java", "", fileBytes, "b.pdf")
	assert.ErrorIs(t, err, ErrDuplicateContent)
	assert.Equal(t, 1, extractor.calls, "extractor must not run for duplicate content")
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	extractor := &fakeExtractor{text: certText}
	pipeline := NewPipeline(db, extractor, 70)

	_, err := pipeline.Submit(user, "Python Basics", "", "Python", "", []byte("x"), "a.pdf")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = pipeline.Submit(user, "Python Basics", "Coursera", "   ", "", []byte("x"), "a.pdf")
	assert.ErrorIs(t, err, ErrMissingField)

	assert.Equal(t, 0, extractor.calls)
}

func TestSubmitRejectsContentMismatch(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	// Text never mentions the claimed issuer
	pipeline := NewPipeline(db, &fakeExtractor{text: "Jane Doe\nPython\nsome other academy"}, 70)

	_, err := pipeline.Submit(user, "Python Basics", "Coursera", "Python", "", []byte("x"), "a.pdf")

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Contains(t, matchErr.Fields, "issuer")
	assert.NotContains(t, matchErr.Fields, "name")
	assert.True(t, IsRejection(err))

	// All-or-nothing: no rows were written
	var certCount, domainCount int64
	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	db.Model(&models.Domain{}).Where("user_id = ?", user.ID).Count(&domainCount)
	assert.Zero(t, certCount)
	assert.Zero(t, domainCount)

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Zero(t, profile.TotalWeightage)
}

func TestSubmitPropagatesExtractionError(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Jane", "Doe")
	extractErr := &ExtractionError{Reason: "could not open PDF"}
	pipeline := NewPipeline(db, &fakeExtractor{err: extractErr}, 70)

	_, err := pipeline.Submit(user, "Python Basics", "Coursera", "Python", "", []byte("broken"), "a.pdf")

	var got *ExtractionError
	assert.ErrorAs(t, err, &got)
	assert.True(t, IsRejection(err))

	var certCount int64
	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Zero(t, certCount)
}

func TestSubmitInfrastructureErrorIsNotRejection(t *testing.T) {
	assert.False(t, IsRejection(errors.New("connection refused")))
}
