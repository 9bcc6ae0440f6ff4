package verification

import (
	"testing"
	"time"

	"certvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func addCertificate(t *testing.T, db *gorm.DB, userID uint, name string, weightage float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Certificate{
		UserID:     userID,
		Name:       name,
		Issuer:     "Coursera",
		Course:     "Python",
		Domain:     "General",
		Weightage:  weightage,
		Status:     models.CertStatusPending,
		FileHash:   name, // uniqueness is per user, any distinct value works here
		UploadDate: time.Now(),
	}).Error)
}

func TestRecomputeRanksDenseOrdering(t *testing.T) {
	db := setupTestDB(t)

	alice := createTestUser(t, db, "Alice", "A")
	bob := createTestUser(t, db, "Bob", "B")
	carol := createTestUser(t, db, "Carol", "C")

	addCertificate(t, db, alice.ID, "cert-1", 5.0)
	addCertificate(t, db, bob.ID, "cert-2", 9.0)
	addCertificate(t, db, carol.ID, "cert-3", 7.0)

	require.NoError(t, RecomputeRanks(db))

	ranks := map[uint]int{}
	totals := map[uint]float64{}
	var profiles []models.UserProfile
	require.NoError(t, db.Find(&profiles).Error)
	for _, p := range profiles {
		ranks[p.UserID] = p.CurrentRank
		totals[p.UserID] = p.TotalWeightage
	}

	assert.Equal(t, 1, ranks[bob.ID])
	assert.Equal(t, 2, ranks[carol.ID])
	assert.Equal(t, 3, ranks[alice.ID])
	assert.Equal(t, 9.0, totals[bob.ID])
	assert.Equal(t, 7.0, totals[carol.ID])
	assert.Equal(t, 5.0, totals[alice.ID])

	// Dense: exactly ranks 1..N, no gaps
	seen := map[int]bool{}
	for _, r := range ranks {
		seen[r] = true
	}
	for want := 1; want <= len(ranks); want++ {
		assert.True(t, seen[want], "missing rank %d", want)
	}
}

func TestRecomputeRanksTieBrokenByUserID(t *testing.T) {
	db := setupTestDB(t)

	first := createTestUser(t, db, "First", "User")
	second := createTestUser(t, db, "Second", "User")

	addCertificate(t, db, first.ID, "cert-1", 7.0)
	addCertificate(t, db, second.ID, "cert-2", 7.0)

	require.NoError(t, RecomputeRanks(db))

	var firstProfile, secondProfile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", first.ID).First(&firstProfile).Error)
	require.NoError(t, db.Where("user_id = ?", second.ID).First(&secondProfile).Error)

	// Equal totals: the earlier-registered user ranks higher
	assert.Equal(t, 1, firstProfile.CurrentRank)
	assert.Equal(t, 2, secondProfile.CurrentRank)
}

func TestRecomputeRanksIdempotent(t *testing.T) {
	db := setupTestDB(t)

	alice := createTestUser(t, db, "Alice", "A")
	bob := createTestUser(t, db, "Bob", "B")
	addCertificate(t, db, alice.ID, "cert-1", 8.25)
	addCertificate(t, db, bob.ID, "cert-2", 6.0)

	require.NoError(t, RecomputeRanks(db))

	// Count update statements issued by the second run
	updates := 0
	require.NoError(t, db.Callback().Update().After("gorm:update").
		Register("test_count_updates", func(tx *gorm.DB) { updates++ }))

	require.NoError(t, RecomputeRanks(db))
	assert.Zero(t, updates, "a recompute with no ledger changes must write nothing")
}

func TestRecomputeRanksZeroUsers(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, RecomputeRanks(db))
}

func TestRecomputeRanksCorrectsDriftedTotal(t *testing.T) {
	db := setupTestDB(t)

	alice := createTestUser(t, db, "Alice", "A")
	addCertificate(t, db, alice.ID, "cert-1", 8.25)

	// Simulate a drifted aggregate
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", alice.ID).
		Update("total_weightage", 99.0).Error)

	require.NoError(t, RecomputeRanks(db))

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&profile).Error)
	assert.Equal(t, 8.25, profile.TotalWeightage)
}

func TestSnapshotRanksOncePerMonth(t *testing.T) {
	db := setupTestDB(t)

	alice := createTestUser(t, db, "Alice", "A")
	addCertificate(t, db, alice.ID, "cert-1", 8.25)
	require.NoError(t, RecomputeRanks(db))

	month := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, SnapshotRanks(db, month))
	require.NoError(t, SnapshotRanks(db, month))

	var entries []models.RankHistory
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)
	// Normalized to the first day of the month
	assert.Equal(t, 1, entries[0].Month.Day())
	assert.Equal(t, time.August, entries[0].Month.Month())
}
