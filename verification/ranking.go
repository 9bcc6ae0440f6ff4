package verification

import (
	"fmt"
	"log"
	"sync"
	"time"

	"certvault/models"

	"gorm.io/gorm"
)

// rankMu serializes recomputes within the process. The recompute is
// idempotent, so concurrent triggers just take turns; last one wins.
var rankMu sync.Mutex

// RecomputeRanks recalculates every user's total weightage from the
// certificate ledger and assigns ranks 1..N ordered by weightage descending,
// user id ascending on ties. Only profiles whose stored values actually
// changed are written back. A single bad row is logged and skipped; an error
// is returned only when every pending write failed.
func RecomputeRanks(db *gorm.DB) error {
	rankMu.Lock()
	defer rankMu.Unlock()

	type profileTotal struct {
		ProfileID      uint
		UserID         uint
		CurrentRank    int
		TotalWeightage float64
		CertTotal      float64
	}

	var rows []profileTotal
	err := db.Model(&models.UserProfile{}).
		Select("user_profiles.id AS profile_id, user_profiles.user_id, user_profiles.current_rank, user_profiles.total_weightage, COALESCE(SUM(certificates.weightage), 0) AS cert_total").
		Joins("LEFT JOIN certificates ON certificates.user_id = user_profiles.user_id AND certificates.is_deleted = false AND certificates.deleted_at IS NULL").
		Where("user_profiles.deleted_at IS NULL").
		Group("user_profiles.id, user_profiles.user_id, user_profiles.current_rank, user_profiles.total_weightage").
		Order("cert_total DESC, user_profiles.user_id ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	attempted := 0
	failures := 0
	var lastErr error

	for i, row := range rows {
		rank := i + 1

		updates := map[string]interface{}{}
		if row.TotalWeightage != row.CertTotal {
			updates["total_weightage"] = row.CertTotal
		}
		if row.CurrentRank != rank {
			updates["current_rank"] = rank
		}
		if len(updates) == 0 {
			continue
		}

		attempted++
		if err := db.Model(&models.UserProfile{}).
			Where("id = ?", row.ProfileID).
			Updates(updates).Error; err != nil {
			log.Printf("Failed to update rank for profile %d: %v", row.ProfileID, err)
			failures++
			lastErr = err
		}
	}

	// One bad row should not block ranking for everyone else, but a store
	// that rejects the whole batch must be surfaced
	if attempted > 0 && failures == attempted {
		return fmt.Errorf("rank recompute failed for all %d profiles: %w", attempted, lastErr)
	}
	return nil
}

// SnapshotRanks appends one RankHistory row per user for the given month
// (normalized to its first day). Existing snapshots are left untouched, so
// re-running within the same month is safe.
func SnapshotRanks(db *gorm.DB, month time.Time) error {
	month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())

	var profiles []models.UserProfile
	if err := db.Find(&profiles).Error; err != nil {
		return err
	}

	for _, profile := range profiles {
		entry := models.RankHistory{UserID: profile.UserID, Month: month}
		if err := db.Where(models.RankHistory{UserID: profile.UserID, Month: month}).
			Attrs(models.RankHistory{Rank: profile.CurrentRank}).
			FirstOrCreate(&entry).Error; err != nil {
			log.Printf("Failed to snapshot rank for user %d: %v", profile.UserID, err)
		}
	}
	return nil
}
