package utils

import (
	"certvault/database"
	"certvault/verification"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[RANK-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// recomputeAllRanks runs the full rank recompute as a safety net for any
// trigger that was missed or failed during the day
func recomputeAllRanks() {
	logScheduler("Starting nightly rank recompute")
	if err := verification.RecomputeRanks(database.Database.Db); err != nil {
		logScheduler("Nightly rank recompute failed: " + err.Error())
		return
	}
	logScheduler("Nightly rank recompute completed")
}

// snapshotMonthlyRanks appends this month's RankHistory rows. Runs on the
// 1st; re-runs are no-ops because snapshots are unique per user and month.
func snapshotMonthlyRanks() {
	month := now.BeginningOfMonth()
	logScheduler("Recording rank history for " + month.Format("2006-01"))
	if err := verification.SnapshotRanks(database.Database.Db, month); err != nil {
		logScheduler("Rank history snapshot failed: " + err.Error())
		return
	}
	logScheduler("Rank history snapshot completed")
}

// StartRankScheduler starts the cron jobs for rank maintenance
func StartRankScheduler() {
	c := cron.New()

	// Nightly full recompute at 02:30
	if _, err := c.AddFunc("30 2 * * *", recomputeAllRanks); err != nil {
		log.Fatalf("Failed to schedule nightly rank recompute: %v", err)
	}

	// Monthly rank history snapshot on the 1st at 00:10
	if _, err := c.AddFunc("10 0 1 * *", snapshotMonthlyRanks); err != nil {
		log.Fatalf("Failed to schedule monthly rank snapshot: %v", err)
	}

	c.Start()
	logScheduler("Rank scheduler started")
}
