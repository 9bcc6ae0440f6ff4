package dashboardController

import (
	"certvault/database"
	"certvault/middleware"
	"certvault/models"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

const leaderboardCacheKey = "leaderboard:top50"
const leaderboardCacheTTL = 30 * time.Second

// Dashboard returns the current user's aggregate stats, recent uploads and
// per-domain progress
func Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	var totalCertificates int64
	if err := db.Model(&models.Certificate{}).
		Where("user_id = ? AND is_deleted = false", userID).
		Count(&totalCertificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	var recent []models.Certificate
	if err := db.Select("id", "name", "status", "upload_date").
		Where("user_id = ? AND is_deleted = false", userID).
		Order("upload_date desc").
		Limit(5).
		Find(&recent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	var domains []models.Domain
	if err := db.Where("user_id = ?", userID).Find(&domains).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", fiber.Map{
		"stats": fiber.Map{
			"total_weightage":    profile.TotalWeightage,
			"total_certificates": totalCertificates,
			"current_rank":       profile.CurrentRank,
		},
		"recent_certificates": recent,
		"domain_progress":     domains,
	})
}

// Profile returns the user's profile, domain rollups and rank history
func Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	var domains []models.Domain
	if err := db.Where("user_id = ?", userID).Find(&domains).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	var rankHistory []models.RankHistory
	if err := db.Where("user_id = ?", userID).Order("month asc").Find(&rankHistory).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", fiber.Map{
		"user":         user,
		"profile":      profile,
		"domains":      domains,
		"rank_history": rankHistory,
	})
}

// leaderboardEntry is one row of the public leaderboard
type leaderboardEntry struct {
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	TotalWeightage   float64 `json:"total_weightage"`
	CertificateCount int64   `json:"certificate_count"`
	CurrentRank      int     `json:"current_rank"`
}

// Leaderboard returns the top 50 users by weightage, cached briefly in
// redis when available
func Leaderboard(c *fiber.Ctx) error {
	// Serve from cache when possible
	if database.Redis != nil {
		cached, err := database.Redis.Get(database.Ctx, leaderboardCacheKey).Result()
		if err == nil && cached != "" {
			var entries []leaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully.", fiber.Map{
					"leaderboard": entries,
				})
			}
		}
	}

	db := database.Database.Db

	var rows []struct {
		Email            string
		FirstName        string
		LastName         string
		TotalWeightage   float64
		CertificateCount int64
	}
	err := db.Model(&models.UserProfile{}).
		Select("users.email, users.first_name, users.last_name, user_profiles.total_weightage, COUNT(certificates.id) AS certificate_count").
		Joins("JOIN users ON users.id = user_profiles.user_id AND users.is_deleted = false AND users.deleted_at IS NULL").
		Joins("LEFT JOIN certificates ON certificates.user_id = user_profiles.user_id AND certificates.is_deleted = false AND certificates.deleted_at IS NULL").
		Group("users.id, users.email, users.first_name, users.last_name, user_profiles.total_weightage").
		Order("user_profiles.total_weightage DESC, users.id ASC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	entries := make([]leaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = leaderboardEntry{
			Email:            row.Email,
			Name:             row.FirstName + " " + row.LastName,
			TotalWeightage:   row.TotalWeightage,
			CertificateCount: row.CertificateCount,
			CurrentRank:      i + 1,
		}
	}

	// Refresh the cache, best effort
	if database.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := database.Redis.Set(database.Ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache leaderboard: %v", err)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully.", fiber.Map{
		"leaderboard": entries,
	})
}
