package middleware

import (
	"certvault/database"
	"certvault/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that checks if the user has the required role
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get user ID from context (set by the auth middleware)
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: User ID not found",
				"data":    nil,
			})
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = false",
			userID, requiredRole).First(&user).Error

		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"status":  false,
					"message": "You do not have permission to access this resource!",
					"data":    nil,
				})
			}
			// Other DB error
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  false,
				"message": "Server error while checking permissions!",
				"data":    nil,
			})
		}

		// Role matches, proceed
		return c.Next()
	}
}
