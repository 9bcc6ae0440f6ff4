package dashboardRoutes

import (
	dashboardControllers "certvault/controllers/dashboard"
	"certvault/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", middleware.JWTMiddleware, dashboardControllers.Dashboard)
	app.Get("/profile", middleware.JWTMiddleware, dashboardControllers.Profile)
	app.Get("/leaderboard", middleware.JWTMiddleware, dashboardControllers.Leaderboard)
}
