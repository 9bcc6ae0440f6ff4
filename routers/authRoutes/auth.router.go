package authRoutes

import (
	authControllers "certvault/controllers/auth"
	"certvault/middleware"
	authValidators "certvault/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authControllers.LoginHistoryList)
	authGroup.Post("/forgot/password/send/otp", authValidators.SendOTP(), authControllers.ForgotPasswordSendOTP)
	authGroup.Patch("/forgot/password/verify/otp", authValidators.VerifyOTP(), authControllers.ForgotPasswordVerifyOTP)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), middleware.JWTMiddleware, authControllers.ResetPassword)
}
