package certificateRoutes

import (
	certificateControllers "certvault/controllers/certificate"
	"certvault/middleware"
	certificateValidators "certvault/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates", middleware.JWTMiddleware)

	certGroup.Post("/upload", certificateValidators.Upload(), certificateControllers.UploadCertificate)
	certGroup.Get("/", certificateControllers.ListCertificates)
	certGroup.Get("/:id", certificateControllers.GetCertificate)
	certGroup.Post("/:id/attest", certificateControllers.AttestCertificate)
	certGroup.Patch("/:id/status", certificateValidators.UpdateStatus(), middleware.RequireRole("ADMIN"), certificateControllers.UpdateStatus)
}
