package certificateValidator

import (
	"certvault/middleware"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Upload validator middleware. Field-level checks (issuer/course present,
// duplicates) belong to the verification pipeline so rejections come back in
// a fixed order; this only guards the file itself.
func Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("certificate_file")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate file is required!", nil)
		}

		errors := make(map[string]string)

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			errors["certificate_file"] = "Only PDF, PNG and JPEG files are accepted!"
		}

		// 10 MB cap
		if file.Size > 10*1024*1024 {
			errors["certificate_file"] = "File must be smaller than 10 MB!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateStatus validator middleware for the admin override
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != "verified" && reqData.Status != "failed" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be either 'verified' or 'failed'!",
			})
		}

		c.Locals("validatedStatus", reqData.Status)
		return c.Next()
	}
}
