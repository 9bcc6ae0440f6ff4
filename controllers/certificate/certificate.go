package certificateController

import (
	"certvault/database"
	"certvault/middleware"
	"certvault/models"
	"certvault/storage"
	"certvault/verification"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pipeline and Store are wired once at startup from main
var (
	Pipeline *verification.Pipeline
	Store    storage.Storage
)

// Init wires the verification pipeline and the file store into this package
func Init(pipeline *verification.Pipeline, store storage.Storage) {
	Pipeline = pipeline
	Store = store
}

// UploadCertificate runs one upload through the verification pipeline
func UploadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	fileHeader, err := c.FormFile("certificate_file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate file is required!", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read uploaded file!", nil)
	}
	fileBytes, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read uploaded file!", nil)
	}

	name := c.FormValue("name", fileHeader.Filename)
	issuer := c.FormValue("issuer")
	course := c.FormValue("course_name")
	domain := c.FormValue("domain")

	// Store the file first; the stored key goes on the certificate row.
	// An orphaned blob from a rejected upload is harmless.
	contentType := fileHeader.Header.Get("Content-Type")
	storedKey, err := Store.Save(c.Context(), fileHeader.Filename, fileBytes, contentType)
	if err != nil {
		log.Printf("Failed to store uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An unexpected error occurred!", nil)
	}

	accepted, err := Pipeline.Submit(&user, name, issuer, course, domain, fileBytes, storedKey)
	if err != nil {
		if verification.IsRejection(err) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		log.Printf("Certificate upload failed for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An unexpected error occurred!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate uploaded and verified successfully.", fiber.Map{
		"certificate": fiber.Map{
			"id":        accepted.Certificate.ID,
			"name":      accepted.Certificate.Name,
			"issuer":    accepted.Certificate.Issuer,
			"course":    accepted.Course,
			"weightage": accepted.Weightage,
			"status":    accepted.Certificate.Status,
		},
	})
}

// ListCertificates returns the current user's certificates with optional
// search/domain/status filters
func ListCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	query := db.Where("user_id = ? AND is_deleted = false", userID)
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if domain := c.Query("domain"); domain != "" {
		query = query.Where("domain = ?", domain)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var certificates []models.Certificate
	if err := query.Order("upload_date desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type certificateWithURL struct {
		models.Certificate
		FileURL string `json:"file_url"`
	}

	result := make([]certificateWithURL, len(certificates))
	for i, cert := range certificates {
		url, err := Store.URL(c.Context(), cert.FilePath)
		if err != nil {
			url = ""
		}
		result[i] = certificateWithURL{Certificate: cert, FileURL: url}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully.", fiber.Map{
		"certificates": result,
	})
}

// GetCertificate returns one certificate owned by the current user
func GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	var cert models.Certificate
	if err := database.Database.Db.
		Where("id = ? AND user_id = ? AND is_deleted = false", certID, userID).
		First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	url, err := Store.URL(c.Context(), cert.FilePath)
	if err != nil {
		url = ""
	}

	var attestation models.BlockchainVerification
	hasAttestation := database.Database.Db.
		Where("certificate_id = ?", cert.ID).
		First(&attestation).Error == nil

	data := fiber.Map{"certificate": cert, "file_url": url}
	if hasAttestation {
		data["attestation"] = attestation
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully.", data)
}

// UpdateStatus is the admin override moving a certificate out of pending
func UpdateStatus(c *fiber.Ctx) error {
	status, ok := c.Locals("validatedStatus").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	certID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	db := database.Database.Db

	var cert models.Certificate
	if err := db.Where("id = ? AND is_deleted = false", certID).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if cert.Status != models.CertStatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending certificates can be updated!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            status,
		"verification_date": &now,
	}
	if err := db.Model(&cert).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}

	if status == models.CertStatusVerified {
		notifyVerified(&cert)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate status updated successfully.", cert)
}
