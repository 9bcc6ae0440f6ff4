package certificateController

import (
	"certvault/config"
	"certvault/database"
	"certvault/middleware"
	"certvault/models"
	"certvault/utils"
	"encoding/json"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// AttestCertificate anchors the certificate's content hash on chain through
// the configured gateway and marks the certificate verified
func AttestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	if config.AppConfig.ChainGatewayURL == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Blockchain attestation is not configured!", nil)
	}

	db := database.Database.Db

	var cert models.Certificate
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false", certID, userID).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if cert.Status != models.CertStatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending certificates can be attested!", nil)
	}

	// One attestation per certificate
	var existing models.BlockchainVerification
	if err := db.Where("certificate_id = ?", cert.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate is already attested!", fiber.Map{
			"attestation": existing,
		})
	}

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.ChainGatewayKey).
		SetBody(map[string]string{
			"document_hash": cert.FileHash,
			"network":       config.AppConfig.ChainNetwork,
		}).
		Post(config.AppConfig.ChainGatewayURL + "/attestations")
	if err != nil {
		log.Printf("Attestation gateway call failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reach attestation gateway!", nil)
	}
	if resp.StatusCode() != fiber.StatusOK && resp.StatusCode() != fiber.StatusCreated {
		log.Printf("Attestation gateway returned %d: %s", resp.StatusCode(), resp.String())
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Attestation failed!", nil)
	}

	var gatewayResp struct {
		TransactionHash string `json:"transaction_hash"`
	}
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil || gatewayResp.TransactionHash == "" {
		log.Printf("Invalid attestation gateway response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Invalid attestation response!", nil)
	}

	now := time.Now()
	attestation := models.BlockchainVerification{
		CertificateID:     cert.ID,
		TransactionHash:   gatewayResp.TransactionHash,
		BlockchainNetwork: config.AppConfig.ChainNetwork,
		VerifiedAt:        now,
		Verified:          true,
	}

	if err := db.Create(&attestation).Error; err != nil {
		log.Printf("Failed to store attestation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attestation!", nil)
	}

	if err := db.Model(&cert).Updates(map[string]interface{}{
		"status":            models.CertStatusVerified,
		"verification_date": &now,
	}).Error; err != nil {
		log.Printf("Failed to mark certificate verified: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}

	notifyVerified(&cert)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate attested successfully.", fiber.Map{
		"attestation": attestation,
	})
}

// notifyVerified emails the owner that their certificate left pending state
func notifyVerified(cert *models.Certificate) {
	var owner models.User
	if err := database.Database.Db.First(&owner, cert.UserID).Error; err != nil {
		log.Printf("Could not load owner for certificate %d: %v", cert.ID, err)
		return
	}
	utils.SendCertificateVerifiedEmail(owner.Email, owner.FullName(), cert.Name, cert.Weightage)
}
