package authController

import (
	"certvault/config"
	"certvault/database"
	"certvault/middleware"
	"certvault/models"
	"certvault/utils"
	"certvault/verification"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Prepare User Struct for DB Entry
	newUser := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     reqData.Email,
		Password:  string(hashedPassword),
	}

	// Create User with its profile in one transaction
	var profile models.UserProfile
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		profile = models.UserProfile{UserID: newUser.ID, JoinDate: time.Now()}
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	// Ranks include the new user from the start
	if err := verification.RecomputeRanks(db); err != nil {
		log.Printf("Rank recompute after signup failed: %v", err)
	}
	db.First(&profile, profile.ID)

	token, err := middleware.GenerateJWT(newUser.ID, newUser.FullName(), newUser.Role, newUser.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.FullName())

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token":   token,
		"user":    newUser,
		"profile": profile,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Record the login
	tracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := db.Create(&tracking).Error; err != nil {
		log.Printf("Failed to record login for user %d: %v", user.ID, err)
	}

	// Refresh ranks so the dashboard shown after login is current
	if err := verification.RecomputeRanks(db); err != nil {
		log.Printf("Rank recompute after login failed: %v", err)
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		log.Printf("Profile missing for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token":   token,
		"user":    user,
		"profile": profile,
	})
}

// Logout acknowledges the logout. Tokens are stateless JWTs, so the client
// discards its copy; nothing is stored server side.
func Logout(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logout successful.", nil)
}

// LoginHistoryList returns recent logins for the current user
func LoginHistoryList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var history []models.LoginTracking
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("timestamp desc").
		Limit(20).
		Find(&history).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully.", history)
}

// ForgotPasswordSendOTP emails a reset code to the given address
func ForgotPasswordSendOTP(c *fiber.Ctx) error {
	email, ok := c.Locals("validatedEmail").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", email).First(&user).Error; err != nil {
		// Do not reveal whether the address exists
		return middleware.JsonResponse(c, fiber.StatusOK, true, "If the email is registered, a code has been sent.", nil)
	}

	code := utils.GenerateOTP()
	otp := models.OTP{
		UserID:      user.ID,
		Email:       email,
		Code:        code,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
		Description: "password-reset",
	}
	if err := db.Create(&otp).Error; err != nil {
		log.Printf("Failed to store OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	utils.SendOTPEmail(email, code)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If the email is registered, a code has been sent.", nil)
}

// ForgotPasswordVerifyOTP checks the code and returns a token usable for
// the password reset call
func ForgotPasswordVerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOTP").(*struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var otp models.OTP
	err := db.Where("email = ? AND code = ? AND is_used = false AND is_deleted = false AND expires_at > ?",
		reqData.Email, reqData.Code, time.Now()).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired OTP!", nil)
	}

	if err := db.Model(&otp).Update("is_used", true).Error; err != nil {
		log.Printf("Failed to mark OTP used: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	var user models.User
	if err := db.First(&user, otp.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", fiber.Map{"token": token})
}

// ResetPassword sets a new password for the authenticated user
func ResetPassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	password, ok := c.Locals("validatedPassword").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	if err := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", userID).
		Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
