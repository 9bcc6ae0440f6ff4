package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Certificate verification
	MatchThreshold int    // fuzzy-match cutoff (0-100) for OCR verification
	TesseractLang  string // language model passed to tesseract

	// File storage
	StorageDriver string // "local" or "s3"
	UploadDir     string
	S3Bucket      string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string

	// Blockchain attestation gateway
	ChainGatewayURL string
	ChainGatewayKey string
	ChainNetwork    string

	EmailSender string
	Password    string // SMTP Password

	RedisAddr     string
	RedisPassword string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		MatchThreshold: getEnvInt("MATCH_THRESHOLD", 70),
		TesseractLang:  getEnv("TESSERACT_LANG", "eng"),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads/certificates"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "auto"),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),

		ChainGatewayURL: getEnv("CHAIN_GATEWAY_URL", ""),
		ChainGatewayKey: getEnv("CHAIN_GATEWAY_KEY", ""),
		ChainNetwork:    getEnv("CHAIN_NETWORK", "polygon-amoy"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MatchThreshold < 0 || AppConfig.MatchThreshold > 100 {
		log.Printf("Warning: MATCH_THRESHOLD %d is out of range, falling back to 70.", AppConfig.MatchThreshold)
		AppConfig.MatchThreshold = 70
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
