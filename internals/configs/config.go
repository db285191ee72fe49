package configs

import (
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret  string
	MailHost   string
	MailPort   string
	MailUser   string
	MailPass   string
	MailFrom   string
	UploadsDir string
)

// LoadEnv reads .env when present and resolves the settings the app needs.
// On a managed platform the env is injected, so a missing .env is fine.
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			Log.Warn("no .env file found, using system ENV")
		} else {
			Log.Info(".env file loaded")
		}
	} else {
		Log.Info("running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	MailHost = GetEnv("MAIL_HOST", "sandbox.smtp.mailtrap.io")
	MailPort = GetEnv("MAIL_PORT", "2525")
	MailUser = GetEnv("MAIL_USER")
	MailPass = GetEnv("MAIL_PASS")
	MailFrom = GetEnv("MAIL_FROM", "Syndic <syndic@property.com>")
	UploadsDir = GetEnv("UPLOADS_DIR", "./uploads/pdfs")

	if JWTSecret == "" {
		Log.Error("JWT_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
