package utils

import (
	"os"
)

// Config carries every environment-read setting. All of it is resolved once
// at process start; a missing MongoURI puts the server into a degraded mode
// where persistence-dependent routes answer 503 instead of crashing.
type Config struct {
	AppEnv        string
	Port          string
	BaseURL       string
	MongoURI      string
	SessionSecret string
	JWTSecret     string
	PostmarkToken string
	EmailSender   string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// LoadConfig reads configuration from the environment.
func LoadConfig() Config {
	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		Port:          getEnv("PORT", "8000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8000"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-jwt-secret"),
		PostmarkToken: os.Getenv("POSTMARK_API_TOKEN"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8000/auth/google/callback"),
	}
}

// IsDev reports whether the process runs outside production; the session
// cookie's Secure flag follows this.
func (c Config) IsDev() bool {
	return c.AppEnv != "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
