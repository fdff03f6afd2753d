package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	RedisAddr     string
	AMQPURL       string
	SMTPHost      string
	SMTPPort      string
	SMTPFrom      string
	SMTPPassword  string
	EnquiryInbox  string
	LogFile       string
	AllowedOrigin string

	// Gateway only.
	GatewayAddr string
	APIURL      string
}

// Load reads .env if present and assembles the configuration from the
// environment. JWT_SECRET has no default; tokens must never be signed with
// a baked-in key.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getenv("ADDR", ":8080"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "marketplace"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		AMQPURL:       os.Getenv("AMQP_URL"),
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		EnquiryInbox:  os.Getenv("ENQUIRY_INBOX"),
		LogFile:       getenv("LOG_FILE", "logs/marketplace.log"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "*"),
		GatewayAddr:   getenv("GATEWAY_ADDR", ":8000"),
		APIURL:        getenv("API_URL", "http://localhost:8080"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
