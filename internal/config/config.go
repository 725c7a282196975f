package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Gateway holds payment gateway credentials and tuning.
type Gateway struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Timeout       time.Duration
}

// LoadGateway reads gateway settings from the environment. The webhook
// secret is mandatory in production so callbacks can never be accepted
// unsigned.
func LoadGateway() Gateway {
	gw := Gateway{
		KeyID:         GetEnv("RAZORPAY_KEY_ID", ""),
		KeySecret:     GetEnv("RAZORPAY_KEY_SECRET", ""),
		WebhookSecret: GetEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		Timeout:       time.Duration(GetIntEnv("GATEWAY_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if IsProduction() && gw.WebhookSecret == "" {
		log.Fatal("RAZORPAY_WEBHOOK_SECRET must be set in production")
	}
	return gw
}

// UseMemoryGateway reports whether the in-memory gateway stub should be
// used instead of live Razorpay (local development and tests).
func UseMemoryGateway() bool {
	return GetEnv("GATEWAY_DRIVER", "razorpay") == "memory"
}
