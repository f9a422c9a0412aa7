package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Token    TokenConfig
	Gateway  GatewayConfig
	AMQP     AMQPConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the connection string; a postgres:// DSN selects
// PostgreSQL, anything else is treated as a sqlite file path.
type DatabaseConfig struct {
	DSN string
}

// JWTConfig holds bearer-token signing settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenConfig holds the reference-token encryption key. The key is handed to
// the payment gateway inside every transaction reference, so it must come from
// the environment, never from source.
type TokenConfig struct {
	Secret string
}

// GatewayConfig holds the payment gateway (VNPay) merchant settings.
type GatewayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	LandingURL string
	OrderType  string
}

// AMQPConfig holds the optional notification broker settings. An empty URL
// disables the publisher and notifications are only logged and persisted.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtHours, _ := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_URL", "petcare.db"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    time.Duration(jwtHours) * time.Hour,
		},
		Token: TokenConfig{
			Secret: os.Getenv("TOKEN_SECRET"),
		},
		Gateway: GatewayConfig{
			TmnCode:    os.Getenv("VNPAY_TMN_CODE"),
			HashSecret: os.Getenv("VNPAY_HASH_SECRET"),
			BaseURL:    getEnv("VNPAY_BASE_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL:  getEnv("VNPAY_RETURN_URL", "http://localhost:8080/api/v1/payments/callback"),
			LandingURL: getEnv("VNPAY_LANDING_URL", "http://localhost:3000/payment/result"),
			OrderType:  getEnv("VNPAY_ORDER_TYPE", "other"),
		},
		AMQP: AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getEnv("AMQP_EXCHANGE", "petcare.events"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.Token.Secret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is empty")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
