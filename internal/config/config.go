package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by cmd/server.
const (
	StoreFirestore = "firestore"
	StoreMySQL     = "mysql"
	StoreMemory    = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	ServerPort  string
	SwaggerHost string

	StoreDriver string
	MySQLDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string
	JWTExpiry time.Duration

	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseAPIKey          string
	AuthActionURL           string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	S3Bucket     string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:      getEnv("APP_ENV", "production"),
		ServerPort:  getEnv("PORT", "3000"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		StoreDriver: getEnv("STORE_DRIVER", StoreFirestore),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/pharmacy?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseAPIKey:          os.Getenv("FIREBASE_API_KEY"),
		AuthActionURL:           getEnv("AUTH_ACTION_URL", "http://localhost:3000/auth/action"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@pharmadir.local"),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-3"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
