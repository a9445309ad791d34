package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	JWTSecret         string
	AccessTokenMaxAge int

	UploadDir      string
	MaxUploadSize  int64
	StorageBackend string // "local" or "s3"

	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string

	GithubUsername string
	GithubToken    string
	GithubPinned   []string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// defaultPinned is the showcase repository list used when
// GITHUB_PINNED_REPOS is not set.
var defaultPinned = []string{
	"Biblioteca",
	"Spectra",
	"Site-com-bootstrap",
	"Sistema-Solar",
	"Exercicios-JS",
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 86400
	}

	maxUploadSize, err := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if err != nil || maxUploadSize <= 0 {
		maxUploadSize = 16 * 1024 * 1024
	}

	pinned := defaultPinned
	if raw := os.Getenv("GITHUB_PINNED_REPOS"); raw != "" {
		pinned = nil
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				pinned = append(pinned, name)
			}
		}
	}

	return &Config{
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOr("DB_NAME", "portfolio"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),

		ServerPort: envOr("SERVER_PORT", "8080"),

		JWTSecret:         envOr("JWT_SECRET", "dev-secret-change-in-production"),
		AccessTokenMaxAge: accessTokenMaxAge,

		UploadDir:      envOr("UPLOAD_DIR", "uploads"),
		MaxUploadSize:  maxUploadSize,
		StorageBackend: envOr("STORAGE_BACKEND", "local"),

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Region:          envOr("S3_REGION", "auto"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),

		GithubUsername: envOr("GITHUB_USERNAME", "EdGomes234"),
		GithubToken:    os.Getenv("GITHUB_TOKEN"),
		GithubPinned:   pinned,

		AdminUsername: envOr("ADMIN_USERNAME", "edgar"),
		AdminEmail:    envOr("ADMIN_EMAIL", "edgar@portfolio.com"),
		AdminPassword: envOr("ADMIN_PASSWORD", "admin123"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
