package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Together TogetherConfig
	Firebase FirebaseConfig
	Storage  StorageConfig
	Recorder RecorderConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type TogetherConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type FirebaseConfig struct {
	APIKey          string
	ProjectID       string
	CredentialsFile string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type RecorderConfig struct {
	Workers   int
	QueueSize int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "interview_prep"),
		},
		Together: TogetherConfig{
			APIKey:  getEnv("TOGETHER_API_KEY", ""),
			BaseURL: getEnv("TOGETHER_BASE_URL", "https://api.together.xyz/v1"),
			Model:   getEnv("TOGETHER_MODEL", "mistralai/Mixtral-8x7B-Instruct-v0.1"),
		},
		Firebase: FirebaseConfig{
			APIKey:          getEnv("FIREBASE_API_KEY", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "credentials/serviceAccountKey.json"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Recorder: RecorderConfig{
			Workers:   getEnvAsInt("RECORDER_WORKERS", 2),
			QueueSize: getEnvAsInt("RECORDER_QUEUE_SIZE", 100),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
