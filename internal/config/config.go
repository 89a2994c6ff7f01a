package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleRefreshToken string

	RootFolderID        string
	ClientsFolderID     string
	TherapistsFolderID  string
	SupervisorsFolderID string

	OutputDir      string
	DrivePageSize  int
	DriveTimeoutMs int
	FileWorkers    int
	LogLevel       string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),

		RootFolderID:        getEnv("DRIVE_ROOT_FOLDER_ID", ""),
		ClientsFolderID:     getEnv("CLIENTS_FOLDER_ID", ""),
		TherapistsFolderID:  getEnv("THERAPISTS_FOLDER_ID", ""),
		SupervisorsFolderID: getEnv("SUPERVISORS_FOLDER_ID", ""),

		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		DrivePageSize:  getEnvInt("DRIVE_PAGE_SIZE", 100),
		DriveTimeoutMs: getEnvInt("DRIVE_TIMEOUT_MS", 30000),
		FileWorkers:    getEnvInt("FILE_WORKERS", 4),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
