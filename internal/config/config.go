package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                   string
	MongoURI               string
	MongoDatabase          string
	FormCollection         string
	SubmissionCollection   string
	FailedMirrorCollection string
	Timeout                time.Duration
	ServerLog              *log.Logger
	JWTConfigs             []JWTConfig
	JWTAudience            string
	AllowedOrigins         []string
	PublicBaseURL          string
	SpreadsheetID          string
	DriveFolderID          string
	GoogleCredentialsJSON  []byte
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})

	publicBaseURL := strings.TrimRight(envOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"), "/")

	spreadsheetID := strings.TrimSpace(os.Getenv("MASTER_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		log.Fatal("MASTER_SPREADSHEET_ID must be configured")
	}
	driveFolderID := strings.TrimSpace(os.Getenv("DRIVE_FOLDER_ID"))
	if driveFolderID == "" {
		log.Fatal("DRIVE_FOLDER_ID must be configured")
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "smartform-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_LEGACY_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_LEGACY_JWT_ISSUER", "smartform-legacy-auth"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set AUTH_JWT_SECRET.")
	}

	jwtAudience := strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE"))

	cfg := Config{
		Addr:                   envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:               envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:          envOrDefault("MONGO_DB", "smartform"),
		FormCollection:         envOrDefault("FORM_COLLECTION", "forms"),
		SubmissionCollection:   envOrDefault("SUBMISSION_COLLECTION", "submissions"),
		FailedMirrorCollection: envOrDefault("FAILED_MIRROR_COLLECTION", "failed_mirrors"),
		Timeout:                timeout,
		ServerLog:              log.New(os.Stdout, "[smartform-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:             jwtConfigs,
		JWTAudience:            jwtAudience,
		AllowedOrigins:         allowedOrigins,
		PublicBaseURL:          publicBaseURL,
		SpreadsheetID:          spreadsheetID,
		DriveFolderID:          driveFolderID,
		GoogleCredentialsJSON:  loadGoogleCredentials(),
	}

	cfg.ServerLog.Printf("loaded config: publicBaseURL=%q spreadsheetId=%q driveFolderId=%q", publicBaseURL, spreadsheetID, driveFolderID)

	return cfg
}

// loadGoogleCredentials accepts either the service account JSON inline or a
// path to the key file, which is how the credential is mounted in containers.
func loadGoogleCredentials() []byte {
	if raw := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); raw != "" {
		return []byte(raw)
	}
	path := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if path == "" {
		log.Fatal("Google credentials not configured. Set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE.")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read Google credentials from %s: %v", path, err)
	}
	return data
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
