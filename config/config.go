package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // SQLite file path, or "memory" for an in-memory database
	}
	Storage struct {
		Dir           string // Directory holding uploaded PDF reports
		PublicBaseURL string `mapstructure:"public_base_url"` // URL prefix uploaded files are served under
	}
	Admin struct {
		Username string // Fixed username the credential row is keyed by
	}
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
// The database DSN and the storage directory are mandatory: the
// application refuses to start without them.
func LoadConfig() {
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config") // Path to look for the config file in
	viper.AddConfigPath(".")        // Optionally look for config in the working directory
	viper.AddConfigPath("../config") // For running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("storage.public_base_url", "/uploads")
	viper.SetDefault("admin.username", "admin")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}
	if dir := os.Getenv("STORAGE_DIR"); dir != "" {
		AppConfig.Storage.Dir = dir
		log.Printf("INFO: [Config] Storage directory overridden by environment variable STORAGE_DIR: %s", dir)
	}

	// The content store endpoint and the upload location have no sane
	// fallback. Refuse to initialize without them.
	if AppConfig.Database.DSN == "" {
		log.Fatalf("FATAL: [Config] database.dsn is not set. Provide it in config.yaml or via DATABASE_DSN.")
	}
	if AppConfig.Storage.Dir == "" {
		log.Fatalf("FATAL: [Config] storage.dir is not set. Provide it in config.yaml or via STORAGE_DIR.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
