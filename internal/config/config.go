package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"

	MediaGCS = "gcs"
	MediaS3  = "s3"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	DBUser                 string `env:"DB_USER"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBHost                 string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`
	DatabaseURL            string `env:"DATABASE_URL"`
	SQLitePath             string `env:"SQLITE_PATH" envDefault:"harvestx.db"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	AuthInsecureDev         bool   `env:"AUTH_INSECURE_DEV" envDefault:"false"`

	MediaDriver       string `env:"MEDIA_DRIVER"`
	StorageBucket     string `env:"STORAGE_BUCKET"`
	S3Region          string `env:"S3_REGION"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3PathStyle       bool   `env:"S3_PATH_STYLE" envDefault:"false"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	GitSHA    string `env:"GIT_SHA"`
	BuildTime string `env:"BUILD_TIME"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.MediaDriver = strings.ToLower(strings.TrimSpace(cfg.MediaDriver))
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected drivers have what they need to start.
func (c *Config) Validate() error {
	switch c.AppEnv {
	case "production", "staging", "development", "local":
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.AppEnv)
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case StoreMySQL:
		if c.DBUser == "" || c.DBName == "" || (c.DBHost == "" && c.InstanceConnectionName == "") {
			return fmt.Errorf("DB_USER, DB_NAME and DB_HOST (or INSTANCE_CONNECTION_NAME) are required for the mysql store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.MediaDriver {
	case "":
	case MediaGCS, MediaS3:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for MEDIA_DRIVER=%s", c.MediaDriver)
		}
	default:
		return fmt.Errorf("unknown MEDIA_DRIVER %q", c.MediaDriver)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "local"
}
