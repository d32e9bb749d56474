package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // restores the original value on cleanup
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "STORE_DRIVER", "APP_ENV", "PORT", "SQLITE_PATH", "MEDIA_DRIVER")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "harvestx.db", cfg.SQLitePath)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Normalizes(t *testing.T) {
	unsetenv(t, "MEDIA_DRIVER")
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("APP_ENV", "Local")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.True(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{AppEnv: "production", StoreDriver: StoreMemory}, false},
		{"bad env", Config{AppEnv: "qa", StoreDriver: StoreMemory}, true},
		{"unknown store", Config{AppEnv: "production", StoreDriver: "redis"}, true},
		{"mysql missing host", Config{AppEnv: "production", StoreDriver: StoreMySQL, DBUser: "u", DBName: "d"}, true},
		{"mysql via cloud sql", Config{AppEnv: "production", StoreDriver: StoreMySQL, DBUser: "u", DBName: "d", InstanceConnectionName: "p:r:i"}, false},
		{"postgres needs url", Config{AppEnv: "production", StoreDriver: StorePostgres}, true},
		{"postgres", Config{AppEnv: "production", StoreDriver: StorePostgres, DatabaseURL: "postgres://localhost/harvestx"}, false},
		{"media needs bucket", Config{AppEnv: "production", StoreDriver: StoreMemory, MediaDriver: MediaS3}, true},
		{"media", Config{AppEnv: "production", StoreDriver: StoreMemory, MediaDriver: MediaGCS, StorageBucket: "b"}, false},
		{"unknown media", Config{AppEnv: "production", StoreDriver: StoreMemory, MediaDriver: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
