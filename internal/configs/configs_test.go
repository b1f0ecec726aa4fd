package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"STORAGE_PATH": "/tmp/journal"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr())
	assert.Equal(t, "http://localhost:4000/graphql", cfg.APIURL)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, "/tmp/journal", cfg.StoragePath)
	assert.Equal(t, 5*time.Second, cfg.RehydrateTimeout)
	assert.Equal(t, "persist:journal:v1", cfg.SnapshotKey())
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestFromEnv_SnapshotKeyFollowsVersion(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STORAGE_PATH":      "/tmp/journal",
		"PERSIST_NAMESPACE": "melog",
		"PERSIST_VERSION":   "3",
	}))
	require.NoError(t, err)
	assert.Equal(t, "persist:melog:v3", cfg.SnapshotKey())
}

func TestFromEnv_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":             {"PORT": "80"},
		"non numeric port":     {"PORT": "eighty"},
		"production needs api": {"ENVIRONMENT": "production", "STORAGE_PATH": "/tmp/j"},
		"bad version":          {"PERSIST_VERSION": "0", "STORAGE_PATH": "/tmp/j"},
		"unknown driver":       {"STORAGE_DRIVER": "floppy"},
		"redis needs url":      {"STORAGE_DRIVER": "redis"},
		"s3 needs bucket":      {"STORAGE_DRIVER": "s3", "S3_ENDPOINT": "http://minio"},
		"bad timeout":          {"REHYDRATE_TIMEOUT": "soon", "STORAGE_PATH": "/tmp/j"},
		"bad host":             {"HOST": "my laptop", "STORAGE_PATH": "/tmp/j"},
	}

	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(vars))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_Origins(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STORAGE_PATH":    "/tmp/j",
		"ALLOWED_ORIGINS": " http://a.test , ,http://b.test",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}
