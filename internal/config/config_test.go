package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "MONGO_URI", "REDIS_ADDR", "KAFKA_BROKERS", "REQUEST_TIMEOUT", "MAX_REQUEST_BODY_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Empty(t, cfg.MongoURI)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_ADDR=redis:6379\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("REDIS_ADDR", "")
	os.Unsetenv("REDIS_ADDR")

	require.True(t, LoadEnv())
	assert.Equal(t, "redis:6379", Load().RedisAddr)
}
