package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no config.toml or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sitinfra-erp", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "sitinfra", cfg.Database.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "sitinfra.", cfg.Kafka.TopicPrefix)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, "sitinfra-erp", cfg.Telemetry.ServiceName)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.Schedule)
	assert.Equal(t, 30*24*time.Hour, cfg.Scheduler.LeadTime)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SITINFRA_APP_PORT", "9000")
	t.Setenv("SITINFRA_DATABASE_DRIVER", "sqlite")
	t.Setenv("SITINFRA_DATABASE_SQLITE_PATH", "/tmp/erp.db")
	t.Setenv("SITINFRA_JWT_EXPIRATION", "2h")
	t.Setenv("SITINFRA_DATABASE_MAX_OPEN_CONNS", "50")
	t.Setenv("SITINFRA_DATABASE_MAX_IDLE_CONNS", "10")
	t.Setenv("SITINFRA_SCHEDULER_ENABLED", "false")
	t.Setenv("SITINFRA_SCHEDULER_LEAD_TIME", "168h")
	t.Setenv("SITINFRA_HTTP_CORS_ALLOW_ORIGINS", "http://localhost:3000,https://erp.sitinfra.cm")
	t.Setenv("SITINFRA_JWT_SECRET", "env-only-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/erp.db", cfg.Database.SQLitePath)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 7*24*time.Hour, cfg.Scheduler.LeadTime)
	assert.Equal(t, []string{"http://localhost:3000", "https://erp.sitinfra.cm"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, "env-only-secret", cfg.JWT.Secret)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITINFRA_APP_NAME=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SITINFRA_APP_NAME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.App.Name)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := chdirTemp(t)
	toml := `
[app]
name = "toml-app"

[storage]
provider = "s3"
bucket = "erp-files"

[kafka]
enabled = true
brokers = ["kafka-1:9092", "kafka-2:9092"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "toml-app", cfg.App.Name)
	assert.Equal(t, "s3", cfg.Storage.Provider)
	assert.Equal(t, "erp-files", cfg.Storage.Bucket)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	chdirTemp(t)
	base := func() *Config {
		cfg, err := decode(newViper())
		require.NoError(t, err)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "mysql"
		assert.ErrorContains(t, cfg.validate(), "database.driver")
	})

	t.Run("idle exceeds open", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		assert.ErrorContains(t, cfg.validate(), "max_idle_conns")
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Provider = "s3"
		assert.ErrorContains(t, cfg.validate(), "storage.bucket")
	})

	t.Run("production requires strong secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "short"
		assert.ErrorContains(t, cfg.validate(), "jwt.secret")
	})

	t.Run("production requires database password and ssl", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		assert.ErrorContains(t, cfg.validate(), "database.password")

		cfg.Database.Password = "secret"
		assert.ErrorContains(t, cfg.validate(), "sslmode")

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})

	t.Run("all problems reported together", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "mysql"
		cfg.Storage.Provider = "ftp"
		err := cfg.validate()
		assert.ErrorContains(t, err, "database.driver")
		assert.ErrorContains(t, err, "storage.provider")
	})

	t.Run("sampling ratio range", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.ErrorContains(t, cfg.validate(), "sampling_ratio")
	})

	t.Run("negative lead time", func(t *testing.T) {
		cfg := base()
		cfg.Scheduler.LeadTime = -time.Hour
		assert.ErrorContains(t, cfg.validate(), "scheduler.lead_time")
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{User: "erp", Password: "p@ss word", Host: "db", Port: 5432, DBName: "sitinfra", SSLMode: "disable"}
	assert.Equal(t, "postgres://erp:p%40ss%20word@db:5432/sitinfra?sslmode=disable", d.DSN())
}
