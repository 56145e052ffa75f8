package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (SITINFRA_DATABASE_PASSWORD)
const EnvPrefix = "SITINFRA"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig backs the token blacklist and the scheduler run claim
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + strconv.Itoa(r.Port)
}

// JWTConfig holds token settings. Tokens have a fixed lifetime and are not refreshed.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	Issuer     string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type HTTPConfig struct {
	ReadTimeout           time.Duration `mapstructure:"read_timeout"`
	WriteTimeout          time.Duration `mapstructure:"write_timeout"`
	IdleTimeout           time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes        int           `mapstructure:"max_header_bytes"`
	MaxBodySize           int64         `mapstructure:"max_body_size"`
	RateLimitEnabled      bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests     int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow       time.Duration `mapstructure:"rate_limit_window"`
	AuthRateLimitEnabled  bool          `mapstructure:"auth_rate_limit_enabled"`
	AuthRateLimitRequests int           `mapstructure:"auth_rate_limit_requests"`
	AuthRateLimitWindow   time.Duration `mapstructure:"auth_rate_limit_window"`
	CORSAllowOrigins      []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods      []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders      []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies        []string      `mapstructure:"trusted_proxies"`
}

type StorageConfig struct {
	Provider          string        `mapstructure:"provider"`        // local or s3
	LocalDir          string        `mapstructure:"local_dir"`       // root for stored keys; "uploads/..." keys are served at /uploads
	PublicBaseURL     string        `mapstructure:"public_base_url"` // prefix for local download URLs
	Endpoint          string        `mapstructure:"endpoint"`
	Region            string        `mapstructure:"region"`
	Bucket            string        `mapstructure:"bucket"`
	AccessKey         string        `mapstructure:"access_key"`
	SecretKey         string        `mapstructure:"secret_key"`
	UseSSL            bool          `mapstructure:"use_ssl"`
	UsePathStyle      bool          `mapstructure:"use_path_style"`
	PresignExpiration time.Duration `mapstructure:"presign_expiration"`
}

type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	TopicPrefix  string        `mapstructure:"topic_prefix"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`
	ServiceName       string  `mapstructure:"service_name"` // defaults to app.name
	Insecure          bool    `mapstructure:"insecure"`
	DBTraceEnabled    bool    `mapstructure:"db_trace_enabled"`
}

// SchedulerConfig holds the daily expiry scan settings
type SchedulerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Schedule      string        `mapstructure:"schedule"` // "minute hour * * *"
	CheckInterval time.Duration `mapstructure:"check_interval"`
	LeadTime      time.Duration `mapstructure:"lead_time"` // how far ahead deadlines raise alerts
	RunOnStart    bool          `mapstructure:"run_on_start"`
	Workers       int           `mapstructure:"workers"`
	JobTimeout    time.Duration `mapstructure:"job_timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// Every key needs an entry here, even a zero one, or viper will not look it
// up in the environment when unmarshalling.
var defaults = map[string]any{
	"app.name": "sitinfra-erp",
	"app.env":  "development",
	"app.port": "8080",

	"database.driver":             DriverPostgres,
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "sitinfra",
	"database.sslmode":            "disable",
	"database.sqlite_path":        "sitinfra.db",
	"database.auto_migrate":       false,
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  time.Hour,
	"database.conn_max_idle_time": 30 * time.Minute,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":     "",
	"jwt.expiration": 24 * time.Hour,
	"jwt.issuer":     "sitinfra-erp",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":             15 * time.Second,
	"http.write_timeout":            30 * time.Second,
	"http.idle_timeout":             60 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            20 << 20,
	"http.rate_limit_enabled":       false,
	"http.rate_limit_requests":      100,
	"http.rate_limit_window":        time.Minute,
	"http.auth_rate_limit_enabled":  false,
	"http.auth_rate_limit_requests": 10,
	"http.auth_rate_limit_window":   time.Minute,
	"http.cors_allow_origins":       []string{"*"},
	"http.cors_allow_methods":       []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	"http.cors_allow_headers":       []string{"Content-Type", "Authorization", "X-Request-ID", "X-Body-Encoding"},
	"http.trusted_proxies":          []string{},

	"storage.provider":           StorageLocal,
	"storage.local_dir":          "./data",
	"storage.public_base_url":    "",
	"storage.endpoint":           "",
	"storage.region":             "us-east-1",
	"storage.bucket":             "",
	"storage.access_key":         "",
	"storage.secret_key":         "",
	"storage.use_ssl":            false,
	"storage.use_path_style":     false,
	"storage.presign_expiration": 15 * time.Minute,

	"kafka.enabled":       false,
	"kafka.brokers":       []string{"localhost:9092"},
	"kafka.topic_prefix":  "sitinfra.",
	"kafka.write_timeout": 5 * time.Second,

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "",
	"telemetry.insecure":           false,
	"telemetry.db_trace_enabled":   false,

	"scheduler.enabled":        true,
	"scheduler.schedule":       "0 6 * * *",
	"scheduler.check_interval": time.Minute,
	"scheduler.lead_time":      30 * 24 * time.Hour,
	"scheduler.run_on_start":   false,
	"scheduler.workers":        1,
	"scheduler.job_timeout":    10 * time.Minute,
	"scheduler.retry_attempts": 0,
	"scheduler.retry_delay":    5 * time.Minute,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	return &cfg, nil
}

// Load loads configuration. Priority (highest to lowest):
//  1. environment variables with the SITINFRA_ prefix (a .env file is loaded first, never overriding)
//  2. config.toml in the working directory or /app
//  3. built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate reports every problem at once
func (c *Config) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	db := c.Database
	if db.Driver != DriverPostgres && db.Driver != DriverSQLite {
		fail("database.driver must be postgres or sqlite, got %q", db.Driver)
	}
	if db.MaxOpenConns <= 0 {
		fail("database.max_open_conns must be positive")
	}
	if db.MaxIdleConns < 0 || db.MaxIdleConns > db.MaxOpenConns {
		fail("database.max_idle_conns must be between 0 and max_open_conns (%d), got %d", db.MaxOpenConns, db.MaxIdleConns)
	}

	switch c.Storage.Provider {
	case StorageLocal:
	case StorageS3:
		if c.Storage.Bucket == "" {
			fail("storage.bucket is required for the s3 provider")
		}
	default:
		fail("storage.provider must be local or s3, got %q", c.Storage.Provider)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		fail("kafka.brokers is required when kafka is enabled")
	}

	if c.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			fail("jwt.secret must be at least 32 characters in production")
		}
		if db.Driver == DriverPostgres && db.Password == "" {
			fail("database.password is required in production")
		}
		if db.Driver == DriverPostgres && db.SSLMode == "disable" {
			fail("database.sslmode cannot be 'disable' in production")
		}
	}

	if c.Scheduler.Workers < 0 || c.Scheduler.RetryAttempts < 0 {
		fail("scheduler.workers and scheduler.retry_attempts cannot be negative")
	}
	if c.Scheduler.LeadTime < 0 {
		fail("scheduler.lead_time cannot be negative")
	}
	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		fail("telemetry.sampling_ratio must be between 0 and 1, got %g", r)
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the postgres connection URL with user info escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
