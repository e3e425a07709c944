package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, например CAFE_SERVER_HTTP_PORT.
// Многословные поля разбиваются по словам (split_words), однословные берутся как есть.
const EnvPrefix = "CAFE"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	SessionsMemory = "memory"
	SessionsRedis  = "redis"

	EventsNoop  = "noop"
	EventsKafka = "kafka"

	IdentityStub   = "stub"
	IdentityRemote = "remote"
)

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Storage      StorageConfig      `toml:"storage"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Availability AvailabilityConfig `toml:"availability"`
	Booking      BookingConfig      `toml:"booking"`
	Latency      LatencyConfig      `toml:"latency"`
	Auth         AuthConfig         `toml:"auth"`
	Sessions     SessionsConfig     `toml:"sessions"`
	Redis        RedisConfig        `toml:"redis"`
	Events       EventsConfig       `toml:"events"`
	Identity     IdentityConfig     `toml:"identity"`
	Operator     OperatorConfig     `toml:"operator"`
	CORS         CORSConfig         `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`  // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"` // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | postgres | sqlite
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"sqlite_path"` // файл sqlite
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения к postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"` // text | json
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type AvailabilityConfig struct {
	Policy                 string  `toml:"policy"` // random | deterministic
	UnavailableProbability float64 `toml:"unavailable_probability" split_words:"true"`
}

type BookingConfig struct {
	DefaultTablesPerSlot      int  `toml:"default_tables_per_slot" split_words:"true"`
	DefaultAdvanceBookingDays int  `toml:"default_advance_booking_days" split_words:"true"`
	SeedFixtures              bool `toml:"seed_fixtures" split_words:"true"`
}

type LatencyConfig struct {
	SimulatedDelayMs int `toml:"simulated_delay_ms" split_words:"true"`
}

type AuthConfig struct {
	JWTSecret          string `toml:"jwt_secret" split_words:"true"`
	SessionTTLMinutes  int    `toml:"session_ttl_minutes" split_words:"true"`
	LoginRatePerMinute int    `toml:"login_rate_per_minute" split_words:"true"`
	LoginBurst         int    `toml:"login_burst" split_words:"true"`
}

type SessionsConfig struct {
	Driver string `toml:"driver"` // memory | redis
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type EventsConfig struct {
	Driver  string   `toml:"driver"` // noop | kafka
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	Timeout int      `toml:"timeout"` // секунды
}

type IdentityConfig struct {
	Provider  string `toml:"provider"` // stub | remote
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды
	DemoEmail string `toml:"demo_email" split_words:"true"`
}

type OperatorConfig struct {
	APIKey string `toml:"api_key" split_words:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// Default конфигурация для локального запуска без внешних зависимостей
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Storage: StorageConfig{Driver: StorageMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Path:            "data/cafebooking.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "cafe_booking_service"},
		Availability: AvailabilityConfig{
			Policy:                 "deterministic",
			UnavailableProbability: 0.3,
		},
		Booking: BookingConfig{
			DefaultTablesPerSlot:      0,
			DefaultAdvanceBookingDays: 90,
			SeedFixtures:              true,
		},
		Auth: AuthConfig{
			SessionTTLMinutes:  7 * 24 * 60,
			LoginRatePerMinute: 10,
			LoginBurst:         5,
		},
		Sessions: SessionsConfig{Driver: SessionsMemory},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Events:   EventsConfig{Driver: EventsNoop, Topic: "cafe.bookings", Timeout: 5},
		Identity: IdentityConfig{Provider: IdentityStub, Timeout: 5, DemoEmail: "demo@cafebooking.local"},
	}
}

// Load читает TOML файл, затем .env рядом с процессом, затем переменные окружения CAFE_*
func Load(path string) (*Config, error) {
	return load(path, ".env")
}

func load(path, envFile string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, v ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, v...))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		add("server.http_port must be in 1..65535")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			add("database.host and database.dbname are required for postgres storage")
		}
	case StorageSQLite:
		if c.Database.Path == "" {
			add("database.sqlite_path is required for sqlite storage")
		}
	default:
		add("storage.driver must be one of memory, postgres, sqlite")
	}

	switch c.Availability.Policy {
	case "random", "deterministic":
	default:
		add("availability.policy must be random or deterministic")
	}
	if c.Availability.UnavailableProbability < 0 || c.Availability.UnavailableProbability > 1 {
		add("availability.unavailable_probability must be in [0,1]")
	}

	if c.Booking.DefaultTablesPerSlot < 0 || c.Booking.DefaultAdvanceBookingDays < 0 {
		add("booking defaults must not be negative")
	}
	if c.Latency.SimulatedDelayMs < 0 {
		add("latency.simulated_delay_ms must not be negative")
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		add("auth.jwt_secret is required")
	}
	if c.Auth.SessionTTLMinutes <= 0 {
		add("auth.session_ttl_minutes must be positive")
	}
	if c.Auth.LoginRatePerMinute <= 0 || c.Auth.LoginBurst <= 0 {
		add("auth.login_rate_per_minute and auth.login_burst must be positive")
	}

	switch c.Sessions.Driver {
	case SessionsMemory:
	case SessionsRedis:
		if c.Redis.Addr == "" {
			add("redis.addr is required for redis sessions")
		}
	default:
		add("sessions.driver must be memory or redis")
	}

	switch c.Events.Driver {
	case EventsNoop:
	case EventsKafka:
		if len(c.Events.Brokers) == 0 || c.Events.Topic == "" {
			add("events.brokers and events.topic are required for kafka events")
		}
	default:
		add("events.driver must be noop or kafka")
	}

	switch c.Identity.Provider {
	case IdentityStub:
	case IdentityRemote:
		if c.Identity.URL == "" {
			add("identity.url is required for remote identity provider")
		}
	default:
		add("identity.provider must be stub or remote")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		add("metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
