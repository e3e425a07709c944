package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTOML = `
[server]
http_port = 8081

[storage]
driver = "sqlite"

[database]
sqlite_path = "tmp/test.db"

[auth]
jwt_secret = "secret"

[events]
driver = "kafka"
brokers = ["localhost:9092"]
topic = "bookings"

[cors]
allowed_origins = ["http://localhost:3000"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_TOMLOverDefaults(t *testing.T) {
	cfg, err := load(writeFile(t, "config.toml", testTOML), "")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "default kept when TOML is silent")
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "tmp/test.db", cfg.Database.Path)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.Brokers)
	assert.Equal(t, 90, cfg.Booking.DefaultAdvanceBookingDays)
	assert.Equal(t, 0, cfg.Booking.DefaultTablesPerSlot)
	assert.Equal(t, "deterministic", cfg.Availability.Policy)
	assert.Equal(t, IdentityStub, cfg.Identity.Provider)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverridesTOML(t *testing.T) {
	t.Setenv("CAFE_SERVER_HTTP_PORT", "9090")
	t.Setenv("CAFE_AUTH_JWT_SECRET", "from-env")
	t.Setenv("CAFE_EVENTS_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CAFE_METRICS_PATH", "/internal/metrics")
	t.Setenv("CAFE_BOOKING_DEFAULT_TABLES_PER_SLOT", "4")
	t.Setenv("CAFE_DATABASE_PATH", "env.db")

	cfg, err := load(writeFile(t, "config.toml", testTOML), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
	assert.Equal(t, 4, cfg.Booking.DefaultTablesPerSlot)
	assert.Equal(t, "env.db", cfg.Database.Path)
}

func TestLoad_DotEnvFile(t *testing.T) {
	const key = "CAFE_OPERATOR_API_KEY"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	envFile := writeFile(t, ".env", key+"=operator-secret\n")

	cfg, err := load(writeFile(t, "config.toml", testTOML), envFile)
	require.NoError(t, err)
	assert.Equal(t, "operator-secret", cfg.Operator.APIKey)
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	_, err := load(writeFile(t, "config.toml", testTOML), missing)
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := load(filepath.Join(t.TempDir(), "absent.toml"), "")
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := load(writeFile(t, "config.toml", "[server\nhttp_port = "), "")
		assert.Error(t, err)
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("CAFE_SERVER_HTTP_PORT", "not-a-number")
		_, err := load(writeFile(t, "config.toml", testTOML), "")
		assert.Error(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := load(writeFile(t, "config.toml", "[storage]\ndriver = \"mongo\"\n"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.driver")
		assert.Contains(t, err.Error(), "auth.jwt_secret")
	})
}

func TestLoad_RepositoryConfig(t *testing.T) {
	cfg, err := load(filepath.Join("..", "..", "config.toml"), "")
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, SessionsMemory, cfg.Sessions.Driver)
	assert.Equal(t, EventsNoop, cfg.Events.Driver)
}

func validConfig() *Config {
	cfg := Default()
	cfg.Auth.JWTSecret = "secret"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults with secret",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.HTTPPort = 70000 },
			wantErr: "server.http_port",
		},
		{
			name:    "postgres without dbname",
			mutate:  func(c *Config) { c.Storage.Driver = StoragePostgres },
			wantErr: "database.host and database.dbname",
		},
		{
			name: "postgres configured",
			mutate: func(c *Config) {
				c.Storage.Driver = StoragePostgres
				c.Database.DBName = "cafe"
			},
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageSQLite
				c.Database.Path = ""
			},
			wantErr: "database.sqlite_path",
		},
		{
			name:    "unknown policy",
			mutate:  func(c *Config) { c.Availability.Policy = "always" },
			wantErr: "availability.policy",
		},
		{
			name:    "probability out of range",
			mutate:  func(c *Config) { c.Availability.UnavailableProbability = 1.5 },
			wantErr: "unavailable_probability",
		},
		{
			name:    "negative capacity",
			mutate:  func(c *Config) { c.Booking.DefaultTablesPerSlot = -1 },
			wantErr: "booking defaults",
		},
		{
			name:    "negative latency",
			mutate:  func(c *Config) { c.Latency.SimulatedDelayMs = -5 },
			wantErr: "latency.simulated_delay_ms",
		},
		{
			name:    "blank secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "   " },
			wantErr: "auth.jwt_secret",
		},
		{
			name:    "zero session ttl",
			mutate:  func(c *Config) { c.Auth.SessionTTLMinutes = 0 },
			wantErr: "auth.session_ttl_minutes",
		},
		{
			name:    "zero login burst",
			mutate:  func(c *Config) { c.Auth.LoginBurst = 0 },
			wantErr: "auth.login_rate_per_minute",
		},
		{
			name: "redis without addr",
			mutate: func(c *Config) {
				c.Sessions.Driver = SessionsRedis
				c.Redis.Addr = ""
			},
			wantErr: "redis.addr",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *Config) { c.Events.Driver = EventsKafka },
			wantErr: "events.brokers",
		},
		{
			name:    "remote identity without url",
			mutate:  func(c *Config) { c.Identity.Provider = IdentityRemote },
			wantErr: "identity.url",
		},
		{
			name: "relative metrics path",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Path = "metrics"
			},
			wantErr: "metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "cafe",
		Password: "pw",
		DBName:   "bookings",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=cafe password=pw dbname=bookings sslmode=disable", d.DSN())
}
