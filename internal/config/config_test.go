package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9090" || cfg.APIBasePath != "/api" || cfg.Addr() != ":9090" {
		t.Fatalf("server defaults unexpected: port=%q base=%q", cfg.Port, cfg.APIBasePath)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.Path != "news.db" || !cfg.DB.AutoMigrate {
		t.Fatalf("db defaults unexpected: %+v", cfg.DB)
	}
	if cfg.DefaultPageLimit != 10 || !cfg.GzipEnabled || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("defaults unexpected: %+v", cfg)
	}
	if cfg.Events.AMQPURL != "" || cfg.Events.Exchange != "news.events" || cfg.OTEL.ServiceName != "go-news-backend" {
		t.Fatalf("events/otel defaults unexpected: %+v %+v", cfg.Events, cfg.OTEL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("GIN_MODE", "weird")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("API_BASE_PATH", "news/")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/news")
	t.Setenv("DB_AUTO_MIGRATE", "off")
	t.Setenv("DB_MAX_OPEN_CONNS", "nope")
	t.Setenv("DEFAULT_PAGE_LIMIT", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("GZIP_ENABLED", "0")
	t.Setenv("IDEMPOTENCY_TTL", "48h")
	t.Setenv("EVENTS_AMQP_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("EVENTS_QUEUE", "news.audit")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8088" || cfg.ReadTimeout != 2*time.Second || cfg.ShutdownTimeout != 3*time.Second || cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.APIBasePath != "/news" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	want := DBConfig{Driver: DriverPostgres, Path: "news.db", URL: "postgres://u:p@db:5432/news", AutoMigrate: false, MaxOpenConns: 20}
	if cfg.DB != want {
		t.Fatalf("db = %+v; want %+v", cfg.DB, want)
	}
	if cfg.DefaultPageLimit != 25 || cfg.GzipEnabled || cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("listing/web unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Events.AMQPURL == "" || cfg.Events.Queue != "news.audit" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("events/otel unexpected: %+v %+v", cfg.Events, cfg.OTEL)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_PAGE_LIMIT=7\nPORT=7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		os.Unsetenv("DEFAULT_PAGE_LIMIT")
	})
	t.Setenv("PORT", "8000") // process env wins over .env

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultPageLimit != 7 || cfg.Port != "8000" {
		t.Fatalf("dotenv: limit=%d port=%q", cfg.DefaultPageLimit, cfg.Port)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"port", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"timeouts", map[string]string{"SHUTDOWN_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"header bytes", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"sqlite path", map[string]string{"DB_PATH": "  "}, "DB_PATH must not be empty"},
		{"postgres url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL is required"},
		{"max conns", map[string]string{"DB_MAX_OPEN_CONNS": "0"}, "DB_MAX_OPEN_CONNS"},
		{"page limit", map[string]string{"DEFAULT_PAGE_LIMIT": "0"}, "DEFAULT_PAGE_LIMIT"},
		{"hsts", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"exchange", map[string]string{"EVENTS_AMQP_URL": "amqp://x", "EVENTS_EXCHANGE": " "}, "EVENTS_EXCHANGE"},
		{"sampler", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v; want containing %q", err, tc.want)
			}
		})
	}
}

func TestMustLoad(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if cfg := MustLoad(); cfg.APIBasePath == "" {
			t.Fatal("unexpected empty config")
		}
	})
	t.Run("invalid panics", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		defer func() {
			if recover() == nil {
				t.Fatal("MustLoad should panic on invalid config")
			}
		}()
		_ = MustLoad()
	})
}

func TestHelpers(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatal("getenv should fall back on empty var")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.25) != 1.25 {
		t.Fatal("getfloat default on bad parse")
	}
	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatal("getdur parse")
	}
	for _, v := range []string{"1", "TRUE", " yes ", "On"} {
		t.Setenv("B", v)
		if !getbool("B", false) {
			t.Fatalf("getbool(%q) = false", v)
		}
	}
	t.Setenv("B", "maybe")
	if !getbool("B", true) {
		t.Fatal("getbool default on unknown value")
	}

	if got := splitCSV(" a, ,b ,"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("splitCSV = %#v", got)
	}
	for in, want := range map[string]string{"": "/", "v1": "/v1", "/api//": "/api", " / ": "/"} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}
