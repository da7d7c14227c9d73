package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
	"github.com/riskibarqy/lineup-readiness/internal/domain/readiness"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SleeperBaseURL != "https://api.sleeper.app/v1" {
		t.Fatalf("unexpected SleeperBaseURL: %q", cfg.SleeperBaseURL)
	}
	if cfg.SleeperSport != "nfl" {
		t.Fatalf("unexpected SleeperSport: %q", cfg.SleeperSport)
	}
	if cfg.SleeperAvatarBaseURL != "https://sleepercdn.com/avatars/thumbs" {
		t.Fatalf("unexpected SleeperAvatarBaseURL: %q", cfg.SleeperAvatarBaseURL)
	}
	if !cfg.SleeperCircuit.Enabled || cfg.SleeperCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg.SleeperCircuit)
	}
	if !cfg.ClassifyPUPAsIncomplete {
		t.Fatalf("expected ClassifyPUPAsIncomplete=true by default")
	}
	pupStarter := player.Player{ID: "6794", InjuryStatus: "PUP"}
	if got := readiness.DefaultRules(cfg.ClassifyPUPAsIncomplete).Classify(pupStarter); got != readiness.VerdictIncomplete {
		t.Fatalf("expected default rules to classify PUP as INCOMPLETE, got %s", got)
	}
	if cfg.ByeWeeksFile != "" {
		t.Fatalf("expected empty ByeWeeksFile by default, got %q", cfg.ByeWeeksFile)
	}
	if cfg.LoadTimeout != 60*time.Second {
		t.Fatalf("unexpected LoadTimeout: %s", cfg.LoadTimeout)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("unexpected PprofAddr: %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "lineup-readiness-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "lineup-readiness-test" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("csv list", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second origin: %q", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_SleeperConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("SLEEPER_BASE_URL", "http://localhost:9000/v1/")
		t.Setenv("SLEEPER_SPORT", " NFL ")
		t.Setenv("SLEEPER_TIMEOUT", "5s")
		t.Setenv("SLEEPER_MAX_RETRIES", "3")
		t.Setenv("SLEEPER_CIRCUIT_FAILURE_COUNT", "2")
		t.Setenv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "10s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SleeperBaseURL != "http://localhost:9000/v1" {
			t.Fatalf("unexpected SleeperBaseURL: %q", cfg.SleeperBaseURL)
		}
		if cfg.SleeperSport != "nfl" {
			t.Fatalf("unexpected SleeperSport: %q", cfg.SleeperSport)
		}
		if cfg.SleeperTimeout != 5*time.Second || cfg.SleeperMaxRetries != 3 {
			t.Fatalf("unexpected timeout/retries: %s/%d", cfg.SleeperTimeout, cfg.SleeperMaxRetries)
		}
		if cfg.SleeperCircuit.FailureThreshold != 2 || cfg.SleeperCircuit.OpenTimeout != 10*time.Second {
			t.Fatalf("unexpected circuit config: %+v", cfg.SleeperCircuit)
		}
	})

	t.Run("negative retries rejected", func(t *testing.T) {
		t.Setenv("SLEEPER_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative SLEEPER_MAX_RETRIES")
		}
	})

	t.Run("bad timeout rejected", func(t *testing.T) {
		t.Setenv("SLEEPER_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SLEEPER_TIMEOUT")
		}
	})
}

func TestLoad_ReadinessConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("BYE_WEEKS_FILE", " configs/bye_weeks.yaml ")
		t.Setenv("CLASSIFY_PUP_AS_INCOMPLETE", "false")
		t.Setenv("READINESS_BATCH_WORKERS", "8")
		t.Setenv("READINESS_BATCH_MAX_LEAGUES", "50")
		t.Setenv("PLAYERS_CACHE_TTL", "30m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ByeWeeksFile != "configs/bye_weeks.yaml" {
			t.Fatalf("unexpected ByeWeeksFile: %q", cfg.ByeWeeksFile)
		}
		if cfg.ClassifyPUPAsIncomplete {
			t.Fatalf("expected ClassifyPUPAsIncomplete=false")
		}
		if cfg.ReadinessBatchWorkers != 8 || cfg.ReadinessBatchMaxLeagues != 50 {
			t.Fatalf("unexpected batch config: %d/%d", cfg.ReadinessBatchWorkers, cfg.ReadinessBatchMaxLeagues)
		}
		if cfg.PlayersCacheTTL != 30*time.Minute {
			t.Fatalf("unexpected PlayersCacheTTL: %s", cfg.PlayersCacheTTL)
		}
	})

	t.Run("zero workers rejected", func(t *testing.T) {
		t.Setenv("READINESS_BATCH_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for READINESS_BATCH_WORKERS=0")
		}
	})

	t.Run("bad pup flag rejected", func(t *testing.T) {
		t.Setenv("CLASSIFY_PUP_AS_INCOMPLETE", "sometimes")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CLASSIFY_PUP_AS_INCOMPLETE")
		}
	})
}

func TestLoad_SleeperCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("zero threshold rejected while enabled", func(t *testing.T) {
		t.Setenv("SLEEPER_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SLEEPER_CIRCUIT_FAILURE_COUNT=0")
		}
	})

	t.Run("limits ignored while disabled", func(t *testing.T) {
		t.Setenv("SLEEPER_CIRCUIT_ENABLED", "false")
		t.Setenv("SLEEPER_CIRCUIT_FAILURE_COUNT", "0")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SleeperCircuit.Enabled {
			t.Fatalf("expected disabled circuit")
		}
	})
}
