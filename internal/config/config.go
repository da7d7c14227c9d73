package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/lineup-readiness/internal/platform/logging"
	"github.com/riskibarqy/lineup-readiness/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	SleeperBaseURL             string
	SleeperSport               string
	SleeperAvatarBaseURL       string
	SleeperTimeout             time.Duration
	SleeperMaxRetries          int
	SleeperCircuit             resilience.CircuitBreakerConfig
	PlayersCacheEnabled        bool
	PlayersCacheTTL            time.Duration
	ByeWeeksFile               string
	ClassifyPUPAsIncomplete    bool
	ReadinessBatchWorkers      int
	ReadinessBatchMaxLeagues   int
	LoadTimeout                time.Duration
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	sleeperTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if sleeperTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}
	sleeperMaxRetries, err := getEnvAsInt("SLEEPER_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_MAX_RETRIES: %w", err)
	}
	if sleeperMaxRetries < 0 {
		return Config{}, fmt.Errorf("SLEEPER_MAX_RETRIES must be >= 0")
	}
	sleeperCircuitEnabled, err := strconv.ParseBool(getEnv("SLEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_ENABLED: %w", err)
	}
	sleeperCircuitFailureCount, err := getEnvAsInt("SLEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	sleeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	sleeperCircuitHalfOpenMaxReq, err := getEnvAsInt("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	playersCacheEnabled, err := strconv.ParseBool(getEnv("PLAYERS_CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYERS_CACHE_ENABLED: %w", err)
	}
	playersCacheTTL, err := time.ParseDuration(getEnv("PLAYERS_CACHE_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYERS_CACHE_TTL: %w", err)
	}
	if playersCacheEnabled && playersCacheTTL <= 0 {
		return Config{}, fmt.Errorf("PLAYERS_CACHE_TTL must be > 0 when PLAYERS_CACHE_ENABLED=true")
	}

	classifyPUP, err := strconv.ParseBool(getEnv("CLASSIFY_PUP_AS_INCOMPLETE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CLASSIFY_PUP_AS_INCOMPLETE: %w", err)
	}

	batchWorkers, err := getEnvAsInt("READINESS_BATCH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse READINESS_BATCH_WORKERS: %w", err)
	}
	if batchWorkers < 1 {
		return Config{}, fmt.Errorf("READINESS_BATCH_WORKERS must be >= 1")
	}
	batchMaxLeagues, err := getEnvAsInt("READINESS_BATCH_MAX_LEAGUES", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse READINESS_BATCH_MAX_LEAGUES: %w", err)
	}
	if batchMaxLeagues < 1 {
		return Config{}, fmt.Errorf("READINESS_BATCH_MAX_LEAGUES must be >= 1")
	}

	loadTimeout, err := time.ParseDuration(getEnv("LOAD_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOAD_TIMEOUT: %w", err)
	}
	if loadTimeout <= 0 {
		return Config{}, fmt.Errorf("LOAD_TIMEOUT must be > 0")
	}

	serviceName := getEnv("APP_SERVICE_NAME", "lineup-readiness")

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                serviceName,
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		SleeperBaseURL:             strings.TrimRight(getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"), "/"),
		SleeperSport:               strings.ToLower(strings.TrimSpace(getEnv("SLEEPER_SPORT", "nfl"))),
		SleeperAvatarBaseURL:       strings.TrimRight(getEnv("SLEEPER_AVATAR_BASE_URL", "https://sleepercdn.com/avatars/thumbs"), "/"),
		SleeperTimeout:             sleeperTimeout,
		SleeperMaxRetries:          sleeperMaxRetries,
		SleeperCircuit: resilience.CircuitBreakerConfig{
			Enabled:          sleeperCircuitEnabled,
			FailureThreshold: sleeperCircuitFailureCount,
			OpenTimeout:      sleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   sleeperCircuitHalfOpenMaxReq,
		},
		PlayersCacheEnabled:      playersCacheEnabled,
		PlayersCacheTTL:          playersCacheTTL,
		ByeWeeksFile:             strings.TrimSpace(getEnv("BYE_WEEKS_FILE", "")),
		ClassifyPUPAsIncomplete:  classifyPUP,
		ReadinessBatchWorkers:    batchWorkers,
		ReadinessBatchMaxLeagues: batchMaxLeagues,
		LoadTimeout:              loadTimeout,
		LogLevel:                 parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if err := cfg.SleeperCircuit.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid SLEEPER_CIRCUIT_*: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
