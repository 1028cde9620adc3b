package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/matchdesk/league-console/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the console.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	LeagueAPIBaseURL              string
	LeagueAPIToken                string
	LeagueAPITimeout              time.Duration
	LeagueAPIMaxRetries           int
	LeagueAPICircuitEnabled       bool
	LeagueAPICircuitFailureCount  int
	LeagueAPICircuitOpenTimeout   time.Duration
	LeagueAPICircuitHalfOpenMax   int

	Locale          language.Tag
	RefreshWorkers  int
	RefreshInterval time.Duration

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	baseURL := strings.TrimSpace(getEnv("LEAGUE_API_BASE_URL", ""))
	if baseURL == "" {
		return Config{}, fmt.Errorf("LEAGUE_API_BASE_URL is required")
	}
	token := strings.TrimSpace(getEnv("LEAGUE_API_TOKEN", ""))
	if token == "" {
		return Config{}, fmt.Errorf("LEAGUE_API_TOKEN is required")
	}

	apiTimeout, err := time.ParseDuration(getEnv("LEAGUE_API_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_TIMEOUT: %w", err)
	}
	if apiTimeout <= 0 {
		return Config{}, fmt.Errorf("LEAGUE_API_TIMEOUT must be > 0")
	}

	maxRetries, err := getEnvAsInt("LEAGUE_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_MAX_RETRIES: %w", err)
	}
	if maxRetries < 0 {
		return Config{}, fmt.Errorf("LEAGUE_API_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("LEAGUE_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("LEAGUE_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("LEAGUE_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("LEAGUE_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("LEAGUE_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMax, err := getEnvAsInt("LEAGUE_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("LEAGUE_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	locale, err := language.Parse(getEnv("APP_LOCALE", "ru"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOCALE: %w", err)
	}

	refreshWorkers, err := getEnvAsInt("REFRESH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_WORKERS: %w", err)
	}
	if refreshWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_WORKERS must be >= 1")
	}

	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_INTERVAL: %w", err)
	}
	if refreshInterval < 0 {
		return Config{}, fmt.Errorf("REFRESH_INTERVAL must be >= 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
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

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "league-console"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		LeagueAPIBaseURL:             baseURL,
		LeagueAPIToken:               token,
		LeagueAPITimeout:             apiTimeout,
		LeagueAPIMaxRetries:          maxRetries,
		LeagueAPICircuitEnabled:      circuitEnabled,
		LeagueAPICircuitFailureCount: circuitFailureCount,
		LeagueAPICircuitOpenTimeout:  circuitOpenTimeout,
		LeagueAPICircuitHalfOpenMax:  circuitHalfOpenMax,

		Locale:          locale,
		RefreshWorkers:  refreshWorkers,
		RefreshInterval: refreshInterval,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled:     uptraceEnabled,
		UptraceDSN:         uptraceDSN,
		UptraceLogsEnabled: uptraceLogsEnabled,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
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
