package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/palpiteria/bolao/internal/platform/logging"
)

// Config stores runtime configuration for the bolao CLI.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	DataDir                    string
	SimilarityMaxDistance      int
	SimilarityMaxRatio         float64
	MaxGoals                   int
	MaxRounds                  int
	Workers                    int
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
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dataDir := strings.TrimSpace(getEnv("BOLAO_DATA_DIR", "./campeonatos"))
	if dataDir == "" {
		return Config{}, fmt.Errorf("BOLAO_DATA_DIR cannot be empty")
	}

	similarityMaxDistance, err := getEnvAsInt("BOLAO_SIMILARITY_MAX_DISTANCE", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOLAO_SIMILARITY_MAX_DISTANCE: %w", err)
	}
	if similarityMaxDistance < 0 {
		return Config{}, fmt.Errorf("BOLAO_SIMILARITY_MAX_DISTANCE must be >= 0")
	}

	similarityMaxRatio, err := getEnvAsFloat("BOLAO_SIMILARITY_MAX_RATIO", 0.34)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOLAO_SIMILARITY_MAX_RATIO: %w", err)
	}
	if similarityMaxRatio <= 0 || similarityMaxRatio > 1 {
		return Config{}, fmt.Errorf("BOLAO_SIMILARITY_MAX_RATIO must be in (0, 1]")
	}

	maxGoals, err := getEnvAsInt("BOLAO_MAX_GOALS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOLAO_MAX_GOALS: %w", err)
	}
	if maxGoals < 1 {
		return Config{}, fmt.Errorf("BOLAO_MAX_GOALS must be >= 1")
	}

	maxRounds, err := getEnvAsInt("BOLAO_MAX_ROUNDS", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOLAO_MAX_ROUNDS: %w", err)
	}
	if maxRounds < 1 {
		return Config{}, fmt.Errorf("BOLAO_MAX_ROUNDS must be >= 1")
	}

	workers, err := getEnvAsInt("BOLAO_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOLAO_WORKERS: %w", err)
	}
	if workers < 1 {
		return Config{}, fmt.Errorf("BOLAO_WORKERS must be >= 1")
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
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "bolao-admin"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		DataDir:                    dataDir,
		SimilarityMaxDistance:      similarityMaxDistance,
		SimilarityMaxRatio:         similarityMaxRatio,
		MaxGoals:                   maxGoals,
		MaxRounds:                  maxRounds,
		Workers:                    workers,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
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

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
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
