package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Default SSD/CNEOS endpoints. Both speak the same columnar envelope.
const (
	DefaultFireballAPIURL = "https://ssd-api.jpl.nasa.gov/fireball.api"
	DefaultCADAPIURL      = "https://ssd-api.jpl.nasa.gov/cad.api"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream SSD/CNEOS endpoints.
	FireballAPIURL string
	CADAPIURL      string
	SSDTimeout     time.Duration

	// Kafka export sink configuration.
	KafkaBrokers     []string
	KafkaExportTopic string
	ExportEnabled    bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. The export sink is enabled implicitly when KAFKA_BROKERS
// is set; EXPORT_ENABLED overrides either way.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	ssdTimeout, err := parseDurationEnv("SSD_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	exportEnabled := len(brokers) > 0
	if v := os.Getenv("EXPORT_ENABLED"); v != "" {
		exportEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FireballAPIURL: envOrDefault("FIREBALL_API_URL", DefaultFireballAPIURL),
		CADAPIURL:      envOrDefault("CAD_API_URL", DefaultCADAPIURL),
		SSDTimeout:     ssdTimeout,

		KafkaBrokers:     brokers,
		KafkaExportTopic: envOrDefault("KAFKA_EXPORT_TOPIC", "neo-tables"),
		ExportEnabled:    exportEnabled,
	}

	if cfg.ExportEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("EXPORT_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
