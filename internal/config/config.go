package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/GolpiraElmiA/OSRTickets/internal/model"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// CredentialsFile — Google service account key used for the Drive API.
	CredentialsFile string
	// DriveFileName — the single remote CSV file the whole system reads and
	// rewrites. Fixed for the lifetime of a deployment.
	DriveFileName string

	// AdminSecret — legacy shared secret accepted by the authorizer.
	AdminSecret string
	// OperatorTokens — per-operator credentials, parsed from
	// OPERATOR_TOKENS="alice:tok1,bob:tok2".
	OperatorTokens map[string]string

	// Sections — the department/section choices offered by the form.
	Sections []string

	// NotifyWebhookURL — if set, ticket events are POSTed there best-effort.
	NotifyWebhookURL string

	KafkaBrokers     []string
	KafkaTopicTicket string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:          getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:         firstEnv("APP_PORT", "HTTP_PORT", "8099"),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CredentialsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DriveFileName:    getEnv("DRIVE_FILE_NAME", "StatisticalAnalysisTickets.csv"),
		AdminSecret:      getEnv("ADMIN_SECRET", "reset123"),
		OperatorTokens:   parseOperatorTokens(getEnv("OPERATOR_TOKENS", "")),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopicTicket: getEnv("KAFKA_TOPIC_TICKET", ""),
	}
	if s := splitList(getEnv("SECTIONS", "")); len(s) > 0 {
		cfg.Sections = s
	} else {
		cfg.Sections = model.DefaultSections
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.CredentialsFile == "" {
		return errors.New("config: GOOGLE_APPLICATION_CREDENTIALS is required")
	}
	if c.DriveFileName == "" {
		return errors.New("config: DRIVE_FILE_NAME must not be empty")
	}
	if c.AppEnv == "production" && c.AdminSecret == "reset123" && len(c.OperatorTokens) == 0 {
		return errors.New("config: in production set ADMIN_SECRET or OPERATOR_TOKENS (default secret refused)")
	}
	return nil
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

// parseOperatorTokens parses "name:token" pairs. Malformed pairs are dropped
// rather than rejected: a typo in one operator's entry must not lock the
// whole service out.
func parseOperatorTokens(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range splitList(s) {
		name, token, ok := strings.Cut(pair, ":")
		if !ok || name == "" || token == "" {
			continue
		}
		out[name] = token
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
