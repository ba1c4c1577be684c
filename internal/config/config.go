package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/ticket-gate/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Gate     GateConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines caller authentication parameters. The hosting vault
// runtime presents either a bearer token signed with JWTSecret or a static
// API key whose bcrypt hash is configured here.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	APIKeyHash            string
}

// GateConfig holds validation behavior: the outbound call timeout, the audit
// file directory, the tower routing table, the fallback connection account
// and the policy defaults applied when the caller's parameter blob omits a
// key.
type GateConfig struct {
	OutboundTimeoutSeconds int
	AuditDir               string
	TowerIDs               map[string]string
	ConnectionAccount      domain.ConnectionAccount
	PolicyDefaults         domain.GatePolicy
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-gate"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 90),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			APIKeyHash:            os.Getenv("AUTH_API_KEY_HASH"),
		},
		Gate: GateConfig{
			OutboundTimeoutSeconds: getEnvAsInt("GATE_OUTBOUND_TIMEOUT_SECONDS", 60),
			AuditDir:               getEnv("GATE_AUDIT_DIR", "audit"),
			TowerIDs:               loadTowerIDs(),
			ConnectionAccount: domain.ConnectionAccount{
				Address:  os.Getenv("TICKETING_ADDRESS"),
				Username: os.Getenv("TICKETING_USERNAME"),
				Password: os.Getenv("TICKETING_PASSWORD"),
			},
			PolicyDefaults: loadPolicyDefaults(),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// OutboundTimeout returns the ticketing system call timeout.
func (g GateConfig) OutboundTimeout() time.Duration {
	if g.OutboundTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(g.OutboundTimeoutSeconds) * time.Second
}

// HasConnectionAccount reports whether a fallback service account is set.
func (g GateConfig) HasConnectionAccount() bool {
	return g.ConnectionAccount.Address != ""
}

func loadPolicyDefaults() domain.GatePolicy {
	return domain.GatePolicy{
		AllowedChangeStatus:         os.Getenv("GATE_ALLOWED_CHANGE_STATUS"),
		AllowedServiceRequestStatus: os.Getenv("GATE_ALLOWED_SERVICE_REQUEST_STATUS"),
		AllowedIncidentStatus:       os.Getenv("GATE_ALLOWED_INCIDENT_STATUS"),
		AllowedProblemStatus:        os.Getenv("GATE_ALLOWED_PROBLEM_STATUS"),
		TicketFormatPattern:         os.Getenv("GATE_TICKET_FORMAT_PATTERN"),
		BypassCode:                  strings.ToUpper(os.Getenv("GATE_BYPASS_CODE")),
		TimeBypassCode:              strings.ToUpper(os.Getenv("GATE_TIME_BYPASS_CODE")),
		CreateIncidentCode:          strings.ToUpper(os.Getenv("GATE_CREATE_INCIDENT_CODE")),
		VerifyConnection:            getEnvAsBool("GATE_VERIFY_CONNECTION", false),
		CheckTimeWindow:             getEnvAsBool("GATE_CHECK_TIME_WINDOW", true),
		CheckConfigurationItem:      getEnvAsBool("GATE_CHECK_CONFIGURATION_ITEM", true),
		CheckAssignee:               getEnvAsBool("GATE_CHECK_ASSIGNEE", true),
		FieldKeyConfigItem:          os.Getenv("GATE_FIELD_KEY_CI"),
		FieldKeyStartTime:           os.Getenv("GATE_FIELD_KEY_START_TIME"),
		FieldKeyEndTime:             os.Getenv("GATE_FIELD_KEY_END_TIME"),
		MsgInvalidTicket:            getEnv("GATE_MSG_INVALID_TICKET", "Ticket is not valid."),
		MsgInvalidTicketFormat:      getEnv("GATE_MSG_INVALID_TICKET_FORMAT", "Ticket format is not valid."),
		MsgConnectionError:          getEnv("GATE_MSG_CONNECTION_ERROR", "Unable to connect to the ticketing system."),
	}
}

// defaultTowerIDs maps tower names onto the ticketing system's internal
// queue identifiers. GATE_TOWER_IDS ("NAME=ID,NAME=ID") overrides entries.
func defaultTowerIDs() map[string]string {
	return map[string]string{
		"PAM":         "11406",
		"AD":          "14106",
		"BACKUP":      "11400",
		"CITRIX":      "11401",
		"DAM":         "11402",
		"DATABASE":    "11403",
		"DC":          "11404",
		"EUC(INTUNE)": "14204",
		"EUC(2FA)":    "14300",
		"HVPN":        "14107",
		"NETWORK":     "11405",
		"SECURITY":    "11407",
		"STORAGE":     "11408",
		"SYSTEM":      "11409",
		"UNIX":        "11410",
	}
}

func loadTowerIDs() map[string]string {
	towers := defaultTowerIDs()
	for _, pair := range strings.Split(os.Getenv("GATE_TOWER_IDS"), ",") {
		name, id, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		id = strings.TrimSpace(id)
		if name == "" || id == "" {
			continue
		}
		towers[name] = id
	}
	return towers
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
