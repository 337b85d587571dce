package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. EXPENSY_SERVER_PORT.
const EnvPrefix = "EXPENSY"

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	Issuer     string        `mapstructure:"issuer"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type SessionConfig struct {
	Secret        string `mapstructure:"secret"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	MaxAge        int    `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultsConfig holds the values used for the category created with every project.
type DefaultsConfig struct {
	CategoryTitle string `mapstructure:"category_title"`
	CategoryColor string `mapstructure:"category_color"`
}

type EventsConfig struct {
	Backend      string   `mapstructure:"backend"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`
	AMQPURL      string   `mapstructure:"amqp_url"`
	AMQPExchange string   `mapstructure:"amqp_exchange"`
}

type AppConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Events   EventsConfig   `mapstructure:"events"`
	App      AppConfig      `mapstructure:"app"`
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "expensy")
	v.SetDefault("database.password", "expensy")
	v.SetDefault("database.name", "expensy.db")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "expensy")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("session.secret", "default-secret-key-change-me")
	v.SetDefault("session.redis_addr", "")
	v.SetDefault("session.redis_password", "")
	v.SetDefault("session.max_age", 86400*7)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("defaults.category_title", "Category 1")
	v.SetDefault("defaults.category_color", "#419fdb")

	v.SetDefault("events.backend", "log")
	v.SetDefault("events.kafka_brokers", []string{})
	v.SetDefault("events.kafka_topic", "expensy.events")
	v.SetDefault("events.amqp_url", "")
	v.SetDefault("events.amqp_exchange", "expensy.events")

	v.SetDefault("app.base_url", "http://localhost:8080")
}

// Load reads configuration from defaults, an optional YAML file and
// EXPENSY_* environment variables, in increasing order of precedence.
// When path is empty, config.yaml in the working directory is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("server.mode %q must be debug, release or test", c.Server.Mode))
	}

	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q must be sqlite, mysql or postgres", c.Database.Driver))
	}
	if c.Database.Name == "" {
		problems = append(problems, "database.name is required")
	}

	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		problems = append(problems, fmt.Sprintf("auth.bcrypt_cost %d must be between 4 and 31", c.Auth.BcryptCost))
	}

	if c.Session.Secret == "" {
		problems = append(problems, "session.secret is required")
	}

	if strings.TrimSpace(c.Defaults.CategoryTitle) == "" {
		problems = append(problems, "defaults.category_title is required")
	}
	if !hexColor.MatchString(c.Defaults.CategoryColor) {
		problems = append(problems, fmt.Sprintf("defaults.category_color %q is not a hex color", c.Defaults.CategoryColor))
	}

	switch c.Events.Backend {
	case "log":
	case "kafka":
		if len(c.Events.KafkaBrokers) == 0 {
			problems = append(problems, "events.kafka_brokers is required for the kafka backend")
		}
	case "amqp":
		if c.Events.AMQPURL == "" {
			problems = append(problems, "events.amqp_url is required for the amqp backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("events.backend %q must be log, kafka or amqp", c.Events.Backend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DSN builds the driver specific connection string.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.Name)
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			d.Host, d.User, d.Password, d.Name, d.Port)
	default:
		return d.Name
	}
}
