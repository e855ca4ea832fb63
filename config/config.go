package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds runtime settings read from the environment (and an optional .env).
type Config struct {
	Env  string `mapstructure:"APP_ENV"`
	Port string `mapstructure:"PORT"`

	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDB     string `mapstructure:"MONGO_DB"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	APIPrefix   string `mapstructure:"API_PREFIX"`
	StaticDir   string `mapstructure:"STATIC_DIR"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AuthRequired  bool   `mapstructure:"AUTH_REQUIRED"`
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	AlertEmail   string `mapstructure:"ALERT_EMAIL"`

	StockAlertAt string `mapstructure:"STOCK_ALERT_AT"`
	Timezone     string `mapstructure:"TIMEZONE"`

	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MetricsAllowedIPs string `mapstructure:"METRICS_ALLOWED_IPS"`
}

var keys = []string{
	"APP_ENV", "PORT", "MONGO_URI", "MONGO_DB", "STORE_DRIVER", "API_PREFIX", "STATIC_DIR",
	"CORS_ORIGINS", "JWT_SECRET", "AUTH_REQUIRED", "ADMIN_USERNAME", "ADMIN_PASSWORD",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "ALERT_EMAIL", "STOCK_ALERT_AT",
	"TIMEZONE", "LOG_LEVEL", "METRICS_ALLOWED_IPS",
}

// Load reads the environment. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	for _, k := range keys {
		// Unmarshal only sees keys viper knows about.
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DB", "thaiglass")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("STATIC_DIR", "./client/dist")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin")
	v.SetDefault("SMTP_PORT", 465)
	v.SetDefault("STOCK_ALERT_AT", "08:00")
	v.SetDefault("TIMEZONE", "Asia/Bangkok")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins splits CORS_ORIGINS on commas. Empty means any origin.
func (c *Config) Origins() []string {
	return splitList(c.CORSOrigins)
}

func (c *Config) MetricsIPs() []string {
	return splitList(c.MetricsAllowedIPs)
}

func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.AlertEmail != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
