package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// MailAccount holds SMTP settings for one named alias. The notification
// code selects an alias per message class ("default", "accounts", ...).
type MailAccount struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	UseTLS    bool   `yaml:"use_tls"`
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Dialect string `yaml:"dialect"` // postgres, mysql
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret    string `yaml:"access_secret"`
		RefreshSecret   string `yaml:"refresh_secret"`
		AccessTTLMin    int    `yaml:"access_ttl_minutes"`
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
	} `yaml:"jwt"`

	Mail struct {
		Accounts     map[string]MailAccount `yaml:"accounts"`
		DefaultAlias string                 `yaml:"default_alias"`
		TemplatesDir string                 `yaml:"templates_dir"`
	} `yaml:"mail"`

	Payment struct {
		StripeSecret string `yaml:"stripe_secret"`
		Currency     string `yaml:"currency"`
		ReturnURL    string `yaml:"return_url"`
	} `yaml:"payment"`

	Storage struct {
		Type       string `yaml:"type"`      // local, s3
		BasePath   string `yaml:"base_path"` // for local storage
		BaseURL    string `yaml:"base_url"`  // public URL base
		RootFolder string `yaml:"root_folder"`
		Bucket     string `yaml:"bucket"`
		Region     string `yaml:"region"`
		AccessKey  string `yaml:"access_key"`
		SecretKey  string `yaml:"secret_key"`
		Endpoint   string `yaml:"endpoint"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // max file size in bytes
	} `yaml:"upload"`

	Tokens struct {
		ActivationExpireHours int `yaml:"activation_expire_hours"`
		ResetExpireHours      int `yaml:"reset_expire_hours"`
		ResetIntervalMinutes  int `yaml:"reset_interval_minutes"`
		ResetRequestLimit     int `yaml:"reset_request_limit"`
	} `yaml:"tokens"`

	Company struct {
		Name         string `yaml:"name"`
		SupportEmail string `yaml:"support_email"`
		SupportPhone string `yaml:"support_phone"`
		FrontendURL  string `yaml:"frontend_url"`
	} `yaml:"company"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`

	Bundle struct {
		TempDir string `yaml:"temp_dir"`
	} `yaml:"bundle"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case
// the environment supplies everything (test/CI mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Database.Dialect = envOr("DATABASE_DIALECT", "postgres")
	cfg.Server.Env = envOr("SERVER_ENV", "development")
	cfg.Server.Port, _ = strconv.Atoi(envOr("SERVER_PORT", "4000"))
	cfg.JWT.AccessSecret = os.Getenv("ACCESS_SECRET")
	cfg.JWT.RefreshSecret = os.Getenv("REFRESH_SECRET")
	cfg.JWT.AccessTTLMin = 60
	cfg.JWT.RefreshTTLHours = 24 * 7
	cfg.Payment.StripeSecret = os.Getenv("STRIPE_SECRET")
	cfg.CORS.AllowedOrigins = strings.Split(envOr("ALLOWED_ORIGINS", "*"), ",")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"
	cfg.Storage.RootFolder = "paperdesk"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.AccessTTLMin == 0 {
		cfg.JWT.AccessTTLMin = 60
	}
	if cfg.JWT.RefreshTTLHours == 0 {
		cfg.JWT.RefreshTTLHours = 24 * 7
	}
	if cfg.Tokens.ActivationExpireHours == 0 {
		cfg.Tokens.ActivationExpireHours = 24
	}
	if cfg.Tokens.ResetExpireHours == 0 {
		cfg.Tokens.ResetExpireHours = 1
	}
	if cfg.Tokens.ResetIntervalMinutes == 0 {
		cfg.Tokens.ResetIntervalMinutes = 15
	}
	if cfg.Tokens.ResetRequestLimit == 0 {
		cfg.Tokens.ResetRequestLimit = 3
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "usd"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 20 * 1024 * 1024
	}
	if cfg.Mail.DefaultAlias == "" {
		cfg.Mail.DefaultAlias = "default"
	}
	if cfg.Bundle.TempDir == "" {
		cfg.Bundle.TempDir = os.TempDir()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
