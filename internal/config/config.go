package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	OIDC      OIDCConfig
	Upload    UploadConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type OIDCConfig struct {
	IssuerURL string
	ClientID  string
	// AllowInsecure skips signature verification; local/integration runs only.
	AllowInsecure bool
}

type UploadConfig struct {
	// MaxBytes limits the decoded image payload size.
	MaxBytes           int64
	DefaultContentType string
}

type NotifyConfig struct {
	// ReviewerAddr is the fixed destination for submission notifications.
	ReviewerAddr string
	// WebhookURL, when set, delivers notifications by HTTP POST;
	// otherwise messages are logged only.
	WebhookURL string
	QueueSize  int
	Timeout    time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MONGODB_DATABASE", "staffdesk")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	viper.SetDefault("UPLOAD_DEFAULT_CONTENT_TYPE", "image/jpeg")
	viper.SetDefault("NOTIFY_REVIEWER_ADDR", "leave-reviewers@staffdesk.local")
	viper.SetDefault("NOTIFY_QUEUE_SIZE", 128)
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 5)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			LogLevel:     viper.GetString("LOG_LEVEL"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		OIDC: OIDCConfig{
			IssuerURL:     viper.GetString("OIDC_ISSUER_URL"),
			ClientID:      viper.GetString("OIDC_CLIENT_ID"),
			AllowInsecure: viper.GetBool("ALLOW_INSECURE_TOKEN"),
		},
		Upload: UploadConfig{
			MaxBytes:           viper.GetInt64("UPLOAD_MAX_BYTES"),
			DefaultContentType: viper.GetString("UPLOAD_DEFAULT_CONTENT_TYPE"),
		},
		Notify: NotifyConfig{
			ReviewerAddr: viper.GetString("NOTIFY_REVIEWER_ADDR"),
			WebhookURL:   viper.GetString("NOTIFY_WEBHOOK_URL"),
			QueueSize:    viper.GetInt("NOTIFY_QUEUE_SIZE"),
			Timeout:      time.Duration(viper.GetInt("NOTIFY_TIMEOUT_SECONDS")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg, nil
}
