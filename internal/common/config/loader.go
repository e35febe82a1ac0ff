// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the base YAML config, merges the environment-specific overlay
// and environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_PASSWORD.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	candidates := []string{
		".env",
		filepath.Join("..", "..", ".env"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "fax-engine"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Camunda.BrokerAddress == "" {
		cfg.Camunda.BrokerAddress = "localhost:26500"
	}
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}

	if cfg.Engine.Brand == "" {
		cfg.Engine.Brand = "Faxi"
	}
	if cfg.Engine.SupportLine == "" {
		cfg.Engine.SupportLine = "0120-905-770"
	}
	if cfg.Engine.ImageConcurrency == 0 {
		cfg.Engine.ImageConcurrency = 4
	}
	if cfg.Engine.ImageTimeout == 0 {
		cfg.Engine.ImageTimeout = 5000
	}
	if cfg.Engine.ReferenceMaxAttempts == 0 {
		cfg.Engine.ReferenceMaxAttempts = 3
	}

	if cfg.Audit.ElasticsearchIndex == "" {
		cfg.Audit.ElasticsearchIndex = "fax-documents"
	}
	if cfg.Audit.ReserveTTLHours == 0 {
		cfg.Audit.ReserveTTLHours = 24 * 90
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Workers == nil {
		cfg.Workers = map[string]WorkerConfig{}
	}
	for _, task := range []string{"generate-fax", "transmit-fax"} {
		wc, ok := cfg.Workers[task]
		if !ok {
			wc = WorkerConfig{Enabled: true}
		}
		if wc.MaxJobsActive == 0 {
			wc.MaxJobsActive = cfg.Camunda.MaxJobsActive
		}
		if wc.Timeout == 0 {
			wc.Timeout = cfg.Camunda.Timeout
		}
		if wc.MaxRetries == 0 {
			wc.MaxRetries = 3
		}
		cfg.Workers[task] = wc
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Engine.ImageConcurrency < 1 {
		return fmt.Errorf("engine.image_concurrency must be >= 1")
	}
	if cfg.Transmit.SES.Enabled {
		if cfg.Transmit.SES.FromEmail == "" {
			return fmt.Errorf("transmit.ses.from_email is required when SES is enabled")
		}
		if cfg.Transmit.SES.GatewayDomain == "" {
			return fmt.Errorf("transmit.ses.gateway_domain is required when SES is enabled")
		}
		if cfg.Transmit.AWS.Region == "" {
			return fmt.Errorf("transmit.aws.region is required when SES is enabled")
		}
	}
	if cfg.Audit.PostgresEnabled && cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required when the postgres audit sink is enabled")
	}
	if cfg.Audit.RedisReserveEnabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when reference reservation is enabled")
	}
	return nil
}
