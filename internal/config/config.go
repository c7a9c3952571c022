package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL"`
	Currency          string `env:"CURRENCY" envDefault:"INR"`

	NotifyAPIURL string `env:"NOTIFY_API_URL"`
	NotifyAPIKey string `env:"NOTIFY_API_KEY"`

	RedisAddr string `env:"REDIS_ADDR"`

	OpsAPIKey string `env:"OPS_API_KEY"`

	// Percentage applied to captured seller orders without an override.
	DefaultCommissionPct string `env:"DEFAULT_COMMISSION_PCT" envDefault:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
