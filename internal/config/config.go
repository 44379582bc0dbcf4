package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type ChallengeConfig struct {
	Threshold int    `yaml:"threshold"`
	LockTTL   string `yaml:"lock_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Challenge ChallengeConfig `yaml:"challenge"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

type Config struct {
	Port               string
	GinMode            string
	DSN                string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTSecret          string
	JWTIssuer          string
	AccessTTL          time.Duration
	ChallengeThreshold int
	LockTTL            time.Duration
	TwilioSID          string
	TwilioToken        string
	TwilioFrom         string
	CasbinModelPath    string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	lockTTL, err := time.ParseDuration(configFile.Challenge.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge lock TTL: %w", err)
	}

	threshold := configFile.Challenge.Threshold
	if threshold <= 0 {
		threshold = 2
	}

	return &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		DSN:                env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:          env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:      env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:            configFile.Redis.DB,
		JWTSecret:          env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:          configFile.JWT.Issuer,
		AccessTTL:          accTTL,
		ChallengeThreshold: threshold,
		LockTTL:            lockTTL,
		TwilioSID:          env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:        env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:         env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		CasbinModelPath:    configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
