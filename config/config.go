package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories/postgres"
	"github.com/sirupsen/logrus"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	AuthSupabase = "supabase"
	AuthLocal    = "local"
)

type Config struct {
	Port string `env:"PORT,default=8080"`

	DBHost     string `env:"DB_HOST"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`

	AuthProvider    string `env:"AUTH_PROVIDER,default=supabase"`
	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`
	JWTSecret       string `env:"JWT_SECRET"`
	SecureCookies   bool   `env:"SECURE_COOKIES,default=false"`

	LocalCacheDir string `env:"LOCAL_CACHE_DIR,default=./.localstore"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	AWSRegion      string `env:"AWS_REGION,default=us-east-1"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION"`
	CloudFrontURL  string `env:"CLOUDFRONT_URL"`
	SESEmail       string `env:"SES_EMAIL"`
	SNSPlatformARN string `env:"SNS_PLATFORM_ARN"`
	Rekognition    bool   `env:"REKOGNITION_ENABLED,default=false"`

	CalorieUnitPolicy  string  `env:"CALORIE_UNIT_POLICY,default=strict"`
	TrendLabels        string  `env:"TREND_LABELS,default=static"`

	AuthRatePerMinute int `env:"AUTH_RATE_PER_MINUTE,default=20"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.AuthProvider {
	case AuthSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase auth provider")
		}
	case AuthLocal:
		if c.DBHost == "" {
			return errors.New("DB_HOST is required for the local auth provider")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// RemoteEnabled reports whether a remote store is configured.
func (c *Config) RemoteEnabled() bool { return c.DBHost != "" }

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func NewLogger(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// OpenDB connects to the remote Postgres store and migrates its tables.
func OpenDB(c *Config) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(c.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	tables := append(postgres.Models(), &models.User{})
	if err := db.AutoMigrate(tables...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

func OpenRedis(ctx context.Context, c *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
