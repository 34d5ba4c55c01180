package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
)

type Settings struct {
	UploadDir    string
	DownloadDir  string
	ServerPort   int
	ServerDomain string

	ExpiryHours   int
	SweepInterval time.Duration
	ClearOnStart  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	StagingBucket  string

	JWTPublicKey      string
	LocalCacheSize    int
	RateLimitRPS      float64
	RateLimitBurst    int
	WorkerConcurrency int
}

// TTL is the lifetime given to newly ingested files.
func (s *Settings) TTL() time.Duration {
	return time.Duration(s.ExpiryHours) * time.Hour
}

// QueueEnabled reports whether staged ingestion can run.
func (s *Settings) QueueEnabled() bool {
	return s.RedisAddr != "" && s.MinioEndpoint != ""
}

func Load() (*Settings, error) {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		logger.Debug(ctx, "No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		logger.Debugf(ctx, "could not read .env file: %v", err)
	}

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("DOWNLOAD_DIR", "./downloads")
	v.SetDefault("FILE_SERVER_PORT", 3000)
	v.SetDefault("FILE_SERVER_DOMAIN", "auto")
	v.SetDefault("FILE_EXPIRY_HOURS", 24)
	v.SetDefault("SWEEP_INTERVAL", "1h")
	v.SetDefault("CLEAR_ON_START", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("STAGING_BUCKET", "staging")
	v.SetDefault("LOCAL_CACHE_SIZE", 256)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)
	v.SetDefault("WORKER_CONCURRENCY", 4)

	s := &Settings{
		UploadDir:         v.GetString("UPLOAD_DIR"),
		DownloadDir:       v.GetString("DOWNLOAD_DIR"),
		ServerPort:        v.GetInt("FILE_SERVER_PORT"),
		ServerDomain:      v.GetString("FILE_SERVER_DOMAIN"),
		ExpiryHours:       v.GetInt("FILE_EXPIRY_HOURS"),
		SweepInterval:     v.GetDuration("SWEEP_INTERVAL"),
		ClearOnStart:      v.GetBool("CLEAR_ON_START"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		MinioEndpoint:     v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:    v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:    v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:       v.GetBool("MINIO_USE_SSL"),
		StagingBucket:     v.GetString("STAGING_BUCKET"),
		JWTPublicKey:      strings.ReplaceAll(v.GetString("JWT_PUBLIC_KEY"), `\n`, "\n"),
		LocalCacheSize:    v.GetInt("LOCAL_CACHE_SIZE"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if s.DownloadDir == "" {
		return fmt.Errorf("DOWNLOAD_DIR is required")
	}
	if s.ServerPort <= 0 || s.ServerPort > 65535 {
		return fmt.Errorf("FILE_SERVER_PORT must be between 1 and 65535")
	}
	if s.ExpiryHours <= 0 {
		return fmt.Errorf("FILE_EXPIRY_HOURS must be a positive number of hours")
	}
	if s.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be a positive duration")
	}
	if s.MinioEndpoint != "" {
		if s.MinioAccessKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY is required")
		}
		if s.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_SECRET_KEY is required")
		}
		if s.StagingBucket == "" {
			return fmt.Errorf("STAGING_BUCKET is required")
		}
	}
	if s.LocalCacheSize <= 0 {
		return fmt.Errorf("LOCAL_CACHE_SIZE must be positive")
	}
	if s.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if s.WorkerConcurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}
	return nil
}
