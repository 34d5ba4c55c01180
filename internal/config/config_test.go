package config

import (
	"os"
	"testing"
	"time"
)

// isolate switches to an empty directory so no real .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.UploadDir != "./uploads" || cfg.DownloadDir != "./downloads" {
		t.Errorf("dirs = %q, %q", cfg.UploadDir, cfg.DownloadDir)
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort: expected 3000, got %d", cfg.ServerPort)
	}
	if cfg.ServerDomain != "auto" {
		t.Errorf("ServerDomain: expected auto, got %q", cfg.ServerDomain)
	}
	if cfg.TTL() != 24*time.Hour {
		t.Errorf("TTL: expected 24h, got %v", cfg.TTL())
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("SweepInterval: expected 1h, got %v", cfg.SweepInterval)
	}
	if cfg.ClearOnStart {
		t.Error("ClearOnStart should default to false")
	}
	if cfg.StagingBucket != "staging" || cfg.LocalCacheSize != 256 || cfg.WorkerConcurrency != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.QueueEnabled() {
		t.Error("queue should be disabled without redis and minio")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	isolate(t)

	env := map[string]string{
		"UPLOAD_DIR":         "/srv/files",
		"FILE_SERVER_PORT":   "8080",
		"FILE_SERVER_DOMAIN": "https://files.example.com",
		"FILE_EXPIRY_HOURS":  "6",
		"SWEEP_INTERVAL":     "15m",
		"CLEAR_ON_START":     "true",
		"REDIS_ADDR":         "localhost:6379",
		"MINIO_ENDPOINT":     "localhost:9000",
		"MINIO_ACCESS_KEY":   "ak",
		"MINIO_SECRET_KEY":   "sk",
		"JWT_PUBLIC_KEY":     `line1\nline2`,
		"RATE_LIMIT_RPS":     "2.5",
		"RATE_LIMIT_BURST":   "10",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.UploadDir != "/srv/files" || cfg.ServerPort != 8080 || cfg.ServerDomain != "https://files.example.com" {
		t.Errorf("unexpected server settings: %+v", cfg)
	}
	if cfg.TTL() != 6*time.Hour || cfg.SweepInterval != 15*time.Minute || !cfg.ClearOnStart {
		t.Errorf("unexpected expiry settings: %+v", cfg)
	}
	if cfg.JWTPublicKey != "line1\nline2" {
		t.Errorf("JWTPublicKey = %q", cfg.JWTPublicKey)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit = %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.QueueEnabled() {
		t.Error("queue should be enabled with redis and minio")
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("FILE_EXPIRY_HOURS=48\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("FILE_EXPIRY_HOURS") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ExpiryHours != 48 {
		t.Errorf("ExpiryHours = %d; want 48", cfg.ExpiryHours)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"zero ttl", map[string]string{"FILE_EXPIRY_HOURS": "0"}, "FILE_EXPIRY_HOURS must be a positive number of hours"},
		{"negative ttl", map[string]string{"FILE_EXPIRY_HOURS": "-3"}, "FILE_EXPIRY_HOURS must be a positive number of hours"},
		{"bad port", map[string]string{"FILE_SERVER_PORT": "70000"}, "FILE_SERVER_PORT must be between 1 and 65535"},
		{"bad sweep interval", map[string]string{"SWEEP_INTERVAL": "0s"}, "SWEEP_INTERVAL must be a positive duration"},
		{"minio without key", map[string]string{"MINIO_ENDPOINT": "localhost:9000"}, "MINIO_ACCESS_KEY is required"},
		{"minio without secret", map[string]string{"MINIO_ENDPOINT": "localhost:9000", "MINIO_ACCESS_KEY": "ak"}, "MINIO_SECRET_KEY is required"},
		{"negative rate", map[string]string{"RATE_LIMIT_RPS": "-1"}, "RATE_LIMIT_RPS must not be negative"},
		{"no workers", map[string]string{"WORKER_CONCURRENCY": "0"}, "WORKER_CONCURRENCY must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("error = %q; want %q", err.Error(), tc.wantErr)
			}
			if cfg != nil {
				t.Errorf("expected cfg nil on error, got %#v", cfg)
			}
		})
	}
}
