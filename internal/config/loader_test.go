package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allKeys = []string{
	EnvHTTPPort, EnvLogLevel, EnvOutputDir, EnvTemplatePath, EnvDefaultCity,
	EnvDefaultOwners, EnvDefaultMeetings, EnvDefaultSeed, EnvMaxUploadMB,
	EnvRateLimitRPS, EnvRateLimitBurst, EnvAWSRegion, EnvS3Bucket, EnvPresignMinutes,
	"TRIPTRACKER_TEST_FROM_DOTENV",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoader_ParseEnvironment(t *testing.T) {
	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(missingEnvFile(t))
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.DefaultCity != "Riyadh" || cfg.DefaultMeetings != 12 || cfg.DefaultSeed != 42 {
			t.Fatalf("unexpected trip defaults: %+v", cfg)
		}
		if len(cfg.DefaultOwners) != 2 || cfg.DefaultOwners[0] != "Jason" {
			t.Fatalf("unexpected default owners: %v", cfg.DefaultOwners)
		}
		if cfg.MaxUploadBytes != 20<<20 {
			t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes)
		}
		if cfg.PresignExpiry != 15*time.Minute {
			t.Fatalf("unexpected presign expiry: %v", cfg.PresignExpiry)
		}
		if cfg.PublishingEnabled() {
			t.Fatalf("publishing should be disabled without a bucket")
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvHTTPPort, "9090")
		t.Setenv(EnvLogLevel, "DEBUG")
		t.Setenv(EnvDefaultCity, "")
		t.Setenv(EnvDefaultOwners, " Ann , , Bo ")
		t.Setenv(EnvDefaultSeed, "-7")
		t.Setenv(EnvS3Bucket, "trackers")
		t.Setenv(EnvPresignMinutes, "60")

		cfg, err := Load(missingEnvFile(t))
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 9090 || cfg.LogLevel != "debug" {
			t.Fatalf("unexpected server config: %+v", cfg)
		}
		if cfg.DefaultCity != "" {
			t.Fatalf("explicitly blank city should be kept, got %q", cfg.DefaultCity)
		}
		if len(cfg.DefaultOwners) != 2 || cfg.DefaultOwners[1] != "Bo" {
			t.Fatalf("unexpected owners: %v", cfg.DefaultOwners)
		}
		if cfg.DefaultSeed != -7 {
			t.Fatalf("unexpected seed: %d", cfg.DefaultSeed)
		}
		if !cfg.PublishingEnabled() || cfg.PresignExpiry != time.Hour {
			t.Fatalf("unexpected storage config: %+v", cfg)
		}
	})

	t.Run("names every invalid variable", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvHTTPPort, "abc")
		t.Setenv(EnvDefaultMeetings, "0")
		t.Setenv(EnvPresignMinutes, "20000")

		_, err := Load(missingEnvFile(t))
		if !errors.Is(err, ErrInvalidEnvironment) {
			t.Fatalf("expected ErrInvalidEnvironment, got %v", err)
		}
		expected := "config: invalid environment values: TRIPTRACKER_HTTP_PORT, TRIPTRACKER_DEFAULT_MEETINGS, TRIPTRACKER_S3_PRESIGN_MINUTES"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("loads dotenv files without overriding the environment", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "test.env")
		content := "TRIPTRACKER_HTTP_PORT=7070\nTRIPTRACKER_DEFAULT_MEETINGS=5\nTRIPTRACKER_TEST_FROM_DOTENV=1\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		t.Setenv(EnvHTTPPort, "6060")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 6060 {
			t.Fatalf("environment should win over dotenv, got %d", cfg.HTTPPort)
		}
		if cfg.DefaultMeetings != 5 {
			t.Fatalf("expected dotenv meetings 5, got %d", cfg.DefaultMeetings)
		}
	})
}
