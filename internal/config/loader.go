// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"

	"github.com/example/trip-tracker/internal/trip"
)

// Environment variable names.
const (
	EnvHTTPPort        = "TRIPTRACKER_HTTP_PORT"
	EnvLogLevel        = "TRIPTRACKER_LOG_LEVEL"
	EnvOutputDir       = "TRIPTRACKER_OUTPUT_DIR"
	EnvTemplatePath    = "TRIPTRACKER_TEMPLATE_PATH"
	EnvDefaultCity     = "TRIPTRACKER_DEFAULT_CITY"
	EnvDefaultOwners   = "TRIPTRACKER_DEFAULT_OWNERS"
	EnvDefaultMeetings = "TRIPTRACKER_DEFAULT_MEETINGS"
	EnvDefaultSeed     = "TRIPTRACKER_DEFAULT_SEED"
	EnvMaxUploadMB     = "TRIPTRACKER_MAX_UPLOAD_MB"
	EnvRateLimitRPS    = "TRIPTRACKER_RATE_LIMIT_RPS"
	EnvRateLimitBurst  = "TRIPTRACKER_RATE_LIMIT_BURST"
	EnvAWSRegion       = "AWS_REGION"
	EnvS3Bucket        = "TRIPTRACKER_S3_BUCKET"
	EnvPresignMinutes  = "TRIPTRACKER_S3_PRESIGN_MINUTES"
)

// ErrInvalidEnvironment is wrapped by the error Load returns for unparsable values.
var ErrInvalidEnvironment = errors.New("config: invalid environment values")

// Config captures environment driven configuration for the tracker binaries.
type Config struct {
	HTTPPort     int
	LogLevel     string
	OutputDir    string
	TemplatePath string

	DefaultCity     string
	DefaultOwners   []string
	DefaultMeetings int
	DefaultSeed     int64

	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int

	AWSRegion     string
	S3Bucket      string
	PresignExpiry time.Duration
}

// Defaults returns the configuration used when no variable is set.
func Defaults() Config {
	return Config{
		HTTPPort:        8080,
		LogLevel:        "info",
		OutputDir:       ".outputs",
		DefaultCity:     trip.DefaultCity,
		DefaultOwners:   trip.DefaultOwners(),
		DefaultMeetings: trip.DefaultMeetings,
		DefaultSeed:     trip.DefaultSeed,
		MaxUploadBytes:  20 << 20,
		RateLimitRPS:    2,
		RateLimitBurst:  5,
		PresignExpiry:   15 * time.Minute,
	}
}

// PublishingEnabled reports whether an S3 bucket is configured.
func (c Config) PublishingEnabled() bool {
	return c.S3Bucket != ""
}

// Load reads the given dotenv files (".env" when none are named; a missing file is
// ignored) and then parses the process environment over Defaults. Every unparsable
// variable is named in the returned error.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotenv(envFiles); err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	invalid := make([]string, 0, 2)

	if v := lookup(EnvHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, EnvHTTPPort)
		} else {
			cfg.HTTPPort = port
		}
	}

	if v := lookup(EnvLogLevel); v != "" {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(v)
		default:
			invalid = append(invalid, EnvLogLevel)
		}
	}

	if v := lookup(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	cfg.TemplatePath = lookup(EnvTemplatePath)

	if v, ok := os.LookupEnv(EnvDefaultCity); ok {
		// An explicitly blank city disables the HQ city preference.
		cfg.DefaultCity = strings.TrimSpace(v)
	}
	if v := lookup(EnvDefaultOwners); v != "" {
		if owners := trip.ParseOwners(v); len(owners) > 0 {
			cfg.DefaultOwners = owners
		}
	}

	if v := lookup(EnvDefaultMeetings); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			invalid = append(invalid, EnvDefaultMeetings)
		} else {
			cfg.DefaultMeetings = n
		}
	}

	if v := lookup(EnvDefaultSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			invalid = append(invalid, EnvDefaultSeed)
		} else {
			cfg.DefaultSeed = seed
		}
	}

	if v := lookup(EnvMaxUploadMB); v != "" {
		mb, err := strconv.Atoi(v)
		if err != nil || mb <= 0 {
			invalid = append(invalid, EnvMaxUploadMB)
		} else {
			cfg.MaxUploadBytes = int64(mb) << 20
		}
	}

	if v := lookup(EnvRateLimitRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			invalid = append(invalid, EnvRateLimitRPS)
		} else {
			cfg.RateLimitRPS = rps
		}
	}

	if v := lookup(EnvRateLimitBurst); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			invalid = append(invalid, EnvRateLimitBurst)
		} else {
			cfg.RateLimitBurst = burst
		}
	}

	cfg.AWSRegion = lookup(EnvAWSRegion)
	cfg.S3Bucket = lookup(EnvS3Bucket)

	if v := lookup(EnvPresignMinutes); v != "" {
		minutes, err := strconv.Atoi(v)
		// S3 presigned URLs are valid for at most seven days.
		if err != nil || minutes <= 0 || minutes > 7*24*60 {
			invalid = append(invalid, EnvPresignMinutes)
		} else {
			cfg.PresignExpiry = time.Duration(minutes) * time.Minute
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidEnvironment, strings.Join(invalid, ", "))
	}
	return cfg, nil
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return eris.Wrapf(err, "config: load %s", file)
		}
	}
	return nil
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
