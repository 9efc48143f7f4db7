package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"mediarelay/internal/adapters/scraper"
	"mediarelay/internal/core/domain"
)

const (
	DefaultPort         = 4000
	DefaultUploadDir    = "uploads"
	DefaultFFmpegPath   = "ffmpeg"
	DefaultPageTemplate = "https://upstream.example/movie/" + domain.IDPlaceholder
)

// Config is built once at startup and handed to every component.
type Config struct {
	Port                 int
	UploadDir            string
	FFmpegPath           string
	UpstreamPageTemplate string
	UpstreamUserAgent    string
	LogLevel             string
	LogFormat            string
	CORSAllowOrigins     []string
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load reads the configuration through getenv.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:                 DefaultPort,
		UploadDir:            envOr(getenv, "UPLOAD_DIR", DefaultUploadDir),
		FFmpegPath:           envOr(getenv, "FFMPEG_PATH", DefaultFFmpegPath),
		UpstreamPageTemplate: envOr(getenv, "UPSTREAM_PAGE_TEMPLATE", DefaultPageTemplate),
		UpstreamUserAgent:    envOr(getenv, "UPSTREAM_USER_AGENT", scraper.DefaultUserAgent),
		LogLevel:             strings.ToLower(envOr(getenv, "LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(envOr(getenv, "LOG_FORMAT", "text")),
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, errors.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if !strings.Contains(cfg.UpstreamPageTemplate, domain.IDPlaceholder) {
		return Config{}, errors.Errorf("UPSTREAM_PAGE_TEMPLATE must contain %s", domain.IDPlaceholder)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, errors.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	for _, o := range strings.Split(getenv("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
		}
	}

	return cfg, nil
}

func envOr(getenv func(string) string, k, def string) string {
	if v := strings.TrimSpace(getenv(k)); v != "" {
		return v
	}
	return def
}
