// Package config loads application configuration from environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

// MinSessionSecretLength is the minimum length, in bytes, of SOCIALPANEL_SESSION_SECRET.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	SecretKey     []byte // 32-byte AES-256 key; nil disables the credential store.
	SessionSecret []byte
	AuthTimeout   time.Duration

	YouTube YouTubeConfig
	Reddit  RedditConfig
}

// YouTubeConfig holds the video platform settings.
type YouTubeConfig struct {
	ClientSecretPath string
	ClientSecret     string
	AuthFlow         model.AuthFlowKind
	Token            string
	CallbackAddr     string
}

// RedditConfig holds the forum platform settings.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
	SubmitMode   model.SubmitMode
}

// VideoCredentials returns the configured video platform credentials.
func (c *Config) VideoCredentials() model.VideoCredentials {
	return model.VideoCredentials{
		ClientSecretPath: c.YouTube.ClientSecretPath,
		ClientSecretJSON: c.YouTube.ClientSecret,
		Token:            c.YouTube.Token,
	}
}

// ForumCredentials returns the configured forum platform credentials.
func (c *Config) ForumCredentials() model.ForumCredentials {
	return model.ForumCredentials{
		ClientID:     c.Reddit.ClientID,
		ClientSecret: c.Reddit.ClientSecret,
		UserAgent:    c.Reddit.UserAgent,
		Username:     c.Reddit.Username,
		Password:     c.Reddit.Password,
	}
}

// HasSecretKey reports whether the encrypted credential store is enabled.
func (c *Config) HasSecretKey() bool {
	return c.SecretKey != nil
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables already set are not overridden, and a missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: SOCIALPANEL_LISTEN_ADDR (127.0.0.1:8080),
// SOCIALPANEL_DB_PATH (socialpanel.db), SOCIALPANEL_AUTH_TIMEOUT (5m),
// YOUTUBE_CLIENT_SECRET_PATH (client_secret.json), YOUTUBE_AUTH_FLOW (interactive),
// YOUTUBE_CALLBACK_ADDR (127.0.0.1:0), REDDIT_USER_AGENT (socialpanel/1.0),
// REDDIT_SUBMIT_MODE (flair). Without SOCIALPANEL_SESSION_SECRET a random
// per-process secret is generated, so sessions do not survive a restart.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:  envOr("SOCIALPANEL_LISTEN_ADDR", "127.0.0.1:8080"),
		DBPath:      envOr("SOCIALPANEL_DB_PATH", "socialpanel.db"),
		AuthTimeout: 5 * time.Minute,
		YouTube: YouTubeConfig{
			ClientSecretPath: envOr("YOUTUBE_CLIENT_SECRET_PATH", "client_secret.json"),
			ClientSecret:     os.Getenv("YOUTUBE_CLIENT_SECRET"),
			AuthFlow:         model.AuthFlowInteractive,
			Token:            os.Getenv("YOUTUBE_TOKEN"),
			CallbackAddr:     envOr("YOUTUBE_CALLBACK_ADDR", "127.0.0.1:0"),
		},
		Reddit: RedditConfig{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			UserAgent:    envOr("REDDIT_USER_AGENT", "socialpanel/1.0"),
			Username:     os.Getenv("REDDIT_USERNAME"),
			Password:     os.Getenv("REDDIT_PASSWORD"),
			SubmitMode:   model.SubmitModeFlair,
		},
	}

	if v, ok := os.LookupEnv("SOCIALPANEL_AUTH_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SOCIALPANEL_AUTH_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SOCIALPANEL_AUTH_TIMEOUT must be positive, got %s", parsed)
		}
		cfg.AuthTimeout = parsed
	}

	if v := os.Getenv("SOCIALPANEL_SECRET_KEY"); v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("SOCIALPANEL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("SOCIALPANEL_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(key))
		}
		cfg.SecretKey = key
	}

	if v := os.Getenv("SOCIALPANEL_SESSION_SECRET"); v != "" {
		if len(v) < MinSessionSecretLength {
			return nil, fmt.Errorf("SOCIALPANEL_SESSION_SECRET must be at least %d bytes, got %d", MinSessionSecretLength, len(v))
		}
		cfg.SessionSecret = []byte(v)
	} else {
		cfg.SessionSecret = make([]byte, MinSessionSecretLength)
		if _, err := rand.Read(cfg.SessionSecret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}

	if v, ok := os.LookupEnv("YOUTUBE_AUTH_FLOW"); ok && v != "" {
		switch flow := model.AuthFlowKind(v); flow {
		case model.AuthFlowInteractive, model.AuthFlowToken:
			cfg.YouTube.AuthFlow = flow
		default:
			return nil, fmt.Errorf("YOUTUBE_AUTH_FLOW must be %q or %q, got %q",
				model.AuthFlowInteractive, model.AuthFlowToken, v)
		}
	}

	if v, ok := os.LookupEnv("REDDIT_SUBMIT_MODE"); ok && v != "" {
		switch mode := model.SubmitMode(v); mode {
		case model.SubmitModeFlair, model.SubmitModePlain:
			cfg.Reddit.SubmitMode = mode
		default:
			return nil, fmt.Errorf("REDDIT_SUBMIT_MODE must be %q or %q, got %q",
				model.SubmitModeFlair, model.SubmitModePlain, v)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
