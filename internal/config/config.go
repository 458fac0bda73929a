// Package config resolves the formbuilder CLI settings from defaults, an
// optional formbuilder.yaml, an optional .env file and the environment, in
// that order of precedence (later wins).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath    = "formbuilder.yaml"
	DefaultEnvFile = ".env"
)

// Environment variable names.
const (
	EnvOrigin       = "FORMBUILDER_ORIGIN"
	EnvRedisURL     = "FORMBUILDER_REDIS_URL"
	EnvDocument     = "FORMBUILDER_DOCUMENT"
	EnvFormID       = "FORMBUILDER_FORM_ID"
	EnvRenderer     = "FORMBUILDER_RENDERER"
	EnvTheme        = "FORMBUILDER_THEME"
	EnvThemeVariant = "FORMBUILDER_THEME_VARIANT"
	EnvResponses    = "FORMBUILDER_RESPONSES"
)

// Response sources.
const (
	ResponsesMock   = "mock"
	ResponsesMemory = "memory"
	ResponsesRedis  = "redis"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Origin is the scheme and host share links are built on.
	Origin string `yaml:"origin"`
	// RedisURL enables the Redis share and response stores when set.
	RedisURL string `yaml:"redis_url"`
	// Document is the path of the form document the CLI edits.
	Document string `yaml:"document"`
	// FormID identifies the form in share links and response stores.
	FormID       string `yaml:"form_id"`
	Renderer     string `yaml:"renderer"`
	Theme        string `yaml:"theme"`
	ThemeVariant string `yaml:"theme_variant"`
	// Responses selects where `responses` reads from: mock, memory or redis.
	Responses string `yaml:"responses"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Origin:    "http://localhost:8080",
		Document:  "form.yaml",
		FormID:    "1",
		Renderer:  "vanilla",
		Responses: ResponsesMock,
	}
}

// LoadOptions tunes Load.
type LoadOptions struct {
	// Path of the YAML file. Empty means DefaultPath, which may be absent;
	// an explicit path must exist.
	Path string
	// EnvFile is read with godotenv when present. Empty means DefaultEnvFile.
	EnvFile string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := loadFile(path, explicit, &cfg); err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	overlay(&cfg, func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, explicit bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return values, nil
}

func overlay(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	set(EnvOrigin, &cfg.Origin)
	set(EnvRedisURL, &cfg.RedisURL)
	set(EnvDocument, &cfg.Document)
	set(EnvFormID, &cfg.FormID)
	set(EnvRenderer, &cfg.Renderer)
	set(EnvTheme, &cfg.Theme)
	set(EnvThemeVariant, &cfg.ThemeVariant)
	set(EnvResponses, &cfg.Responses)
}

// Validate checks the settings every command relies on.
func (c Config) Validate() error {
	origin, err := url.Parse(c.Origin)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("config: origin %q must be an absolute URL", c.Origin)
	}
	if strings.TrimSpace(c.Document) == "" {
		return errors.New("config: document path is required")
	}
	if strings.TrimSpace(c.FormID) == "" {
		return errors.New("config: form id is required")
	}
	if strings.TrimSpace(c.Renderer) == "" {
		return errors.New("config: renderer is required")
	}
	switch c.Responses {
	case ResponsesMock, ResponsesMemory:
	case ResponsesRedis:
		if c.RedisURL == "" {
			return errors.New("config: redis responses need a redis url")
		}
	default:
		return fmt.Errorf("config: unknown responses source %q", c.Responses)
	}
	return nil
}
