package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mystorefront/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envBaseURL     = "BASE_URL"
	envConfigPath  = "CONFIG_PATH"
	envTimeoutMs   = "TIMEOUT_MS"
	envStoragePath = "STORAGE_PATH"
	envRedisAddr   = "REDIS_ADDR"
)

// defaultTimeout is the fixed request timeout when TIMEOUT_MS is not set.
const defaultTimeout = 5000 * time.Millisecond

// Config holds the full storefront shell configuration loaded by LoadConfig
// from environment variables and the YAML route table. BaseURL is the backend
// address (from BASE_URL); Timeout the HTTP client timeout; Routes the table
// from CONFIG_PATH; StoragePath the durable JSON file, unless RedisAddr is
// set, which switches the durable tier to redis.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Routes      domain.RouteConfig
	StoragePath string
	RedisAddr   string
}

// yamlConfig is the root struct for YAML unmarshalling; contains the default
// title and the route list.
type yamlConfig struct {
	DefaultTitle string      `yaml:"default_title"`
	Routes       []yamlRoute `yaml:"routes"`
}

// yamlRoute is one route entry: path (exact, ":param" pattern or "*"), name,
// title, redirect alias target, requires_auth.
type yamlRoute struct {
	Path         string `yaml:"path"`
	Name         string `yaml:"name"`
	Title        string `yaml:"title"`
	Redirect     string `yaml:"redirect"`
	RequiresAuth bool   `yaml:"requires_auth"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into
// yamlConfig.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds shell config from environment variables and the YAML
// route table at CONFIG_PATH. BASE_URL and CONFIG_PATH are required;
// TIMEOUT_MS defaults to 5000 and must be positive when set; STORAGE_PATH
// defaults to storefront-state.json; REDIS_ADDR is optional. CONFIG_PATH is
// converted to absolute; the route table is validated via
// domain.ValidateRouteConfig.
//
// Parameters: none (source — os.Getenv and the file at CONFIG_PATH).
//
// Returns: (*Config, nil) on success; (nil, error) on a missing required
// variable, an invalid timeout, a YAML load/parse error or an invalid route
// table.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv(envBaseURL)), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%s is required", envBaseURL)
	}

	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	routes := make([]domain.Route, 0, len(raw.Routes))
	for _, route := range raw.Routes {
		routes = append(routes, domain.Route{
			Path:         strings.TrimSpace(route.Path),
			Name:         strings.TrimSpace(route.Name),
			Title:        strings.TrimSpace(route.Title),
			Redirect:     strings.TrimSpace(route.Redirect),
			RequiresAuth: route.RequiresAuth,
		})
	}
	routeCfg := domain.RouteConfig{
		Routes:       routes,
		DefaultTitle: strings.TrimSpace(raw.DefaultTitle),
	}
	if err := domain.ValidateRouteConfig(routeCfg); err != nil {
		return nil, err
	}

	timeout := defaultTimeout
	if timeoutMsStr := strings.TrimSpace(os.Getenv(envTimeoutMs)); timeoutMsStr != "" {
		timeoutMs, err := strconv.Atoi(timeoutMsStr)
		if err != nil || timeoutMs <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer (ms), got %q", envTimeoutMs, timeoutMsStr)
		}
		timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	storagePath := strings.TrimSpace(os.Getenv(envStoragePath))
	if storagePath == "" {
		storagePath = "storefront-state.json"
	}

	return &Config{
		BaseURL:     baseURL,
		Timeout:     timeout,
		Routes:      routeCfg,
		StoragePath: storagePath,
		RedisAddr:   strings.TrimSpace(os.Getenv(envRedisAddr)),
	}, nil
}
