package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Env variable names.
const (
	envHTTPPort   = "SERVICE_PORT_HTTP"
	envAuthSecret = "AUTH_SECRET"
	envTokenTTLMs = "TOKEN_TTL_MS"
)

const (
	defaultHTTPPort = 8080
	defaultTokenTTL = 24 * time.Hour
)

// Config holds the mock backend configuration: the HTTP listen port, the HMAC
// secret for issued tokens and the token lifetime.
type Config struct {
	HTTPPort   int
	AuthSecret []byte
	TokenTTL   time.Duration
}

// LoadConfig builds backend config from environment variables. AUTH_SECRET is
// required; SERVICE_PORT_HTTP defaults to 8080; TOKEN_TTL_MS defaults to 24h
// and must be positive when set.
func LoadConfig() (*Config, error) {
	secret := strings.TrimSpace(os.Getenv(envAuthSecret))
	if secret == "" {
		return nil, fmt.Errorf("%s is required", envAuthSecret)
	}

	port := defaultHTTPPort
	if portStr := strings.TrimSpace(os.Getenv(envHTTPPort)); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("%s must be a valid port, got %q", envHTTPPort, portStr)
		}
		port = p
	}

	ttl := defaultTokenTTL
	if ttlStr := strings.TrimSpace(os.Getenv(envTokenTTLMs)); ttlStr != "" {
		ttlMs, err := strconv.Atoi(ttlStr)
		if err != nil || ttlMs <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer (ms), got %q", envTokenTTLMs, ttlStr)
		}
		ttl = time.Duration(ttlMs) * time.Millisecond
	}

	return &Config{
		HTTPPort:   port,
		AuthSecret: []byte(secret),
		TokenTTL:   ttl,
	}, nil
}
