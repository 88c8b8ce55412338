package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	baseURLVar    = "BASE_URL"
	authAPIVar    = "AUTH_API_URL"
	sessionTTLVar = "SESSION_TTL_MINUTES"
	flowKeyVar    = "FLOW_COOKIE_KEY"
	timeoutVar    = "UPSTREAM_TIMEOUT_SECONDS"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ UpstreamConfig = EnvVars{}
var _ SessionConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Auth Portal")
}

// GetBaseURL returns the externally visible base URL of the portal itself
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

// GetAuthAPIURL returns the base URL of the remote credential service
func (EnvVars) GetAuthAPIURL() string {
	return GetEnv(authAPIVar, "http://localhost:9090")
}

func (EnvVars) GetUpstreamTimeoutSeconds() int {
	return GetEnvInt(timeoutVar, 15)
}

func (EnvVars) GetSessionTTLMinutes() int {
	return GetEnvInt(sessionTTLVar, 60)
}

// GetFlowCookieKey returns the authentication key for the flow-state cookie.
// The default is only suitable for local development.
func (EnvVars) GetFlowCookieKey() string {
	return GetEnv(flowKeyVar, "dev-only-flow-cookie-key-change-me")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
