package config

type Config interface {
	EnvConfig
	UpstreamConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type UpstreamConfig interface {
	GetAuthAPIURL() string
	GetUpstreamTimeoutSeconds() int
}

type SessionConfig interface {
	GetSessionTTLMinutes() int
	GetFlowCookieKey() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
