package conf

import (
	"fmt"
	"time"
)

const (
	defaultVersion                 = 10
	defaultMaxRetries              = 5
	defaultGlobalRequestsPerSecond = 50
	defaultRequestTimeout          = 30 * time.Second
)

type Client struct {
	Token string `validate:"required"`
	// Version selects the API version path segment, by default 10.
	Version int
	// BaseUrl overrides the API origin, used by tests to point the
	// client at a fixture server. Leave empty in production.
	BaseUrl                 string
	MaxRetries              int
	GlobalRequestsPerSecond int
	RequestTimeoutInSec     int
}

func (c Client) GetVersion() int {
	if c.Version <= 0 {
		return defaultVersion
	}
	return c.Version
}

func (c Client) GetBaseUrl() string {
	if c.BaseUrl != "" {
		return c.BaseUrl
	}
	return fmt.Sprintf("https://discord.com/api/v%d", c.GetVersion())
}

func (c Client) GetMaxRetries() int {
	if c.MaxRetries <= 0 {
		return defaultMaxRetries
	}
	return c.MaxRetries
}

func (c Client) GetGlobalRequestsPerSecond() int {
	if c.GlobalRequestsPerSecond <= 0 {
		return defaultGlobalRequestsPerSecond
	}
	return c.GlobalRequestsPerSecond
}

func (c Client) GetRequestTimeout() time.Duration {
	if c.RequestTimeoutInSec <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutInSec) * time.Second
}
