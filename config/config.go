// Package config loads the gateway's environment-variable contract. No
// config file is supported; every setting is environment-driven, matching
// how the reference deployment is provisioned.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"git.tatikoma.dev/corpix/notify/errors"
)

const (
	EnvInternalEventToken     = "INTERNAL_EVENT_TOKEN"
	EnvNATSHost               = "NATS_HOST"
	EnvNATSPort               = "NATS_PORT"
	EnvEventService           = "EVENT_SERVICE"
	EnvAuthzService           = "AUTHZ_SERVICE"
	EnvInternalEventServerHost = "INTERNAL_EVENT_SERVER_HOST"
	EnvPublicEventServerHost  = "PUBLIC_EVENT_SERVER_HOST"
	EnvResourceInfoServerHost = "RESOURCE_INFO_SERVER_HOST"
	EnvLogLevel               = "LOG_LEVEL"
	EnvPullExpiry             = "PULL_EXPIRY"
	EnvPoolSize               = "POOL_SIZE"

	DefaultLogLevel   = "info"
	DefaultPullExpiry = 250 * time.Millisecond
)

// StreamName is the one pre-existing persistent stream the gateway expects;
// it only creates consumers on it, never the stream itself.
const StreamName = "STORAGE_UPDATES"

// Config is the process's environment-derived configuration. It satisfies
// app.Config.
type Config struct {
	InternalEventToken string

	NATSHost string
	NATSPort int

	EventService string
	AuthzService string

	InternalEventServerHost string
	PublicEventServerHost   string
	ResourceInfoServerHost  string

	LogLevel   string
	PullExpiry time.Duration
	PoolSize   int
}

// NATSURL is the dial address the bus adapter connects to.
func (c *Config) NATSURL() string {
	return fmt.Sprintf("nats://%s:%d", c.NATSHost, c.NATSPort)
}

func requireEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", errors.Errorf("missing required environment variable %s", key)
	}
	return v, nil
}

// FromEnv populates c from the process environment. Any missing required
// variable aborts with an error; optional variables fall back to their
// documented defaults.
func (c *Config) FromEnv() error {
	var err error

	if c.InternalEventToken, err = requireEnv(EnvInternalEventToken); err != nil {
		return err
	}
	if c.NATSHost, err = requireEnv(EnvNATSHost); err != nil {
		return err
	}

	natsPort, err := requireEnv(EnvNATSPort)
	if err != nil {
		return err
	}
	c.NATSPort, err = strconv.Atoi(natsPort)
	if err != nil {
		return errors.Wrapf(err, "invalid %s %q", EnvNATSPort, natsPort)
	}

	if c.EventService, err = requireEnv(EnvEventService); err != nil {
		return err
	}
	if c.AuthzService, err = requireEnv(EnvAuthzService); err != nil {
		return err
	}
	if c.InternalEventServerHost, err = requireEnv(EnvInternalEventServerHost); err != nil {
		return err
	}
	if c.PublicEventServerHost, err = requireEnv(EnvPublicEventServerHost); err != nil {
		return err
	}
	if c.ResourceInfoServerHost, err = requireEnv(EnvResourceInfoServerHost); err != nil {
		return err
	}

	c.LogLevel = DefaultLogLevel
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	c.PullExpiry = DefaultPullExpiry
	if v := os.Getenv(EnvPullExpiry); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s %q", EnvPullExpiry, v)
		}
		c.PullExpiry = d
	}

	c.PoolSize = runtime.NumCPU()
	if v := os.Getenv(EnvPoolSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s %q", EnvPoolSize, v)
		}
		c.PoolSize = n
	}

	return nil
}
