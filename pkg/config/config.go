package config

import (
	"fmt"
	"time"
)

// Mode selects between development leniency and production strictness
// for the startup RLIMIT_NOFILE check (checkRlimit in cmd/skyd).
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

// ProtocolVersion selects the wire framing the server speaks.
type ProtocolVersion int

const (
	ProtocolV1 ProtocolVersion = 1
	ProtocolV2 ProtocolVersion = 2
)

const (
	DefaultInsecurePort = 2003
	DefaultSecurePort   = 2004
	DefaultMaxCon       = 50000
	originKeyLen        = 40
)

// TLSConfig wraps a pre-existing PEM certificate and key; skyd never
// issues or rotates certificates itself.
type TLSConfig struct {
	Key       string
	Chain     string
	Port      int
	Only      bool
	PassInput string
}

// BGSaveConfig controls the background flush scheduler.
type BGSaveConfig struct {
	Enabled bool
	Every   time.Duration
}

// SnapshotConfig controls the point-in-time snapshot scheduler.
type SnapshotConfig struct {
	Every    time.Duration
	AtMost   int
	Failsafe bool
}

// AuthConfig carries the origin key used to bootstrap the root user.
// An empty OriginKey disables auth entirely.
type AuthConfig struct {
	OriginKey string
}

// ConfigurationSet is the full set of knobs a skyd process is started
// with. Nothing in this package parses flags, environment variables,
// or config files -- that belongs to the caller assembling one of
// these (cmd/skyd takes it from cobra flags), per this package's
// narrow responsibility of validating values already gathered.
type ConfigurationSet struct {
	Host   string
	Port   int
	Noart  bool
	MaxCon int
	Mode   Mode
	Protocol ProtocolVersion

	BGSave   BGSaveConfig
	Snapshot SnapshotConfig
	TLS      *TLSConfig
	Auth     AuthConfig

	DataDirectory          string
	RestoreSourceDirectory string
}

// Default returns a ConfigurationSet with the documented defaults:
// insecure-only on port 2003, protocol 2, maxcon capped at 50000,
// bgsave enabled every 120s, snapshotting disabled.
func Default() ConfigurationSet {
	return ConfigurationSet{
		Host:     "127.0.0.1",
		Port:     DefaultInsecurePort,
		MaxCon:   DefaultMaxCon,
		Mode:     ModeDev,
		Protocol: ProtocolV2,
		BGSave: BGSaveConfig{
			Enabled: true,
			Every:   120 * time.Second,
		},
		DataDirectory: "data",
	}
}

// Validate checks a ConfigurationSet for internal consistency. It does
// not touch the filesystem or network; callers run it once at startup
// before acting on any of these values.
func (c *ConfigurationSet) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.MaxCon <= 0 {
		return fmt.Errorf("config: maxcon must be positive")
	}
	if c.MaxCon > DefaultMaxCon {
		return fmt.Errorf("config: maxcon %d exceeds the %d cap", c.MaxCon, DefaultMaxCon)
	}
	switch c.Mode {
	case ModeDev, ModeProd:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.Protocol {
	case ProtocolV1, ProtocolV2:
	default:
		return fmt.Errorf("config: unknown protocol version %d", c.Protocol)
	}
	if c.BGSave.Enabled && c.BGSave.Every <= 0 {
		return fmt.Errorf("config: bgsave.every must be positive when bgsave is enabled")
	}
	if c.Snapshot.Every > 0 {
		if c.Snapshot.AtMost <= 0 {
			return fmt.Errorf("config: snapshot.atmost must be positive when snapshotting is enabled")
		}
	}
	if c.TLS != nil {
		if c.TLS.Key == "" || c.TLS.Chain == "" {
			return fmt.Errorf("config: tls requires both key and chain paths")
		}
		if c.TLS.Port <= 0 || c.TLS.Port > 65535 {
			return fmt.Errorf("config: tls port %d out of range", c.TLS.Port)
		}
	}
	if c.Auth.OriginKey != "" {
		if err := validateOriginKey(c.Auth.OriginKey); err != nil {
			return err
		}
	}
	return nil
}

func validateOriginKey(key string) error {
	if len(key) != originKeyLen {
		return fmt.Errorf("config: auth.origin_key must be exactly %d characters, got %d", originKeyLen, len(key))
	}
	for _, r := range key {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			return fmt.Errorf("config: auth.origin_key must be ASCII alphanumeric")
		}
	}
	return nil
}
