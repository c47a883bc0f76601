// Package chatwoot implements the Chatwoot deployment itself: collecting
// settings, rendering the compose manifest, and driving the stack lifecycle.
//
// The package follows the Assess → Intervene → Evaluate pattern throughout:
// assess current filesystem/container state, perform the change, verify the
// result. There is deliberately no persisted state machine — whether an
// installation exists is derived from the filesystem alone (see Detect).
package chatwoot

import (
	"path/filepath"
	"strings"
)

// DefaultInstallDir is where the installation lives unless overridden.
const DefaultInstallDir = "/opt/chatwoot"

// DefaultPort is the host port mapped to the Chatwoot web service.
const DefaultPort = 6698

// railsInternalPort is the fixed port the application listens on in-container.
const railsInternalPort = 3000

// Config identifies one installation and the preset governing its prompts.
type Config struct {
	InstallDir string
	Preset     *Preset

	// SkipDependencyCheck bypasses the host dependency prober. Used by
	// tests; install always probes in production.
	SkipDependencyCheck bool
}

// NewConfig applies defaults for zero-valued fields.
func NewConfig(installDir string, preset *Preset) *Config {
	if installDir == "" {
		installDir = DefaultInstallDir
	}
	if preset == nil {
		preset = PresetStandard
	}
	return &Config{InstallDir: installDir, Preset: preset}
}

func (c *Config) EnvFile() string      { return filepath.Join(c.InstallDir, ".env") }
func (c *Config) ComposeFile() string  { return filepath.Join(c.InstallDir, "docker-compose.yaml") }
func (c *Config) PortMarker() string   { return filepath.Join(c.InstallDir, "port") }
func (c *Config) DomainMarker() string { return filepath.Join(c.InstallDir, "domain") }
func (c *Config) PostgresDir() string  { return filepath.Join(c.InstallDir, "postgres") }
func (c *Config) RedisDir() string     { return filepath.Join(c.InstallDir, "redis") }
func (c *Config) StorageDir() string   { return filepath.Join(c.InstallDir, "storage") }

// ProjectName is the compose project name derived from the install directory.
// Resource names (containers, network) are computed from it rather than
// hard-coded, so cleanup tracks directory renames.
func (c *Config) ProjectName() string {
	name := strings.ToLower(filepath.Base(c.InstallDir))
	// Compose project names are [a-z0-9_-]; squash anything else.
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// Settings is the operator-supplied part of the environment file.
type Settings struct {
	Domain           string
	Port             int
	PostgresPassword string
	RedisPassword    string
	SecretKeyBase    string
}
