package chatwoot

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func installSettings(t *testing.T, cfg *Config) *Settings {
	t.Helper()
	input := "\nchat.example.com\n9443\npg-secret\nredis-secret\nrails-secret\n"
	s, err := EnsureSettings(context.Background(), cfg, testPrompter(input))
	require.NoError(t, err)
	return s
}

func TestRenderManifest(t *testing.T) {
	cfg := testConfig(t, PresetStrict)
	installSettings(t, cfg)

	require.NoError(t, RenderManifest(context.Background(), cfg))

	data, err := os.ReadFile(cfg.ComposeFile())
	require.NoError(t, err)

	var doc struct {
		Services map[string]struct {
			Image   string   `yaml:"image"`
			Ports   []string `yaml:"ports"`
			EnvFile string   `yaml:"env_file"`
		} `yaml:"services"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	require.Len(t, doc.Services, 4)
	for _, name := range manifestServices {
		assert.Contains(t, doc.Services, name)
	}

	assert.Equal(t, []string{"9443:3000"}, doc.Services["rails"].Ports)
	assert.Empty(t, doc.Services["sidekiq"].Ports)
	assert.Equal(t, doc.Services["rails"].Image, doc.Services["sidekiq"].Image)
	assert.Equal(t, ".env", doc.Services["redis"].EnvFile)

	// Postgres gets its password inline; redis reads it at start instead.
	assert.Contains(t, string(data), "POSTGRES_PASSWORD: pg-secret")
	assert.NotContains(t, string(data), "requirepass \"redis-secret\"")

	info, err := os.Stat(cfg.ComposeFile())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRenderManifest_Deterministic(t *testing.T) {
	cfg := testConfig(t, PresetStandard)
	installSettings(t, cfg)

	require.NoError(t, RenderManifest(context.Background(), cfg))
	first, err := os.ReadFile(cfg.ComposeFile())
	require.NoError(t, err)

	require.NoError(t, RenderManifest(context.Background(), cfg))
	second, err := os.ReadFile(cfg.ComposeFile())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderManifest_RequiresSettings(t *testing.T) {
	cfg := testConfig(t, PresetStandard)
	assert.Error(t, RenderManifest(context.Background(), cfg))
}
