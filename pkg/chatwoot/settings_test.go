package chatwoot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chatwootops/chatwootctl/pkg/crypto"
	"github.com/chatwootops/chatwootctl/pkg/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrompter(input string) *interaction.Prompter {
	return interaction.NewPrompterWith(strings.NewReader(input), &bytes.Buffer{})
}

func testConfig(t *testing.T, preset *Preset) *Config {
	t.Helper()
	cfg := NewConfig(filepath.Join(t.TempDir(), "chatwoot"), preset)
	cfg.SkipDependencyCheck = true
	return cfg
}

func TestEnsureSettings_DefaultsEverywhere(t *testing.T) {
	cfg := testConfig(t, PresetStandard)

	// Empty answers for domain, port, both passwords and the secret key.
	s, err := EnsureSettings(context.Background(), cfg, testPrompter("\n\n\n\n\n"))
	require.NoError(t, err)

	assert.Equal(t, "chatwoot.example.com", s.Domain)
	assert.Equal(t, DefaultPort, s.Port)
	assert.Len(t, s.PostgresPassword, crypto.PasswordLength)
	assert.Len(t, s.RedisPassword, crypto.PasswordLength)
	assert.Len(t, s.SecretKeyBase, crypto.SecretLength)
	for _, forbidden := range []string{"=", "+", "/"} {
		assert.NotContains(t, s.PostgresPassword, forbidden)
		assert.NotContains(t, s.RedisPassword, forbidden)
	}

	info, err := os.Stat(cfg.EnvFile())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	port, err := ReadPortMarker(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, port)

	domain, err := ReadDomainMarker(cfg)
	require.NoError(t, err)
	assert.Equal(t, "chatwoot.example.com", domain)
}

func TestEnsureSettings_ExplicitValues(t *testing.T) {
	cfg := testConfig(t, PresetStrict)

	// Strict preset has no default domain; first empty answer is rejected.
	input := "\nchat.example.com\n8080\npg-secret\nredis-secret\nrails-secret\n"
	s, err := EnsureSettings(context.Background(), cfg, testPrompter(input))
	require.NoError(t, err)

	assert.Equal(t, "chat.example.com", s.Domain)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "pg-secret", s.PostgresPassword)
	assert.Equal(t, "redis-secret", s.RedisPassword)
	assert.Equal(t, "rails-secret", s.SecretKeyBase)

	env, err := os.ReadFile(cfg.EnvFile())
	require.NoError(t, err)
	assert.Contains(t, string(env), "FRONTEND_URL=https://chat.example.com\n")
	assert.Contains(t, string(env), "POSTGRES_PASSWORD=pg-secret\n")
	assert.NotContains(t, string(env), "SMTP_ADDRESS")
}

func TestEnsureSettings_InvalidPortReprompts(t *testing.T) {
	cfg := testConfig(t, PresetStandard)

	input := "\nnot-a-port\n70000\n9000\n\n\n\n"
	s, err := EnsureSettings(context.Background(), cfg, testPrompter(input))
	require.NoError(t, err)
	assert.Equal(t, 9000, s.Port)
}

func TestEnsureSettings_Idempotent(t *testing.T) {
	cfg := testConfig(t, PresetStandard)

	first, err := EnsureSettings(context.Background(), cfg, testPrompter("\n\n\n\n\n"))
	require.NoError(t, err)

	before, err := os.ReadFile(cfg.EnvFile())
	require.NoError(t, err)

	// Second run must not consume input or rewrite the file.
	second, err := EnsureSettings(context.Background(), cfg, testPrompter(""))
	require.NoError(t, err)

	after, err := os.ReadFile(cfg.EnvFile())
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, first.Domain, second.Domain)
	assert.Equal(t, first.Port, second.Port)
	assert.Equal(t, first.PostgresPassword, second.PostgresPassword)
	assert.Equal(t, first.RedisPassword, second.RedisPassword)
	assert.Equal(t, first.SecretKeyBase, second.SecretKeyBase)
}

func TestLoadSettings_MissingPortMarker(t *testing.T) {
	cfg := testConfig(t, PresetStandard)
	_, err := EnsureSettings(context.Background(), cfg, testPrompter("\n\n\n\n\n"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(cfg.PortMarker()))

	_, err = LoadSettings(cfg)
	assert.Error(t, err, "a lost port marker must not fall back to the default port")
}

func TestLoadSettings_CorruptPortMarker(t *testing.T) {
	cfg := testConfig(t, PresetStandard)
	_, err := EnsureSettings(context.Background(), cfg, testPrompter("\n\n\n\n\n"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.PortMarker(), []byte("banana\n"), 0o644))

	_, err = LoadSettings(cfg)
	assert.Error(t, err)
}

func TestEnsureSettings_FullPresetMailPlaceholders(t *testing.T) {
	cfg := testConfig(t, PresetFull)

	_, err := EnsureSettings(context.Background(), cfg, testPrompter("\n\n\n\n\n"))
	require.NoError(t, err)

	env, err := os.ReadFile(cfg.EnvFile())
	require.NoError(t, err)
	for _, key := range []string{
		"MAILER_SENDER_EMAIL=",
		"SMTP_ADDRESS=",
		"SMTP_PORT=587",
		"SMTP_AUTHENTICATION=plain",
		"SMTP_ENABLE_STARTTLS_AUTO=true",
	} {
		assert.Contains(t, string(env), key)
	}
}
