package chatwoot

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chatwootops/chatwootctl/pkg/crypto"
	"github.com/chatwootops/chatwootctl/pkg/interaction"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// EnsureSettings returns the installation's settings, collecting them from
// the operator only on first run.
//
// When the environment file already exists it is parsed and returned
// untouched: no prompting, no rewrite. The manifest is the only artifact
// regenerated on every install.
func EnsureSettings(ctx context.Context, cfg *Config, prompt *interaction.Prompter) (*Settings, error) {
	logger := otelzap.Ctx(ctx)

	if _, err := os.Stat(cfg.EnvFile()); err == nil {
		logger.Info("Settings file already exists, reusing",
			zap.String("file", cfg.EnvFile()))
		return LoadSettings(cfg)
	}

	settings, err := collectSettings(cfg, prompt)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.InstallDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create install directory: %w", err)
	}
	if err := writeSettingsFile(cfg, settings); err != nil {
		return nil, err
	}
	if err := writeMarkers(cfg, settings); err != nil {
		return nil, err
	}

	logger.Info("Settings written",
		zap.String("file", cfg.EnvFile()),
		zap.String("domain", settings.Domain),
		zap.Int("port", settings.Port))
	return settings, nil
}

// LoadSettings parses an existing installation's environment file and port
// marker.
func LoadSettings(cfg *Config) (*Settings, error) {
	env, err := godotenv.Read(cfg.EnvFile())
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", cfg.EnvFile(), err)
	}

	// Never guess the port: regenerating the manifest on a default would
	// silently move an installation configured on another port.
	port, err := ReadPortMarker(cfg)
	if err != nil {
		return nil, fmt.Errorf("installation at %s has an unreadable port marker: %w", cfg.InstallDir, err)
	}

	domain := strings.TrimPrefix(env["FRONTEND_URL"], "https://")

	return &Settings{
		Domain:           domain,
		Port:             port,
		PostgresPassword: env["POSTGRES_PASSWORD"],
		RedisPassword:    env["REDIS_PASSWORD"],
		SecretKeyBase:    env["SECRET_KEY_BASE"],
	}, nil
}

// ReadPortMarker returns the port stored in the single-line marker file.
func ReadPortMarker(cfg *Config) (int, error) {
	raw, err := os.ReadFile(cfg.PortMarker())
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("invalid port marker %q: %w", strings.TrimSpace(string(raw)), err)
	}
	return port, nil
}

// ReadDomainMarker returns the domain stored in the single-line marker file.
func ReadDomainMarker(cfg *Config) (string, error) {
	raw, err := os.ReadFile(cfg.DomainMarker())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func collectSettings(cfg *Config, prompt *interaction.Prompter) (*Settings, error) {
	preset := cfg.Preset

	var domain string
	var err error
	if preset.DefaultDomain == "" {
		domain, err = prompt.PromptRequired("Domain for Chatwoot (e.g. chat.example.com)")
	} else {
		domain, err = prompt.PromptWithDefault("Domain for Chatwoot", preset.DefaultDomain)
	}
	if err != nil {
		return nil, err
	}

	port, err := promptPort(prompt)
	if err != nil {
		return nil, err
	}

	pgPassword, err := promptOrGenerate(prompt, "Postgres password (enter to generate)", crypto.GeneratePassword)
	if err != nil {
		return nil, err
	}
	redisPassword, err := promptOrGenerate(prompt, "Redis password (enter to generate)", crypto.GeneratePassword)
	if err != nil {
		return nil, err
	}
	secret, err := promptOrGenerate(prompt, "Secret key base (enter to generate)", crypto.GenerateSecretKey)
	if err != nil {
		return nil, err
	}

	return &Settings{
		Domain:           domain,
		Port:             port,
		PostgresPassword: pgPassword,
		RedisPassword:    redisPassword,
		SecretKeyBase:    secret,
	}, nil
}

func promptPort(prompt *interaction.Prompter) (int, error) {
	for {
		raw, err := prompt.PromptWithDefault("Listen port", strconv.Itoa(DefaultPort))
		if err != nil {
			return 0, err
		}
		port, err := strconv.Atoi(raw)
		if err == nil && port > 0 && port < 65536 {
			return port, nil
		}
		fmt.Println("Invalid port, expected a number between 1 and 65535.")
	}
}

func promptOrGenerate(prompt *interaction.Prompter, label string, generate func() (string, error)) (string, error) {
	value, err := prompt.PromptSecret(label)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}
	return generate()
}

// writeSettingsFile persists the environment file with a fixed key order so
// repeated renders of identical settings are byte-identical.
func writeSettingsFile(cfg *Config, s *Settings) error {
	var b strings.Builder

	fmt.Fprintf(&b, `RAILS_ENV=production
NODE_ENV=production
INSTALLATION_ENV=docker
RAILS_LOG_TO_STDOUT=true
LOG_LEVEL=info
FRONTEND_URL=https://%s
BACKEND_URL=https://%s
SECRET_KEY_BASE=%s
ENABLE_ACCOUNT_SIGNUP=false
ACTIVE_STORAGE_SERVICE=local
POSTGRES_HOST=postgres
POSTGRES_PORT=5432
POSTGRES_USERNAME=postgres
POSTGRES_PASSWORD=%s
POSTGRES_DATABASE=chatwoot
REDIS_URL=redis://redis:6379
REDIS_PASSWORD=%s
`,
		s.Domain,
		s.Domain,
		s.SecretKeyBase,
		s.PostgresPassword,
		s.RedisPassword,
	)

	if cfg.Preset.MailPlaceholders {
		b.WriteString(`MAILER_SENDER_EMAIL=
SMTP_ADDRESS=
SMTP_PORT=587
SMTP_USERNAME=
SMTP_PASSWORD=
SMTP_AUTHENTICATION=plain
SMTP_ENABLE_STARTTLS_AUTO=true
`)
	}

	if err := os.WriteFile(cfg.EnvFile(), []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// writeMarkers persists the port and domain single-value files used for fast
// reads without parsing the whole settings file.
func writeMarkers(cfg *Config, s *Settings) error {
	if err := os.WriteFile(cfg.PortMarker(), []byte(strconv.Itoa(s.Port)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write port marker: %w", err)
	}
	if err := os.WriteFile(cfg.DomainMarker(), []byte(s.Domain+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write domain marker: %w", err)
	}
	return nil
}
