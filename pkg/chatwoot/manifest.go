package chatwoot

import (
	"context"
	"fmt"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Pinned images. The same application image backs both the web and the
// background worker service.
const (
	imagePostgres = "postgres:12"
	imageRedis    = "redis:alpine"
	imageChatwoot = "chatwoot/chatwoot:v3.5.1"
)

// manifestServices are the compose services a rendered manifest must declare.
var manifestServices = []string{"postgres", "redis", "rails", "sidekiq"}

// RenderManifest writes the compose manifest for an installation. It is
// deterministic over the settings it reads, so re-running install over an
// unchanged environment file regenerates the file byte for byte.
//
// The Postgres password is interpolated literally; Redis reads its password
// from the environment file at container start instead.
func RenderManifest(ctx context.Context, cfg *Config) error {
	logger := otelzap.Ctx(ctx)

	settings, err := LoadSettings(cfg)
	if err != nil {
		return fmt.Errorf("cannot render manifest without settings: %w", err)
	}

	manifest := renderManifest(settings)
	if err := validateManifest([]byte(manifest)); err != nil {
		return err
	}

	if err := os.WriteFile(cfg.ComposeFile(), []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("failed to write compose manifest: %w", err)
	}

	logger.Info("Compose manifest written",
		zap.String("file", cfg.ComposeFile()),
		zap.Int("port", settings.Port))
	return nil
}

func renderManifest(s *Settings) string {
	return fmt.Sprintf(`services:
  postgres:
    image: %s
    restart: always
    environment:
      POSTGRES_DB: chatwoot
      POSTGRES_USER: postgres
      POSTGRES_PASSWORD: %s
    volumes:
      - ./postgres:/var/lib/postgresql/data

  redis:
    image: %s
    restart: always
    command: ["sh", "-c", "redis-server --requirepass \"$$REDIS_PASSWORD\""]
    env_file: .env
    volumes:
      - ./redis:/data

  rails:
    image: %s
    restart: always
    env_file: .env
    depends_on:
      - postgres
      - redis
    ports:
      - "%d:%d"
    volumes:
      - ./storage:/app/storage
    entrypoint: docker/entrypoints/rails.sh
    command: ["bundle", "exec", "rails", "s", "-p", "%d", "-b", "0.0.0.0"]

  sidekiq:
    image: %s
    restart: always
    env_file: .env
    depends_on:
      - postgres
      - redis
    volumes:
      - ./storage:/app/storage
    command: ["bundle", "exec", "sidekiq", "-C", "config/sidekiq.yml"]
`,
		imagePostgres,
		s.PostgresPassword,
		imageRedis,
		imageChatwoot,
		s.Port, railsInternalPort,
		railsInternalPort,
		imageChatwoot,
	)
}

// validateManifest parses the rendered document back and checks the expected
// services are present. Catches template regressions before anything is
// handed to the orchestrator.
func validateManifest(data []byte) error {
	var doc struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("rendered manifest is not valid YAML: %w", err)
	}
	for _, name := range manifestServices {
		svc, ok := doc.Services[name]
		if !ok {
			return fmt.Errorf("rendered manifest is missing service %q", name)
		}
		if svc.Image == "" {
			return fmt.Errorf("rendered manifest service %q has no image", name)
		}
	}
	return nil
}
