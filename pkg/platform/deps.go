package platform

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/chatwootops/chatwootctl/pkg/execute"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	dockerInstallScriptURL = "https://get.docker.com"
	composeBinaryPath      = "/usr/local/bin/docker-compose"
	composeVersionPin      = "v2.24.6"
)

// EnsureDocker makes sure the docker CLI exists, installing it when missing.
// Idempotent: a present binary short-circuits. Exactly one install attempt is
// made; if docker is still absent afterwards the error is fatal to the caller.
func EnsureDocker(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	if dockerPresent(ctx) {
		logger.Debug("Docker already installed")
		return nil
	}

	logger.Info("Docker not found, attempting installation")
	if pm, err := DetectPackageManager(ctx); err == nil {
		if err := pm.Install(ctx, pm.DockerPackage); err != nil {
			logger.Warn("Package manager install failed, falling back to vendor script",
				zap.String("manager", pm.Name), zap.Error(err))
			if err := installDockerFromScript(ctx); err != nil {
				return err
			}
		}
	} else {
		logger.Warn("No package manager available, falling back to vendor script", zap.Error(err))
		if err := installDockerFromScript(ctx); err != nil {
			return err
		}
	}

	if !dockerPresent(ctx) {
		return fmt.Errorf("docker is still not available after installation attempt")
	}
	logger.Info("Docker installed")
	return nil
}

// EnsureCompose makes sure a compose tool exists: either the docker compose
// plugin or a standalone docker-compose binary. Missing both, it tries the
// package manager once and then a direct binary download.
func EnsureCompose(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	if composePresent(ctx) {
		logger.Debug("Compose tool already installed")
		return nil
	}

	logger.Info("Compose tool not found, attempting installation")
	if pm, err := DetectPackageManager(ctx); err == nil {
		if err := pm.Install(ctx, pm.ComposePackage); err != nil {
			logger.Warn("Package manager install failed, falling back to binary download",
				zap.String("manager", pm.Name), zap.Error(err))
			if err := downloadComposeBinary(ctx); err != nil {
				return err
			}
		}
	} else {
		if err := downloadComposeBinary(ctx); err != nil {
			return err
		}
	}

	if !composePresent(ctx) {
		return fmt.Errorf("compose tool is still not available after installation attempt")
	}
	logger.Info("Compose tool installed")
	return nil
}

func dockerPresent(ctx context.Context) bool {
	_, err := execute.Run(ctx, execute.Options{
		Command: "docker",
		Args:    []string{"--version"},
		Capture: true,
		Timeout: 10 * time.Second,
	})
	return err == nil
}

func composePresent(ctx context.Context) bool {
	if _, err := execute.Run(ctx, execute.Options{
		Command: "docker",
		Args:    []string{"compose", "version"},
		Capture: true,
		Timeout: 10 * time.Second,
	}); err == nil {
		return true
	}
	_, err := execute.Run(ctx, execute.Options{
		Command: "docker-compose",
		Args:    []string{"version"},
		Capture: true,
		Timeout: 10 * time.Second,
	})
	return err == nil
}

// installDockerFromScript fetches and runs the vendor convenience script.
func installDockerFromScript(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)
	logger.Info("Installing Docker via vendor script", zap.String("url", dockerInstallScriptURL))

	script, err := execute.Run(ctx, execute.Options{
		Command: "curl",
		Args:    []string{"-fsSL", dockerInstallScriptURL},
		Capture: true,
		Timeout: 2 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("failed to download docker install script: %w", err)
	}

	tmp, err := os.CreateTemp("", "get-docker-*.sh")
	if err != nil {
		return fmt.Errorf("failed to create temp script: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(script); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write install script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close install script: %w", err)
	}

	if _, err := execute.Run(ctx, execute.Options{
		Command: "sh",
		Args:    []string{tmp.Name()},
		Timeout: 10 * time.Minute,
	}); err != nil {
		return fmt.Errorf("docker install script failed: %w", err)
	}
	return nil
}

// downloadComposeBinary fetches a pinned standalone docker-compose release.
func downloadComposeBinary(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	url := fmt.Sprintf("https://github.com/docker/compose/releases/download/%s/docker-compose-%s-%s",
		composeVersionPin, runtime.GOOS, composeArch())
	logger.Info("Downloading compose binary", zap.String("url", url))

	if _, err := execute.Run(ctx, execute.Options{
		Command: "curl",
		Args:    []string{"-fsSL", "-o", composeBinaryPath, url},
		Timeout: 5 * time.Minute,
	}); err != nil {
		return fmt.Errorf("failed to download docker-compose binary: %w", err)
	}
	if err := os.Chmod(composeBinaryPath, 0o755); err != nil {
		return fmt.Errorf("failed to mark docker-compose executable: %w", err)
	}
	return nil
}

func composeArch() string {
	// Compose release artifacts use uname-style architecture names.
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return runtime.GOARCH
	}
}

// DependencySummary reports which required host tools are present, for the
// status display.
func DependencySummary(ctx context.Context) string {
	var parts []string
	if dockerPresent(ctx) {
		parts = append(parts, "docker: ok")
	} else {
		parts = append(parts, "docker: missing")
	}
	if composePresent(ctx) {
		parts = append(parts, "compose: ok")
	} else {
		parts = append(parts, "compose: missing")
	}
	return strings.Join(parts, ", ")
}
