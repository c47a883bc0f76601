package platform

import (
	"context"
	"fmt"

	"github.com/chatwootops/chatwootctl/pkg/execute"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// PackageManager wraps one host package manager. Package names differ per
// distro family, so each manager carries the names it knows docker and the
// compose tool under.
type PackageManager struct {
	Name        string
	InstallArgs []string

	DockerPackage  string
	ComposePackage string
}

// managers in probe order. The first one present on PATH wins.
var managers = []PackageManager{
	{Name: "apt-get", InstallArgs: []string{"install", "-y"}, DockerPackage: "docker.io", ComposePackage: "docker-compose-plugin"},
	{Name: "dnf", InstallArgs: []string{"install", "-y"}, DockerPackage: "docker", ComposePackage: "docker-compose"},
	{Name: "yum", InstallArgs: []string{"install", "-y"}, DockerPackage: "docker", ComposePackage: "docker-compose"},
	{Name: "zypper", InstallArgs: []string{"install", "-y"}, DockerPackage: "docker", ComposePackage: "docker-compose"},
	{Name: "pacman", InstallArgs: []string{"-S", "--noconfirm"}, DockerPackage: "docker", ComposePackage: "docker-compose"},
}

// DetectPackageManager returns the first available package manager.
func DetectPackageManager(ctx context.Context) (*PackageManager, error) {
	logger := otelzap.Ctx(ctx)
	for i := range managers {
		if execute.LookPath(managers[i].Name) {
			logger.Debug("Detected package manager", zap.String("manager", managers[i].Name))
			return &managers[i], nil
		}
	}
	return nil, fmt.Errorf("no supported package manager found (tried apt-get, dnf, yum, zypper, pacman)")
}

// Install installs a single package. One attempt, no retry.
func (pm *PackageManager) Install(ctx context.Context, pkg string) error {
	logger := otelzap.Ctx(ctx)
	logger.Info("Installing package",
		zap.String("manager", pm.Name),
		zap.String("package", pkg))

	args := append(append([]string{}, pm.InstallArgs...), pkg)
	if _, err := execute.Run(ctx, execute.Options{
		Command: pm.Name,
		Args:    args,
	}); err != nil {
		return fmt.Errorf("failed to install %s via %s: %w", pkg, pm.Name, err)
	}
	return nil
}
