package chatwoot

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/chatwootops/chatwootctl/pkg/container"
	"github.com/chatwootops/chatwootctl/pkg/cwerr"
	"github.com/chatwootops/chatwootctl/pkg/interaction"
	"github.com/chatwootops/chatwootctl/pkg/platform"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Detect reports whether an installation exists at installDir. The
// environment file is the single source of truth; there is no separate state
// database to drift out of sync.
func Detect(installDir string) bool {
	_, err := os.Stat(filepath.Join(installDir, ".env"))
	return err == nil
}

// Installer drives the lifecycle of one installation.
type Installer struct {
	cfg    *Config
	orch   container.Orchestrator
	prompt *interaction.Prompter
}

// NewInstaller wires an Installer. The orchestrator is injected so tests can
// substitute a fake.
func NewInstaller(cfg *Config, orch container.Orchestrator, prompt *interaction.Prompter) *Installer {
	return &Installer{cfg: cfg, orch: orch, prompt: prompt}
}

// Install brings the stack up. Safe to re-run: existing settings are reused,
// the manifest is regenerated, the database is only bootstrapped once, and
// compose up converges already-running services.
func (i *Installer) Install(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	// Assess
	if !i.cfg.SkipDependencyCheck {
		if err := platform.EnsureDocker(ctx); err != nil {
			return err
		}
		if err := platform.EnsureCompose(ctx); err != nil {
			return err
		}
		if err := container.PingDaemon(ctx); err != nil {
			return cwerr.NewUserError("docker daemon is not responding, is the docker service running? (%v)", err)
		}
	}

	// Intervene
	settings, err := EnsureSettings(ctx, i.cfg, i.prompt)
	if err != nil {
		return err
	}
	if err := i.ensureDataDirs(); err != nil {
		return err
	}
	if err := RenderManifest(ctx, i.cfg); err != nil {
		return err
	}

	if i.needsBootstrap() {
		logger.Info("Preparing database, this runs once and can take a few minutes")
		if err := i.orch.RunOnce(ctx, "rails", "bundle", "exec", "rails", "db:chatwoot_prepare"); err != nil {
			return fmt.Errorf("database preparation failed: %w", err)
		}
	} else {
		logger.Info("Database already prepared, skipping bootstrap")
	}

	if err := i.orch.Up(ctx); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}

	// Evaluate
	logger.Info("Chatwoot is up",
		zap.String("install_dir", i.cfg.InstallDir),
		zap.Int("port", settings.Port),
		zap.String("domain", settings.Domain))
	fmt.Printf("\n✓ Chatwoot is running.\n")
	fmt.Printf("  Local:  http://%s:%d\n", localIP(), settings.Port)
	fmt.Printf("  Public: https://%s (once your reverse proxy points at the port above)\n\n", settings.Domain)
	return nil
}

// Status prints the compose service table for the installation.
func (i *Installer) Status(ctx context.Context) error {
	if !Detect(i.cfg.InstallDir) {
		return cwerr.NewUserError("chatwoot is not installed at %s, run install first", i.cfg.InstallDir)
	}
	out, err := i.orch.Ps(ctx)
	if err != nil {
		return fmt.Errorf("failed to query service status: %w", err)
	}

	fmt.Printf("Installation: %s", i.cfg.InstallDir)
	if domain, derr := ReadDomainMarker(i.cfg); derr == nil {
		fmt.Printf(" (domain %s", domain)
		if port, perr := ReadPortMarker(i.cfg); perr == nil {
			fmt.Printf(", port %d", port)
		}
		fmt.Print(")")
	}
	fmt.Println()
	fmt.Printf("Host dependencies: %s\n\n", platform.DependencySummary(ctx))
	fmt.Print(out)
	return nil
}

// Restart stops and restarts the stack, keeping volumes and images.
func (i *Installer) Restart(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	if !Detect(i.cfg.InstallDir) {
		return cwerr.NewUserError("chatwoot is not installed at %s, nothing to restart", i.cfg.InstallDir)
	}
	if err := i.orch.Down(ctx, container.DownOptions{}); err != nil {
		return fmt.Errorf("failed to stop services: %w", err)
	}
	if err := i.orch.Up(ctx); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}
	logger.Info("Chatwoot restarted", zap.String("install_dir", i.cfg.InstallDir))
	return nil
}

// Uninstall tears the installation down after confirmation: services,
// containers, images, network, and the install directory with all data.
// Declining the confirmation leaves everything untouched.
func (i *Installer) Uninstall(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	if !Detect(i.cfg.InstallDir) {
		return cwerr.NewUserError("chatwoot is not installed at %s, nothing to remove", i.cfg.InstallDir)
	}

	fmt.Printf("This permanently deletes Chatwoot and ALL its data under %s.\n", i.cfg.InstallDir)
	confirmed, err := i.confirmUninstall()
	if err != nil {
		return err
	}
	if !confirmed {
		logger.Info("Uninstall cancelled by operator")
		fmt.Println("Cancelled, nothing was removed.")
		return nil
	}

	// Best effort from here on: a partially removed stack should not stop
	// the remaining cleanup steps.
	if err := i.orch.Down(ctx, container.DownOptions{RemoveVolumes: true, RemoveImages: true}); err != nil {
		logger.Warn("compose down failed, continuing with direct cleanup", zap.Error(err))
	}

	container.RemoveContainers(ctx, i.containerNames())
	container.RemoveImages(ctx, []string{imagePostgres, imageRedis, imageChatwoot})
	container.RemoveNetwork(ctx, i.cfg.ProjectName()+"_default")

	if err := os.RemoveAll(i.cfg.InstallDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", i.cfg.InstallDir, err)
	}

	logger.Info("Chatwoot uninstalled", zap.String("install_dir", i.cfg.InstallDir))
	fmt.Println("✓ Chatwoot has been removed.")
	return nil
}

// confirmUninstall gates teardown. The strict preset demands the literal
// token "yes"; the other presets take a plain yes/no answer defaulting to no.
func (i *Installer) confirmUninstall() (bool, error) {
	if i.cfg.Preset.StrictConfirm {
		answer, err := i.prompt.ReadLine(fmt.Sprintf("Proceed? [%s]: ", i.cfg.Preset.ConfirmHint()))
		if err != nil {
			return false, err
		}
		return i.cfg.Preset.ConfirmsUninstall(answer), nil
	}
	return i.prompt.PromptYesNo("Proceed?", false), nil
}

func (i *Installer) ensureDataDirs() error {
	for _, dir := range []string{i.cfg.PostgresDir(), i.cfg.RedisDir(), i.cfg.StorageDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	return nil
}

// needsBootstrap reports whether the database still has to be prepared. An
// empty or missing postgres data directory means no cluster exists yet.
func (i *Installer) needsBootstrap() bool {
	entries, err := os.ReadDir(i.cfg.PostgresDir())
	if err != nil {
		return true
	}
	return len(entries) == 0
}

// containerNames lists every name the stack's containers may carry. Compose
// v2 joins with hyphens, v1 with underscores; both are tried since cleanup
// must work after either.
func (i *Installer) containerNames() []string {
	project := i.cfg.ProjectName()
	names := make([]string, 0, len(manifestServices)*2)
	for _, svc := range manifestServices {
		names = append(names,
			fmt.Sprintf("%s-%s-1", project, svc),
			fmt.Sprintf("%s_%s_1", project, svc),
		)
	}
	return names
}

// localIP returns the host's primary non-loopback IPv4 address, falling back
// to localhost.
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "localhost"
}
