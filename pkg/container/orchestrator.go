// Package container wraps the two ways this tool touches the container
// engine: the compose CLI for stack lifecycle, and the docker SDK for daemon
// probes and best-effort cleanup. Control logic depends on the Orchestrator
// interface so tests can substitute a fake.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/chatwootops/chatwootctl/pkg/execute"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// DownOptions controls how much state a Down call removes.
type DownOptions struct {
	RemoveVolumes bool
	RemoveImages  bool
}

// Orchestrator is the narrow surface the lifecycle controller needs from the
// compose tool.
type Orchestrator interface {
	// Up brings the whole stack up detached.
	Up(ctx context.Context) error
	// Down stops the stack, optionally removing volumes and images.
	Down(ctx context.Context, opts DownOptions) error
	// Ps returns the current service states as printed by the compose tool.
	Ps(ctx context.Context) (string, error)
	// RunOnce runs a one-shot command in a service container and removes it.
	RunOnce(ctx context.Context, service string, command ...string) error
}

// ComposeCLI drives the external compose tool against one manifest file.
type ComposeCLI struct {
	File string // manifest path
	Dir  string // working directory for compose invocations

	command string   // resolved base command
	prefix  []string // args before the compose subcommand
}

// NewComposeCLI returns a compose driver for one manifest. Which compose
// flavour to use is resolved lazily on first invocation, so the driver can be
// constructed before the dependency prober has installed docker.
func NewComposeCLI(file, dir string) *ComposeCLI {
	return &ComposeCLI{File: file, Dir: dir}
}

// resolve picks the compose flavour: the docker compose plugin is preferred,
// the standalone docker-compose binary is the fallback.
func (c *ComposeCLI) resolve() error {
	if c.command != "" {
		return nil
	}
	switch {
	case execute.LookPath("docker"):
		c.command = "docker"
		c.prefix = []string{"compose"}
	case execute.LookPath("docker-compose"):
		c.command = "docker-compose"
	default:
		return fmt.Errorf("neither docker nor docker-compose found in PATH")
	}
	return nil
}

func (c *ComposeCLI) args(sub ...string) []string {
	out := append(append([]string{}, c.prefix...), "-f", c.File)
	return append(out, sub...)
}

func (c *ComposeCLI) Up(ctx context.Context) error {
	if err := c.resolve(); err != nil {
		return err
	}
	logger := otelzap.Ctx(ctx)
	logger.Info("Bringing stack up", zap.String("file", c.File))

	_, err := execute.Run(ctx, execute.Options{
		Command: c.command,
		Args:    c.args("up", "-d"),
		Dir:     c.Dir,
		Timeout: 15 * time.Minute, // image pulls dominate first run
	})
	if err != nil {
		return fmt.Errorf("compose up failed: %w", err)
	}
	return nil
}

func (c *ComposeCLI) Down(ctx context.Context, opts DownOptions) error {
	if err := c.resolve(); err != nil {
		return err
	}
	logger := otelzap.Ctx(ctx)
	logger.Info("Bringing stack down",
		zap.Bool("remove_volumes", opts.RemoveVolumes),
		zap.Bool("remove_images", opts.RemoveImages))

	sub := []string{"down"}
	if opts.RemoveVolumes {
		sub = append(sub, "--volumes")
	}
	if opts.RemoveImages {
		sub = append(sub, "--rmi", "all")
	}
	_, err := execute.Run(ctx, execute.Options{
		Command: c.command,
		Args:    c.args(sub...),
		Dir:     c.Dir,
		Timeout: 10 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("compose down failed: %w", err)
	}
	return nil
}

func (c *ComposeCLI) Ps(ctx context.Context) (string, error) {
	if err := c.resolve(); err != nil {
		return "", err
	}
	out, err := execute.Run(ctx, execute.Options{
		Command: c.command,
		Args:    c.args("ps"),
		Dir:     c.Dir,
		Capture: true,
		Timeout: time.Minute,
	})
	if err != nil {
		return "", fmt.Errorf("compose ps failed: %w", err)
	}
	return out, nil
}

func (c *ComposeCLI) RunOnce(ctx context.Context, service string, command ...string) error {
	if err := c.resolve(); err != nil {
		return err
	}
	logger := otelzap.Ctx(ctx)
	logger.Info("Running one-shot command",
		zap.String("service", service),
		zap.Strings("command", command))

	sub := append([]string{"run", "--rm", service}, command...)
	_, err := execute.Run(ctx, execute.Options{
		Command: c.command,
		Args:    c.args(sub...),
		Dir:     c.Dir,
		Timeout: 20 * time.Minute, // database preparation can be slow
	})
	if err != nil {
		return fmt.Errorf("compose run --rm %s failed: %w", service, err)
	}
	return nil
}
