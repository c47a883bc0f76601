package container

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Cleanup policy: every removal here is advisory. The compose down that
// precedes it normally removes everything already, so "no such container"
// and friends are logged at debug and swallowed.

// RemoveContainers force-removes the named containers.
func RemoveContainers(ctx context.Context, names []string) {
	logger := otelzap.Ctx(ctx)

	cli, err := NewClient()
	if err != nil {
		logger.Debug("Docker client unavailable for container cleanup", zap.Error(err))
		return
	}
	defer func() { _ = cli.Close() }()

	for _, name := range names {
		if err := cli.ContainerRemove(ctx, name, container.RemoveOptions{Force: true}); err != nil {
			logger.Debug("Container removal skipped",
				zap.String("container", name), zap.Error(err))
			continue
		}
		logger.Info("Removed container", zap.String("container", name))
	}
}

// RemoveImages force-removes the given image references.
func RemoveImages(ctx context.Context, refs []string) {
	logger := otelzap.Ctx(ctx)

	cli, err := NewClient()
	if err != nil {
		logger.Debug("Docker client unavailable for image cleanup", zap.Error(err))
		return
	}
	defer func() { _ = cli.Close() }()

	for _, ref := range refs {
		if _, err := cli.ImageRemove(ctx, ref, image.RemoveOptions{Force: true}); err != nil {
			logger.Debug("Image removal skipped",
				zap.String("image", ref), zap.Error(err))
			continue
		}
		logger.Info("Removed image", zap.String("image", ref))
	}
}

// RemoveNetwork removes the named network.
func RemoveNetwork(ctx context.Context, name string) {
	logger := otelzap.Ctx(ctx)

	cli, err := NewClient()
	if err != nil {
		logger.Debug("Docker client unavailable for network cleanup", zap.Error(err))
		return
	}
	defer func() { _ = cli.Close() }()

	if err := cli.NetworkRemove(ctx, name); err != nil {
		logger.Debug("Network removal skipped",
			zap.String("network", name), zap.Error(err))
		return
	}
	logger.Info("Removed network", zap.String("network", name))
}
