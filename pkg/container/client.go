package container

import (
	"context"
	"time"

	"github.com/docker/docker/client"
)

const pingTimeout = 5 * time.Second

// NewClient establishes a docker SDK client from the environment with API
// version negotiation enabled.
func NewClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// PingDaemon validates connectivity with the docker daemon within a short
// timeout window.
func PingDaemon(ctx context.Context) error {
	cli, err := NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err = cli.Ping(pingCtx)
	return err
}
