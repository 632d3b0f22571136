package docker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/docker/client"

	"github.com/shinji-kodama/stealenv/internal/model"
)

// defaultPingTimeout bounds the daemon health check.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client. It only exposes what stealenv
// needs: connectivity checks and container inspection.
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client with automatic socket detection.
//
// The detection strategy follows this priority order:
//  1. DOCKER_HOST environment variable (if set, used as-is)
//  2. /var/run/docker.sock
//  3. $XDG_RUNTIME_DIR/docker.sock (rootless Docker)
//
// Returns a model.CLIError with ExitDockerNotRunning if no socket is found
// or the client cannot be created.
func NewClient() (*Client, error) {
	if dockerHost := os.Getenv("DOCKER_HOST"); dockerHost != "" {
		return newClientWithHost(dockerHost)
	}

	host, err := detectUnixSocket(socketCandidates())
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker socket not found",
			err,
		)
	}
	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client connected to the specified host,
// e.g. "unix:///var/run/docker.sock".
func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}
	return &Client{inner: c}, nil
}

// socketCandidates lists the socket paths to probe, most preferred first.
func socketCandidates() []string {
	paths := []string{"/var/run/docker.sock"}
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		paths = append(paths, filepath.Join(runtimeDir, "docker.sock"))
	}
	return paths
}

// detectUnixSocket returns the Docker host URI for the first socket path
// that exists. Existence does not guarantee a listening daemon; Ping checks
// that.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf(
		"Docker socket not found at any of: %v (is Docker running?)",
		paths,
	)
}

// Ping verifies that the Docker daemon is reachable and responsive.
//
// Returns a model.CLIError with ExitDockerNotRunning if the daemon
// does not respond within defaultPingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker daemon is not responding (is Docker running?)",
			err,
		)
	}
	return nil
}

// Close releases all resources held by the Docker client.
// Close is safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
