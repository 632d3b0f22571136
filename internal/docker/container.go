package docker

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"

	"github.com/shinji-kodama/stealenv/internal/model"
)

// inspector is the slice of the Engine API used to look up a container.
// *client.Client satisfies it; tests substitute a fake.
type inspector interface {
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
}

// ContainerPID returns the host PID of the init process of a running
// container, identified by name or ID.
//
// An unknown or stopped container wraps model.ErrNotFound, matching what a
// missing executable produces. Daemon failures are reported with
// ExitDockerNotRunning.
func (c *Client) ContainerPID(ctx context.Context, nameOrID string) (model.ProcessHandle, error) {
	return containerPID(ctx, c.inner, nameOrID)
}

func containerPID(ctx context.Context, api inspector, nameOrID string) (model.ProcessHandle, error) {
	info, err := api.ContainerInspect(ctx, nameOrID)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return 0, fmt.Errorf("%w: container %s", model.ErrNotFound, nameOrID)
		}
		return 0, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to inspect container %q", nameOrID),
			err,
		)
	}

	if info.ContainerJSONBase == nil || info.State == nil || !info.State.Running || info.State.Pid <= 0 {
		return 0, fmt.Errorf("%w: container %s is not running", model.ErrNotFound, nameOrID)
	}
	return model.ProcessHandle(info.State.Pid), nil
}
