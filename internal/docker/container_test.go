package docker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stealenv/internal/model"
)

// fakeInspector returns canned inspect results keyed by container name.
type fakeInspector struct {
	containers map[string]container.InspectResponse
	err        error
}

func (f *fakeInspector) ContainerInspect(_ context.Context, id string) (container.InspectResponse, error) {
	if f.err != nil {
		return container.InspectResponse{}, f.err
	}
	info, ok := f.containers[id]
	if !ok {
		return container.InspectResponse{}, fmt.Errorf("No such container: %s: %w", id, cerrdefs.ErrNotFound)
	}
	return info, nil
}

func makeInspect(running bool, pid int) container.InspectResponse {
	return container.InspectResponse{
		ContainerJSONBase: &container.ContainerJSONBase{
			State: &container.State{Running: running, Pid: pid},
		},
	}
}

func TestContainerPID_Running(t *testing.T) {
	api := &fakeInspector{containers: map[string]container.InspectResponse{
		"web": makeInspect(true, 31337),
	}}

	h, err := containerPID(context.Background(), api, "web")
	require.NoError(t, err)
	assert.Equal(t, model.ProcessHandle(31337), h)
}

func TestContainerPID_Stopped(t *testing.T) {
	api := &fakeInspector{containers: map[string]container.InspectResponse{
		"db": makeInspect(false, 0),
	}}

	_, err := containerPID(context.Background(), api, "db")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "not running")
}

func TestContainerPID_MissingState(t *testing.T) {
	api := &fakeInspector{containers: map[string]container.InspectResponse{
		"odd": {},
	}}

	_, err := containerPID(context.Background(), api, "odd")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContainerPID_Unknown(t *testing.T) {
	api := &fakeInspector{}

	_, err := containerPID(context.Background(), api, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, model.ExitNotFound, model.ExitCodeFor(err))
}

func TestContainerPID_DaemonError(t *testing.T) {
	api := &fakeInspector{err: errors.New("connection refused")}

	_, err := containerPID(context.Background(), api, "web")
	require.Error(t, err)
	assert.Equal(t, model.ExitDockerNotRunning, model.ExitCodeFor(err))
}

func TestDetectUnixSocket(t *testing.T) {
	dir := t.TempDir()
	_, err := detectUnixSocket([]string{dir + "/missing.sock"})
	assert.Error(t, err)

	host, err := detectUnixSocket([]string{dir + "/missing.sock", dir})
	require.NoError(t, err)
	assert.Equal(t, "unix://"+dir, host)
}

func TestSocketCandidates(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, []string{"/var/run/docker.sock", "/run/user/1000/docker.sock"}, socketCandidates())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Equal(t, []string{"/var/run/docker.sock"}, socketCandidates())
}
