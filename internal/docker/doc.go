// Package docker resolves a Docker container to the host PID of its init
// process, so that stealenv can read a containerised process's environment
// through the host's procfs.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
// Only the local daemon is supported: the PID returned by the Engine API is
// meaningful in the host PID namespace alone.
package docker
