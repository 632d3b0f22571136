// Package proc locates a target process and reads its environment through a
// procfs mount.
//
// Resolution accepts either a decimal PID, which is used as-is, or an
// absolute executable path, which is matched against every visible
// /proc/<pid>/exe link in ascending PID order. Candidates whose link cannot
// be read are skipped, so a process exiting mid-scan or owned by another user
// never aborts the search.
//
// Reading returns the parsed environ block and distinguishes a vanished
// process (model.ErrProcessNotFound) from a refused read
// (model.ErrPermissionDenied).
package proc
