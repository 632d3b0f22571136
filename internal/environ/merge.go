package environ

import (
	"fmt"
	"os"
	"strings"
)

// Merge overlays m onto an environment snapshot in NAME=VALUE form and
// returns the result. Variables already present in base keep their position
// with the stolen value; new ones are appended in m's order. base is not
// modified and no process-wide state is touched.
func Merge(base []string, m *Map) []string {
	out := make([]string, 0, len(base)+m.Len())
	seen := make(map[string]bool, m.Len())
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if v, ok := m.Get(name); ok {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name+"="+v)
			continue
		}
		out = append(out, kv)
	}
	for k, v := range m.All() {
		if !seen[k] {
			out = append(out, k+"="+v)
		}
	}
	return out
}

// Install writes every variable of m into the calling process's
// environment so that children spawned afterwards inherit them.
func Install(m *Map) error {
	for k, v := range m.All() {
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return nil
}
