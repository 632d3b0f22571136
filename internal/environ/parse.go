package environ

import (
	"bytes"
	"errors"
	"fmt"
)

// Parse decodes a raw environment block: NAME=VALUE records separated by NUL
// bytes, with an optional trailing empty record.
//
// Each record is split on its first "="; the value may contain further "="
// characters. Records with no "=" or with an empty name are malformed and
// skipped. The number of skipped records is returned alongside the map.
func Parse(data []byte) (*Map, int) {
	m := New()
	malformed := 0
	for _, rec := range bytes.Split(data, []byte{0}) {
		if len(rec) == 0 {
			continue
		}
		name, value, ok := bytes.Cut(rec, []byte{'='})
		if !ok || len(name) == 0 {
			malformed++
			continue
		}
		m.Set(string(name), string(value))
	}
	return m, malformed
}

// ErrMalformedPairs is returned by ParsePairs for input that is not a
// complete null-delimited pair stream.
var ErrMalformedPairs = errors.New("malformed null-delimited environment")

// ParsePairs decodes the null-delimited output format: NAME\0VALUE\0 per
// variable followed by one terminating NUL. It is the inverse of the null
// formatter.
func ParsePairs(data []byte) (*Map, error) {
	if len(data) == 0 || data[len(data)-1] != 0 {
		return nil, fmt.Errorf("%w: missing terminating NUL", ErrMalformedPairs)
	}
	body := data[:len(data)-1]
	m := New()
	if len(body) == 0 {
		return m, nil
	}
	if body[len(body)-1] != 0 {
		return nil, fmt.Errorf("%w: unterminated field", ErrMalformedPairs)
	}
	fields := bytes.Split(body[:len(body)-1], []byte{0})
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: %d fields is not a whole number of pairs", ErrMalformedPairs, len(fields))
	}
	for i := 0; i < len(fields); i += 2 {
		m.Set(string(fields[i]), string(fields[i+1]))
	}
	return m, nil
}
