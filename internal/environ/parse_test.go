package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse covers the record rules of a kernel environment block: split on
// NUL, drop empty records, split each record on its first "=".
func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantKeys  []string
		wantMap   map[string]string
		malformed int
	}{
		{
			name:     "typical block with trailing NUL",
			data:     "HOME=/root\x00PATH=/usr/bin:/bin\x00",
			wantKeys: []string{"HOME", "PATH"},
			wantMap:  map[string]string{"HOME": "/root", "PATH": "/usr/bin:/bin"},
		},
		{
			name:     "no trailing NUL",
			data:     "A=1\x00B=2",
			wantKeys: []string{"A", "B"},
			wantMap:  map[string]string{"A": "1", "B": "2"},
		},
		{
			name:     "value keeps later equals signs",
			data:     "OPTS=a=b=c\x00",
			wantKeys: []string{"OPTS"},
			wantMap:  map[string]string{"OPTS": "a=b=c"},
		},
		{
			name:     "empty value",
			data:     "EMPTY=\x00",
			wantKeys: []string{"EMPTY"},
			wantMap:  map[string]string{"EMPTY": ""},
		},
		{
			name:     "duplicate name last write wins in first position",
			data:     "A=1\x00B=2\x00A=3\x00",
			wantKeys: []string{"A", "B"},
			wantMap:  map[string]string{"A": "3", "B": "2"},
		},
		{
			name:      "record without equals is skipped",
			data:      "A=1\x00garbage\x00B=2\x00",
			wantKeys:  []string{"A", "B"},
			wantMap:   map[string]string{"A": "1", "B": "2"},
			malformed: 1,
		},
		{
			name:      "record with empty name is skipped",
			data:      "=oops\x00A=1\x00",
			wantKeys:  []string{"A"},
			wantMap:   map[string]string{"A": "1"},
			malformed: 1,
		},
		{
			name:     "consecutive NULs produce no records",
			data:     "A=1\x00\x00\x00B=2\x00\x00",
			wantKeys: []string{"A", "B"},
			wantMap:  map[string]string{"A": "1", "B": "2"},
		},
		{
			name:     "empty block",
			data:     "",
			wantKeys: []string{},
			wantMap:  map[string]string{},
		},
		{
			name:     "non UTF-8 bytes are preserved",
			data:     "BIN=\xff\xfe\x00",
			wantKeys: []string{"BIN"},
			wantMap:  map[string]string{"BIN": "\xff\xfe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, malformed := Parse([]byte(tt.data))
			assert.Equal(t, tt.wantKeys, m.Keys())
			assert.Equal(t, tt.wantMap, m.ToMap())
			assert.Equal(t, tt.malformed, malformed)
		})
	}
}

func TestParsePairs(t *testing.T) {
	m, err := ParsePairs([]byte("A\x001\x00B\x002\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, m.Keys())
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, m.ToMap())
}

func TestParsePairs_EmptyMap(t *testing.T) {
	m, err := ParsePairs([]byte{0})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParsePairs_EmptyValue(t *testing.T) {
	m, err := ParsePairs([]byte("A\x00\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": ""}, m.ToMap())
}

func TestParsePairs_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"missing terminator", "A\x001\x00"},
		{"odd field count", "A\x00\x00"},
		{"unterminated field", "A\x001\x00B\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePairs([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedPairs)
		})
	}
}
