// Package format renders a stolen environment in the text encodings stealenv
// supports: sh and csh assignments, a JSON object, a YAML mapping and a
// null-delimited pair stream.
//
// Pairs are written in the Map's order. Write errors from the destination
// are returned as-is.
package format

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/stealenv/internal/environ"
	"github.com/shinji-kodama/stealenv/internal/model"
)

// shellEscapes lists the substitutions applied to shell values, in order.
// The backslash must come first so that backslashes inserted by the later
// steps are not doubled.
var shellEscapes = []struct{ from, to string }{
	{`\`, `\\`},
	{`$`, `\$`},
	{`"`, `\"`},
	{"`", "\\`"},
}

// EscapeShell escapes value for use between double quotes in sh or csh.
func EscapeShell(value string) string {
	for _, e := range shellEscapes {
		value = strings.ReplaceAll(value, e.from, e.to)
	}
	return value
}

// Write renders env to w in format f. export switches the shell dialects to
// exported declarations and is ignored by every other format.
func Write(w io.Writer, env *environ.Map, f model.OutputFormat, export bool) error {
	switch f {
	case model.FormatShell, model.FormatCShell:
		return writeShell(w, env, f, export)
	case model.FormatJSON:
		return writeJSON(w, env)
	case model.FormatYAML:
		return writeYAML(w, env)
	case model.FormatNull:
		return writeNull(w, env)
	default:
		return fmt.Errorf("format %q produces no text output", f)
	}
}

// shellTemplate returns the printf template for one assignment.
func shellTemplate(f model.OutputFormat, export bool) string {
	switch {
	case f == model.FormatCShell && export:
		return "setenv %s \"%s\"\n"
	case f == model.FormatCShell:
		return "set %s=\"%s\"\n"
	case export:
		return "export %s=\"%s\"\n"
	default:
		return "%s=\"%s\"\n"
	}
}

func writeShell(w io.Writer, env *environ.Map, f model.OutputFormat, export bool) error {
	tmpl := shellTemplate(f, export)
	bw := bufio.NewWriter(w)
	for name, value := range env.All() {
		if _, err := fmt.Fprintf(bw, tmpl, name, EscapeShell(value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeJSON emits one object for the whole map, keys in map order.
// encoding/json would sort a Go map's keys, so members are encoded one by one.
func writeJSON(w io.Writer, env *environ.Map) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	first := true
	for name, value := range env.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := enc.Encode(name); err != nil {
			return err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(value); err != nil {
			return err
		}
		trimNewline(&buf)
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// trimNewline drops the newline json.Encoder appends after each value.
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// writeYAML emits a single mapping document built as a yaml.Node so the
// key order survives.
func writeYAML(w io.Writer, env *environ.Map) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for name, value := range env.All() {
		mapping.Content = append(mapping.Content, yamlScalar(name), yamlScalar(value))
	}
	if len(mapping.Content) == 0 {
		mapping.Style = yaml.FlowStyle
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}); err != nil {
		return err
	}
	return enc.Close()
}

// yamlScalar returns a string node, falling back to !!binary for bytes that
// are not valid UTF-8 the same way yaml.v3 does for Go strings.
func yamlScalar(s string) *yaml.Node {
	if !utf8.ValidString(s) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString([]byte(s))}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// writeNull emits NAME\0VALUE\0 per pair and a final NUL. Bytes are copied
// verbatim with no escaping.
func writeNull(w io.Writer, env *environ.Map) error {
	bw := bufio.NewWriter(w)
	for name, value := range env.All() {
		bw.WriteString(name)
		bw.WriteByte(0)
		bw.WriteString(value)
		bw.WriteByte(0)
	}
	bw.WriteByte(0)
	return bw.Flush()
}
