// Package environ holds the in-memory form of a stolen environment and the
// byte-level codecs around it.
//
// A Map keeps variables in the order they first appear in the source block.
// Inserting a name twice replaces the value in place (last write wins), so
// formatting a parsed block never reorders it.
//
// Parse decodes the kernel's NUL-separated NAME=VALUE block. Records without
// an "=" are skipped and counted rather than failing the read. ParsePairs
// decodes stealenv's own null-delimited output. Merge combines a Map with an
// environment snapshot without touching process-wide state; Install is the
// explicit step that does.
package environ
