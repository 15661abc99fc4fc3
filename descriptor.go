package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nulifyer/slnutf8/logger"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readDescriptor reads a solution or project file as text. A leading UTF-8 or
// UTF-16 byte order mark selects that decoding; anything else is read as
// UTF-8 with invalid bytes dropped.
func readDescriptor(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		logger.Debug("BOM decoding failed for %s, reading raw bytes: %v", path, err)
		decoded = data
	}
	return strings.ToValidUTF8(string(decoded), ""), nil
}

// resolveReference turns a path found inside a descriptor into an absolute
// host path. Descriptors written on Windows use backslashes; relative
// references are taken relative to baseDir.
func resolveReference(baseDir, ref string) string {
	p := filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/"))
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return resolveSymlinks(p)
}

// resolveSymlinks evaluates symlinks in path when it exists, otherwise
// returns it unchanged.
func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// isFile reports whether path exists and is not a directory.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
