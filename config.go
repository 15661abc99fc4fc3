package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultSolution = "NexAS.sln"
	OutputEncoding  = "utf-8"
)

// DefaultSourceExts are the native source extensions that get converted.
var DefaultSourceExts = []string{".c", ".cpp", ".h", ".hpp"}

// Config is built once at start-up and shared read-only by every stage.
type Config struct {
	Root       string // working root; report paths are relative to it
	Solution   string // absolute path to the solution file
	SourceExts Set[string]
	Decoder    *Decoder
}

// NewConfig resolves root and solution to absolute paths. A relative
// solution is taken relative to root.
func NewConfig(root, solution string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	absRoot = resolveSymlinks(absRoot)

	if solution == "" {
		solution = DefaultSolution
	}
	if !filepath.IsAbs(solution) {
		solution = filepath.Join(absRoot, solution)
	}

	exts := NewSet[string]()
	for _, ext := range DefaultSourceExts {
		exts.Add(strings.ToLower(ext))
	}

	return &Config{
		Root:       absRoot,
		Solution:   resolveSymlinks(filepath.Clean(solution)),
		SourceExts: exts,
		Decoder:    NewDecoder(),
	}, nil
}

// IsSourceFile reports whether path has one of the recognized extensions,
// compared case-insensitively.
func (c *Config) IsSourceFile(path string) bool {
	return c.SourceExts.Contains(strings.ToLower(filepath.Ext(path)))
}

// RelPath returns path relative to the root, or path itself when no
// relative form exists.
func (c *Config) RelPath(path string) string {
	rel, err := filepath.Rel(c.Root, path)
	if err != nil {
		return path
	}
	return rel
}
