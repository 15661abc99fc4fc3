package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nulifyer/slnutf8/logger"
)

var (
	ErrSolutionNotFound = errors.New("solution not found")
	ErrNoProjects       = errors.New("no projects found")
	ErrNoSources        = errors.New("no source files found")
)

// FatalError ends the run before any file is touched. Error returns the
// message shown to the user; Unwrap returns the sentinel kind.
type FatalError struct {
	Kind    error
	Message string
}

func (e *FatalError) Error() string { return e.Message }
func (e *FatalError) Unwrap() error { return e.Kind }

func fatal(kind error, format string, args ...any) error {
	return &FatalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

type Summary struct {
	Total     int
	Converted int
	Skipped   int
	Failed    int
}

// Run converts every source file reachable from the configured solution.
// Files are processed one at a time in sorted path order. Undecodable files
// and per-file I/O failures are counted, not returned.
func Run(cfg *Config, rep Reporter) (Summary, error) {
	var summary Summary

	if !isFile(cfg.Solution) {
		return summary, fatal(ErrSolutionNotFound, "%s not found – run this next to the solution file", filepath.Base(cfg.Solution))
	}

	projects, err := ExtractProjects(cfg.Solution)
	if err != nil {
		return summary, fmt.Errorf("read solution %s: %w", cfg.Solution, err)
	}
	if len(projects) == 0 {
		return summary, fatal(ErrNoProjects, "No projects found in solution")
	}
	logger.Info("Found %d project(s) in %s", len(projects), filepath.Base(cfg.Solution))

	sources := NewSet[string]()
	for _, proj := range projects {
		files, err := ExtractSources(cfg, proj)
		if err != nil {
			logger.Warn("Skipping project %s: %v", proj, err)
			continue
		}
		logger.Debug("%s: %d source file(s)", cfg.RelPath(proj), files.Len())
		sources.Union(files)
	}
	if sources.Len() == 0 {
		return summary, fatal(ErrNoSources, "No source files found")
	}

	summary.Total = sources.Len()
	rep.Total(summary.Total)
	for _, path := range SortedMembers(sources) {
		outcome, err := ConvertFile(cfg, path, rep)
		switch {
		case err != nil:
			rep.Failed(path, err)
			summary.Failed++
		case outcome == OutcomeConverted:
			summary.Converted++
		default:
			summary.Skipped++
		}
	}
	return summary, nil
}
