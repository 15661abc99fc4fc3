package main

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nulifyer/slnutf8/logger"
)

var projectLineRe = regexp.MustCompile(`Project\(".*?"\)\s*=\s*".*?",\s*"(.*?)"`)

// ExtractProjects returns the project files referenced by the solution at
// slnPath, in the order they appear. Only references that resolve to an
// existing file are kept, so solution folders drop out. Duplicates are
// preserved.
func ExtractProjects(slnPath string) ([]string, error) {
	text, err := readDescriptor(slnPath)
	if err != nil {
		return nil, err
	}

	slnDir := filepath.Dir(slnPath)
	var projects []string
	for _, line := range strings.Split(text, "\n") {
		ref, ok := parseProjectLine(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		projPath := resolveReference(slnDir, ref)
		if !isFile(projPath) {
			logger.Debug("Skipping solution entry %q: %s is not a file", ref, projPath)
			continue
		}
		logger.Trace("Found project %s", projPath)
		projects = append(projects, projPath)
	}
	return projects, nil
}

// parseProjectLine extracts the relative project path from a line of the form
//
//	Project("{TYPE-GUID}") = "Name", "rel\path.vcxproj", "{PROJECT-GUID}"
func parseProjectLine(line string) (string, bool) {
	m := projectLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
