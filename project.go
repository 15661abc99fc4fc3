package main

import (
	"path/filepath"
	"regexp"

	"github.com/nulifyer/slnutf8/logger"
)

var includeAttrRe = regexp.MustCompile(`Include="([^"]+)"`)

// ExtractSources returns the recognized source files a project includes.
// Each Include="..." attribute is resolved against the project's directory
// and kept only when its extension is recognized and the file exists.
func ExtractSources(cfg *Config, projPath string) (Set[string], error) {
	text, err := readDescriptor(projPath)
	if err != nil {
		return nil, err
	}

	projDir := filepath.Dir(projPath)
	files := NewSet[string]()
	for _, m := range includeAttrRe.FindAllStringSubmatch(text, -1) {
		p := resolveReference(projDir, m[1])
		if !cfg.IsSourceFile(p) {
			continue
		}
		if !isFile(p) {
			logger.Debug("Skipping missing include %s in %s", m[1], filepath.Base(projPath))
			continue
		}
		files.Add(p)
	}
	return files, nil
}
