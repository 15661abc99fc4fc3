package main

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// writeFixture writes data to dir/rel, creating parent directories, and
// returns the path in the form the extractors produce.
func writeFixture(t *testing.T, dir, rel string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return resolveSymlinks(p)
}

func gbk(t *testing.T, s string) []byte {
	t.Helper()
	b, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("GBK encode %q: %v", s, err)
	}
	return b
}

func testConfig(t *testing.T, root string) *Config {
	t.Helper()
	cfg, err := NewConfig(root, DefaultSolution)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// slnLine renders one project entry the way Visual Studio writes it.
func slnLine(name, relPath string) string {
	return `Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "` + name + `", "` + relPath + `", "{11111111-2222-3333-4444-555555555555}"` + "\r\nEndProject\r\n"
}

func vcxproj(includes ...string) []byte {
	s := `<?xml version="1.0" encoding="utf-8"?>` + "\r\n<Project>\r\n  <ItemGroup>\r\n"
	for _, inc := range includes {
		s += `    <ClCompile Include="` + inc + `" />` + "\r\n"
	}
	s += "  </ItemGroup>\r\n</Project>\r\n"
	return []byte(s)
}
