package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRun_SolutionMissing(t *testing.T) {
	cfg := testConfig(t, t.TempDir())

	_, err := Run(cfg, NewConsoleReporter(&bytes.Buffer{}, false))
	if !errors.Is(err, ErrSolutionNotFound) {
		t.Fatalf("expected ErrSolutionNotFound, got %v", err)
	}
	if want := "NexAS.sln not found – run this next to the solution file"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestRun_NoProjects(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "NexAS.sln", []byte(slnLine("Gone", `gone\gone.vcxproj`)))

	_, err := Run(testConfig(t, dir), NewConsoleReporter(&bytes.Buffer{}, false))
	if !errors.Is(err, ErrNoProjects) {
		t.Fatalf("expected ErrNoProjects, got %v", err)
	}
	if err.Error() != "No projects found in solution" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestRun_NoSources(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "NexAS.sln", []byte(slnLine("P", `P\P.vcxproj`)))
	writeFixture(t, dir, "P/notes.txt", []byte("x"))
	writeFixture(t, dir, "P/P.vcxproj", vcxproj("notes.txt", "missing.cpp"))

	_, err := Run(testConfig(t, dir), NewConsoleReporter(&bytes.Buffer{}, false))
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
	if err.Error() != "No source files found" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestRun_SingleGBKFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "NexAS.sln", []byte(slnLine("Game", `Game\Game.vcxproj`)))
	writeFixture(t, dir, "Game/Game.vcxproj", vcxproj(`src\main.cpp`))
	src := writeFixture(t, dir, "Game/src/main.cpp", gbk(t, "// 主程序\n"))

	var out bytes.Buffer
	summary, err := Run(testConfig(t, dir), NewConsoleReporter(&out, false))
	if err != nil {
		t.Fatal(err)
	}

	want := "Converting 1 files to UTF-8...\n" +
		"[ok] " + filepath.Join("Game", "src", "main.cpp") + " (cp936 → utf-8)\n"
	if out.String() != want {
		t.Fatalf("output mismatch:\ngot  %q\nwant %q", out.String(), want)
	}
	if diff := cmp.Diff(Summary{Total: 1, Converted: 1}, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(got, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("converted file lacks BOM: % x", got)
	}
}

func TestRun_UnionAcrossProjects(t *testing.T) {
	dir := t.TempDir()
	sln := slnLine("A", `A\A.vcxproj`) + slnLine("B", `B\B.vcxproj`) + slnLine("A2", `A\A.vcxproj`)
	writeFixture(t, dir, "NexAS.sln", []byte(sln))
	writeFixture(t, dir, "A/A.vcxproj", vcxproj("a.cpp", `..\shared\shared.h`))
	writeFixture(t, dir, "B/B.vcxproj", vcxproj("b.c", `..\shared\shared.h`, "b.txt"))
	writeFixture(t, dir, "A/a.cpp", []byte("int a;\n"))
	writeFixture(t, dir, "B/b.c", []byte{0xFF, 0xFF})
	writeFixture(t, dir, "B/b.txt", []byte("not converted\n"))
	writeFixture(t, dir, "shared/shared.h", gbk(t, "// 共享\n"))

	var out bytes.Buffer
	summary, err := Run(testConfig(t, dir), NewConsoleReporter(&out, false))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Summary{Total: 3, Converted: 2, Skipped: 1}, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 report lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Converting 3 files to UTF-8..." {
		t.Fatalf("header = %q", lines[0])
	}
	// sorted absolute paths: A/a.cpp, B/b.c, shared/shared.h
	if !strings.HasPrefix(lines[1], "[ok] "+filepath.Join("A", "a.cpp")) {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "[skip] undecodable: ") || !strings.HasSuffix(lines[2], filepath.Join("B", "b.c")) {
		t.Fatalf("line 2 = %q", lines[2])
	}
	if lines[3] != "[ok] "+filepath.Join("shared", "shared.h")+" (cp936 → utf-8)" {
		t.Fatalf("line 3 = %q", lines[3])
	}

	txt, err := os.ReadFile(filepath.Join(dir, "B", "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(txt) != "not converted\n" {
		t.Fatalf(".txt file was touched: %q", txt)
	}
}

func TestRun_SecondRunIsNoop(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "NexAS.sln", []byte(slnLine("Game", `Game\Game.vcxproj`)))
	writeFixture(t, dir, "Game/Game.vcxproj", vcxproj("a.cpp", "b.h"))
	a := writeFixture(t, dir, "Game/a.cpp", gbk(t, "// 甲\n"))
	b := writeFixture(t, dir, "Game/b.h", []byte("#define B 1\n"))
	cfg := testConfig(t, dir)

	if _, err := Run(cfg, NewConsoleReporter(&bytes.Buffer{}, false)); err != nil {
		t.Fatal(err)
	}
	before := map[string][]byte{}
	for _, p := range []string{a, b} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		before[p] = data
	}

	var out bytes.Buffer
	if _, err := Run(cfg, NewConsoleReporter(&out, false)); err != nil {
		t.Fatal(err)
	}
	for p, want := range before {
		got, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("%s changed on second run", p)
		}
	}
	if strings.Count(out.String(), "(utf-8 → utf-8)") != 2 {
		t.Fatalf("expected both files to decode as utf-8 on the second run:\n%s", out.String())
	}
}

func TestRun_CustomSolutionName(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewConfig(dir, "Other.sln")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Run(cfg, NewConsoleReporter(&bytes.Buffer{}, false))
	if err == nil || !strings.HasPrefix(err.Error(), "Other.sln not found") {
		t.Fatalf("got %v", err)
	}
}
