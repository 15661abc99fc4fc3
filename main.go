package main

import (
	"os"

	"github.com/nulifyer/slnutf8/arger"
	"github.com/nulifyer/slnutf8/logger"

	xterm "golang.org/x/term"
)

// -------------------------------
// Setup & CLI Flags
// --------------------------------
const (
	Flag_NoColor   = "no-color"
	Flag_Verbosity = "verbosity"
	Flag_Solution  = "solution"
	Flag_Root      = "root"
)

type BuiltFlags struct {
	NoColor   bool
	Verbosity string
	Solution  string
	Root      string
}

func BuildFlags(flags map[string]arger.IParsedFlag) BuiltFlags {
	return BuiltFlags{
		NoColor:   arger.Get[bool](flags, Flag_NoColor),
		Verbosity: arger.Get[string](flags, Flag_Verbosity),
		Solution:  arger.Get[string](flags, Flag_Solution),
		Root:      arger.Get[string](flags, Flag_Root),
	}
}

func RegisterFlags() {
	arger.RegisterFlag(arger.Flag[bool]{
		Name:        Flag_NoColor,
		Aliases:     []string{"-nc", "--no-color"},
		Default:     arger.Optional(false),
		Description: "Disable colored output in the terminal",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:           Flag_Verbosity,
		Aliases:        []string{"-v", "--verbose"},
		Default:        arger.Optional(logger.GetLevel().String()),
		Description:    "Set the logging verbosity level",
		ExpectedValues: []string{"", "none", "error", "err", "warn", "warning", "info", "debug", "dbg", "trace", "trc"},
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:        Flag_Solution,
		Aliases:     []string{"-s", "--solution"},
		Default:     arger.Optional(DefaultSolution),
		Description: "Solution file to convert, relative to the root directory",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:    Flag_Root,
		Aliases: []string{"-r", "--root"},
		DefaultFunc: func() string {
			dir, err := os.Getwd()
			if err != nil {
				logger.Fatal("Couldn't get current working directory")
			}
			return dir
		},
		Description: "Working root; reported paths are relative to it (defaults to current working directory)",
	})
}

func Init() BuiltFlags {
	enableVirtualTerminal()
	logger.SetColor(false)
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		logger.SetLevel(logger.ParseLevel(envLevel))
	}

	RegisterFlags()
	builtFlags := BuildFlags(arger.Parse())

	logger.SetLevel(logger.ParseLevel(builtFlags.Verbosity))
	logger.SetColor(!builtFlags.NoColor && xterm.IsTerminal(int(os.Stderr.Fd())))

	return builtFlags
}

// -------------------------------
// Main
// --------------------------------
func main() {
	builtFlags := Init()

	cfg, err := NewConfig(builtFlags.Root, builtFlags.Solution)
	if err != nil {
		logger.Fatal("%v", err)
	}
	logger.Info("Converting sources of %s under %s", cfg.Solution, cfg.Root)

	color := !builtFlags.NoColor && xterm.IsTerminal(int(os.Stdout.Fd()))
	summary, err := Run(cfg, NewConsoleReporter(os.Stdout, color))
	if err != nil {
		logger.Fatal("%v", err)
	}

	logger.Info("Done: %d converted, %d skipped, %d failed", summary.Converted, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
