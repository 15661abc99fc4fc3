//go:build windows

package main

import (
	"os"

	"github.com/nulifyer/slnutf8/logger"

	"golang.org/x/sys/windows"
)

const cpUTF8 = 65001

// enableVirtualTerminal turns on ANSI escape handling for the console and
// switches its output code page to UTF-8 so report lines render correctly.
func enableVirtualTerminal() {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		h := windows.Handle(f.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			continue // redirected, not a console
		}
		if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			logger.Debug("SetConsoleMode: %v", err)
		}
	}
	if err := windows.SetConsoleOutputCP(cpUTF8); err != nil {
		logger.Debug("SetConsoleOutputCP: %v", err)
	}
}
