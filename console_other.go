//go:build !windows

package main

// enableVirtualTerminal is a no-op outside Windows; terminals there handle
// ANSI escapes and UTF-8 natively.
func enableVirtualTerminal() {}
