package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorMode string
		isTTY     bool
		want      bool
	}{
		{name: "never disables on TTY", colorMode: "never", isTTY: true, want: false},
		{name: "never disables on non-TTY", colorMode: "never", isTTY: false, want: false},
		{name: "always enables on TTY", colorMode: "always", isTTY: true, want: true},
		{name: "always enables piped", colorMode: "always", isTTY: false, want: true},
		{name: "auto follows TTY true", colorMode: "auto", isTTY: true, want: true},
		{name: "auto follows TTY false", colorMode: "auto", isTTY: false, want: false},
		{name: "empty flag behaves as auto", colorMode: "", isTTY: true, want: true},
		{name: "unknown value behaves as auto", colorMode: "bogus", isTTY: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColorMode(tt.colorMode, tt.isTTY)
			if got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.colorMode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestColorNever_ClearsStyles(t *testing.T) {
	var buf bytes.Buffer
	isTTY := ResolveColorMode("never", true) // terminal, colors forced off
	printer := NewPrinter(&buf, false, isTTY)

	if printer.IsTTY() {
		t.Error("printer should report non-TTY under --color never")
	}

	empty := lipgloss.NewStyle()
	if printer.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should carry no foreground color under --color never")
	}
}

func TestColorAlways_KeepsStyles(t *testing.T) {
	var buf bytes.Buffer
	isTTY := ResolveColorMode("always", false) // piped, colors forced on
	printer := NewPrinter(&buf, false, isTTY)

	if !printer.IsTTY() {
		t.Error("printer should report TTY under --color always")
	}

	empty := lipgloss.NewStyle()
	if printer.styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("Error style should carry a foreground color under --color always")
	}
}

func TestColorNever_NoANSIInErrors(t *testing.T) {
	var buf bytes.Buffer
	isTTY := ResolveColorMode("never", true)
	printer := NewPrinter(&buf, false, isTTY)

	printer.Error(NewUserError("missing required flag: --project"))

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("--color never should produce no ANSI codes, got: %q", out)
	}
}
