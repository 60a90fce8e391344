// ABOUTME: Tests for the stat block widget
// ABOUTME: Covers cell padding with styled content and line alignment

package widgets

import (
	"strings"
	"testing"

	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/charmbracelet/lipgloss"
)

func TestPadCellIgnoresEscapeCodes(t *testing.T) {
	styled := "\x1b[1;38;2;37;99;235m42\x1b[0m"

	padded := padCell(styled, 8)
	if got := lipgloss.Width(padded); got != 8 {
		t.Errorf("display width = %d, want 8", got)
	}
	if !strings.HasSuffix(padded, strings.Repeat(" ", 6)) {
		t.Error("padding should fill to the display width, not the byte length")
	}
}

func TestPadCellAlreadyFull(t *testing.T) {
	if got := padCell("abcdef", 6); got != "abcdef" {
		t.Errorf("padCell = %q, want unchanged", got)
	}
	// Never truncates; overlong content is the caller's problem
	if got := padCell("abcdef", 4); got != "abcdef" {
		t.Errorf("padCell = %q, want unchanged", got)
	}
}

func TestStatBlockLinesAlign(t *testing.T) {
	config := DefaultStatBlockConfig()
	block := StatBlock(icons.Post, "Posts", "42", "written", config)

	lines := strings.Split(block, "\n")
	if len(lines) != 4 {
		t.Fatalf("block has %d lines, want 4", len(lines))
	}
	// Value, subtitle, and bottom border all span the configured width
	for _, line := range lines[1:] {
		if got := lipgloss.Width(line); got != config.Width {
			t.Errorf("line %q width = %d, want %d", line, got, config.Width)
		}
	}
}
