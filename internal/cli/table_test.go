package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable("Name", "Hex")

	table.AddRow("primary", "#1e40af")
	table.AddRow("accent")
	table.AddRow("error", "#ef4444", "extra")

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("short row = %q, want padded to 2 columns", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("long row = %q, want truncated to 2 columns", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("Step", "Clamp")
	table.AddRow("xs", "clamp(0.563rem, 0.8vw, 0.8rem)")
	table.AddRow("base", "clamp(0.875rem, 1.25vw, 1.125rem)")

	lines := strings.Split(table.Render(), "\n")
	if len(lines) != 5 {
		t.Fatalf("Render() produced %d lines, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[1], "----") {
		t.Errorf("separator = %q", lines[1])
	}
	if len(lines[0]) != len(lines[1]) || len(lines[1]) != len(lines[3]) {
		t.Errorf("columns misaligned:\n%s", strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[3], "base  clamp(") {
		t.Errorf("row = %q", lines[3])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	got := NewTable("Column1", "Column2").Render()
	if !strings.Contains(got, "Column1") || strings.Count(got, "\n") != 2 {
		t.Errorf("headers-only table = %q", got)
	}
}

func TestTableAlignsStyledCells(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("AAA")

	table := NewTable("Grade", "Ratio")
	table.AddRow(styled, "21")
	table.AddRow("fail", "1.2")

	lines := strings.Split(table.Render(), "\n")
	if lipgloss.Width(lines[2]) != lipgloss.Width(lines[3]) {
		t.Errorf("styled row width %d, plain row width %d", lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
	}
}

func TestTableWrapsColumns(t *testing.T) {
	table := NewTable("Name", "Mood")
	table.SetColumnMaxWidth(1, 12)
	table.AddRow("Classic Elegance", "Refined and timeless")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("wrapped table has %d lines, want 4:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[2], "Classic Elegance  Refined and") || !strings.Contains(lines[3], "timeless") {
		t.Errorf("continuation line = %q", lines[3])
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"no limit at all", 0, []string{"no limit at all"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"abcdefgh", 3, []string{"abc", "def", "gh"}},
	}

	for _, tt := range tests {
		got := wrapText(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
