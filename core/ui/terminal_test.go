package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsMultibyteCells(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Tier", "Price")
	tbl.SetAlign(1, AlignRight)
	tbl.AddRow("F70", "₩70,000")
	tbl.AddRow("F1700", "₩1,700,000")
	tbl.Render()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[2] != "F70   │    ₩70,000" {
		t.Errorf("unexpected row %q", lines[2])
	}
	if lines[3] != "F1700 │ ₩1,700,000" {
		t.Errorf("unexpected row %q", lines[3])
	}
}

func TestAddRowPadsMissingCells(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("A", "B", "C")
	tbl.AddRow("x")
	tbl.Render()

	if !strings.Contains(buf.String(), "x │   │") {
		t.Errorf("expected empty padded cells, got %q", buf.String())
	}
}

func TestNoColorStripsEscapes(t *testing.T) {
	var plain, colored bytes.Buffer
	NewWriter(&plain, true).Header("Summary")
	NewWriter(&colored, false).Header("Summary")

	if strings.Contains(plain.String(), "\033[") {
		t.Errorf("expected no escapes, got %q", plain.String())
	}
	if !strings.Contains(colored.String(), Cyan) {
		t.Errorf("expected color escapes, got %q", colored.String())
	}
}

func TestQuietSuppressesNotes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.SetVerbosity(0)
	w.Note("hidden")
	w.Info("hidden")
	w.Warning("shown %d", 1)

	if got := buf.String(); got != "⚠ shown 1\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestBox(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, true).Box("Best plan: F70", []string{"Saves ₩42,000/mo"})

	want := "╭──────────────────╮\n" +
		"│ Best plan: F70   │\n" +
		"├──────────────────┤\n" +
		"│ Saves ₩42,000/mo │\n" +
		"╰──────────────────╯\n"
	if buf.String() != want {
		t.Errorf("unexpected box:\n%s", buf.String())
	}
}
