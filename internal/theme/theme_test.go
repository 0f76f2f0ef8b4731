package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Night\nselection: #112233\nHandleFill: #FFFFFF80\nUnknown: #000000\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Night" {
		t.Errorf("expected name Night, got %q", th.Name)
	}
	if th.Selection != (color.RGBA{0x11, 0x22, 0x33, 0xff}) {
		t.Errorf("unexpected selection %v", th.Selection)
	}
	if th.HandleFill.A != 0x80 {
		t.Errorf("expected alpha 0x80, got %v", th.HandleFill)
	}
	if th.Canvas != Default().Canvas {
		t.Errorf("unset keys must keep defaults")
	}
}

func TestParseRejectsBadColour(t *testing.T) {
	if _, err := Parse(strings.NewReader("Selection: #12345\n")); err == nil {
		t.Fatalf("expected error for a five digit colour")
	}
}

func TestParseColorNames(t *testing.T) {
	c, err := ParseColor("Red")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("unexpected colour %v", c)
	}
	if Hex(c) != "#FF0000" {
		t.Fatalf("unexpected hex %s", Hex(c))
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "paper.theme"), []byte("Name: Paper\nCanvas: #FAF0E6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}

	th, err := l.Load("paper")
	if err != nil {
		t.Fatalf("load paper: %v", err)
	}
	if th.Canvas != (color.RGBA{0xFA, 0xF0, 0xE6, 0xFF}) {
		t.Errorf("unexpected canvas colour %v", th.Canvas)
	}

	th, err = l.Load("dark")
	if err != nil || th.Name != "Dark" {
		t.Fatalf("expected built-in dark theme, got %v, %v", th, err)
	}

	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for a missing theme")
	}
}
