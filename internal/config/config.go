package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/sketchpad/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Shape holds the selection handle geometry of the shape tools.
type Shape struct {
	HandleSize float64
	HitArea    float64
}

// Export holds the defaults used when writing images.
type Export struct {
	Format       string
	Quality      int
	DPI          float64
	Transparency bool
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	Color      color.RGBA
	Background color.RGBA
	Width      float64
	Tolerance  int
	History    int
	BrushStyle string
	CanvasW    int
	CanvasH    int
	Shape      Shape
	Export     Export
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:      "", // Default to empty to allow fallback to Env/Default
		Color:      color.RGBA{A: 255},
		Background: color.RGBA{255, 255, 255, 255},
		Width:      2,
		Tolerance:  32,
		History:    50,
		BrushStyle: "round",
		CanvasW:    800,
		CanvasH:    600,
		Shape: Shape{
			HandleSize: 20,
			HitArea:    40,
		},
		Export: Export{
			Format:  "png",
			Quality: 90,
			DPI:     96,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Color))
	fmt.Fprintf(&sb, "background = %s\n", theme.Hex(c.Background))
	fmt.Fprintf(&sb, "width = %g\n", c.Width)
	fmt.Fprintf(&sb, "tolerance = %d\n", c.Tolerance)
	fmt.Fprintf(&sb, "history = %d\n", c.History)
	fmt.Fprintf(&sb, "brush_style = %s\n", c.BrushStyle)
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasW)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasH)
	sb.WriteString("\n")

	sb.WriteString("[shape]\n")
	fmt.Fprintf(&sb, "handle_size = %g\n", c.Shape.HandleSize)
	fmt.Fprintf(&sb, "hit_area = %g\n", c.Shape.HitArea)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	fmt.Fprintf(&sb, "quality = %d\n", c.Export.Quality)
	fmt.Fprintf(&sb, "dpi = %g\n", c.Export.DPI)
	fmt.Fprintf(&sb, "transparency = %v\n", c.Export.Transparency)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
