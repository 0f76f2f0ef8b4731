package theme

import (
	"image/color"
)

// Theme defines the colour palette for the window chrome and the editing
// overlay.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Status text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA // Selected tool
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	StatusBackground      color.RGBA

	// Canvas
	Canvas       color.RGBA // New surfaces are cleared to this colour
	Selection    color.RGBA
	SelectionAlt color.RGBA
	HandleBorder color.RGBA
	HandleFill   color.RGBA
	HandleAccent color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		StatusBackground:      color.RGBA{235, 235, 235, 255},
		Canvas:                color.RGBA{255, 255, 255, 255},
		Selection:             color.RGBA{0, 0, 0, 255},
		SelectionAlt:          color.RGBA{255, 255, 255, 255},
		HandleBorder:          color.RGBA{0, 0, 0, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		HandleAccent:          color.RGBA{0, 0, 255, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                  "Dark",
		Background:            color.RGBA{40, 40, 44, 255},
		Foreground:            color.RGBA{230, 230, 230, 255},
		ToolbarBackground:     color.RGBA{30, 30, 34, 255},
		ButtonBackground:      color.RGBA{60, 60, 66, 255},
		ButtonBackgroundHover: color.RGBA{80, 80, 88, 255},
		ButtonBackgroundPress: color.RGBA{100, 100, 140, 255},
		ButtonText:            color.RGBA{230, 230, 230, 255},
		ButtonBorder:          color.RGBA{120, 120, 130, 255},
		StatusBackground:      color.RGBA{30, 30, 34, 255},
		Canvas:                color.RGBA{255, 255, 255, 255},
		Selection:             color.RGBA{51, 153, 255, 255},
		SelectionAlt:          color.RGBA{0, 0, 0, 255},
		HandleBorder:          color.RGBA{0, 0, 0, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		HandleAccent:          color.RGBA{51, 153, 255, 255},
	}
}

// Builtin returns the themes compiled into the binary keyed by lower case
// name.
func Builtin() map[string]func() *Theme {
	return map[string]func() *Theme{
		"default": Default,
		"light":   Default,
		"dark":    Dark,
	}
}
