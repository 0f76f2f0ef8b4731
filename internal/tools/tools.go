// Package tools implements the pointer driven drawing tools of a surface.
package tools

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/fill"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/history"
	"github.com/example/sketchpad/internal/shape"
)

// ErrUnknownTool is wrapped by *UnknownToolError.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError reports a tool name that does not map to a tool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string { return fmt.Sprintf("unknown tool %q", e.Name) }

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// ID names a tool.
type ID int

const (
	Pencil ID = iota
	Brush
	Eraser
	Line
	Rectangle
	Circle
	Fill
)

var all = []ID{Pencil, Brush, Eraser, Line, Rectangle, Circle, Fill}

// All returns every tool in toolbar order.
func All() []ID { return append([]ID(nil), all...) }

func (id ID) String() string {
	switch id {
	case Pencil:
		return "pencil"
	case Brush:
		return "brush"
	case Eraser:
		return "eraser"
	case Line:
		return "line"
	case Rectangle:
		return "rectangle"
	case Circle:
		return "circle"
	case Fill:
		return "fill"
	}
	return fmt.Sprintf("tool(%d)", int(id))
}

// Key is the keyboard shortcut selecting the tool.
func (id ID) Key() rune {
	switch id {
	case Pencil:
		return 'p'
	case Brush:
		return 'b'
	case Eraser:
		return 'e'
	case Line:
		return 'l'
	case Rectangle:
		return 'r'
	case Circle:
		return 'o'
	case Fill:
		return 'f'
	}
	return 0
}

// ParseID maps a tool name to its ID.
func ParseID(name string) (ID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "rect":
		return Rectangle, nil
	case "bucket":
		return Fill, nil
	}
	for _, id := range all {
		if id.String() == n {
			return id, nil
		}
	}
	return 0, &UnknownToolError{Name: name}
}

// BrushStyle is the stamp shape of the brush.
type BrushStyle int

const (
	BrushRound BrushStyle = iota
	BrushSquare
)

func (b BrushStyle) String() string {
	if b == BrushSquare {
		return "square"
	}
	return "round"
}

// ParseBrushStyle accepts "round" or "square".
func ParseBrushStyle(s string) (BrushStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round", "":
		return BrushRound, nil
	case "square":
		return BrushSquare, nil
	}
	return BrushRound, fmt.Errorf("unknown brush style %q", s)
}

// Style holds the colours of the selection overlay.
type Style struct {
	Selection    color.RGBA
	SelectionAlt color.RGBA
	HandleBorder color.RGBA
	HandleFill   color.RGBA
	HandleAccent color.RGBA
}

// Settings are shared by reference between a surface and its tools; a
// change applies to the next gesture.
type Settings struct {
	Color      color.RGBA
	Width      float64
	Background color.RGBA
	Brush      BrushStyle
	Tolerance  int
	HandleSize float64
	HitArea    float64
	Style      Style
}

// DefaultSettings returns black ink of width 2 on white.
func DefaultSettings() Settings {
	return Settings{
		Color:      color.RGBA{A: 255},
		Width:      2,
		Background: color.RGBA{255, 255, 255, 255},
		Tolerance:  fill.DefaultTolerance,
		HandleSize: 20,
		HitArea:    40,
		Style: Style{
			Selection:    color.RGBA{A: 255},
			SelectionAlt: color.RGBA{255, 255, 255, 255},
			HandleBorder: color.RGBA{A: 255},
			HandleFill:   color.RGBA{255, 255, 255, 255},
			HandleAccent: color.RGBA{B: 255, A: 255},
		},
	}
}

// Tool receives pointer events in surface coordinates. PointerUp returns
// the handles of instructions that form one undoable edit, or nil.
type Tool interface {
	PointerDown(p geom.Point)
	PointerMove(p geom.Point)
	PointerUp(p geom.Point) []canvas.Handle
}

// Confirmer is implemented by tools that can hold unfinished work. Confirm
// finalises it and returns the handles of any edit it completes.
type Confirmer interface {
	Confirm() []canvas.Handle
}

// Overlayer is implemented by tools that draw visuals outside the render
// list.
type Overlayer interface {
	Overlay() []canvas.Instruction
}

// CommandSource is implemented by tools that build their own commands.
type CommandSource interface {
	TakeCommand() history.Command
}

// SingleShot is implemented by tools that deactivate after one use.
type SingleShot interface {
	Done() bool
}

// New returns the tool for id drawing onto c.
func New(id ID, c *canvas.Canvas, s *Settings) (Tool, error) {
	switch id {
	case Pencil:
		return &Freehand{c: c, s: s}, nil
	case Eraser:
		return &Freehand{c: c, s: s, erase: true}, nil
	case Brush:
		return &BrushTool{c: c, s: s}, nil
	case Line:
		return NewShapeTool(shape.KindLine, c, s), nil
	case Rectangle:
		return NewShapeTool(shape.KindRectangle, c, s), nil
	case Circle:
		return NewShapeTool(shape.KindCircle, c, s), nil
	case Fill:
		return &FillTool{c: c, s: s}, nil
	}
	return nil, &UnknownToolError{Name: id.String()}
}
