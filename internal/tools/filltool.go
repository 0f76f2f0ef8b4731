package tools

import (
	"log"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/fill"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/history"
	"github.com/example/sketchpad/internal/render"
)

// FillTool flood-fills the region under the first pointer-down and then
// reports itself done.
type FillTool struct {
	c *canvas.Canvas
	s *Settings

	done bool
	cmd  history.Command
}

func (f *FillTool) PointerDown(p geom.Point) {
	if f.done {
		return
	}
	f.done = true
	w, h := f.c.Size()
	// The far edges belong to no pixel.
	if p.X < 0 || p.Y < 0 || p.X >= float64(w) || p.Y >= float64(h) {
		return
	}
	x, y := int(p.X), fill.Row(h, p.Y)

	buf := f.c.Capture()
	before := render.Clone(buf)
	if fill.Fill(buf, x, y, f.s.Tolerance, f.s.Color) == 0 {
		return
	}
	cmd, err := history.ApplyFill(f.c, before, buf)
	if err != nil {
		log.Printf("fill: %v", err)
		return
	}
	f.cmd = cmd
}

func (f *FillTool) PointerMove(geom.Point) {}

func (f *FillTool) PointerUp(geom.Point) []canvas.Handle { return nil }

// TakeCommand hands over the command of a completed fill once.
func (f *FillTool) TakeCommand() history.Command {
	cmd := f.cmd
	f.cmd = nil
	return cmd
}

// Done reports whether the tool has been used.
func (f *FillTool) Done() bool { return f.done }
