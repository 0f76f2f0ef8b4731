package history

import (
	"fmt"
	"log"

	"github.com/example/sketchpad/internal/canvas"
)

// StrokeCommand owns the instructions added by one gesture, colour first.
type StrokeCommand struct {
	entries canvas.List
}

// NewStrokeCommand captures the records behind handles. Handles that are no
// longer in the render list are skipped.
func NewStrokeCommand(c *canvas.Canvas, handles []canvas.Handle) *StrokeCommand {
	cmd := &StrokeCommand{entries: make(canvas.List, 0, len(handles))}
	for _, h := range handles {
		rec, ok := c.Instruction(h)
		if !ok {
			log.Printf("stroke: dropping unknown instruction %s", h)
			continue
		}
		cmd.entries = append(cmd.entries, canvas.Entry{Handle: h, Instr: rec})
	}
	return cmd
}

// Handles returns the instruction handles in insertion order.
func (s *StrokeCommand) Handles() []canvas.Handle {
	out := make([]canvas.Handle, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Handle
	}
	return out
}

// Undo removes the instructions in reverse order.
func (s *StrokeCommand) Undo(c *canvas.Canvas) error {
	var failures []error
	for i := len(s.entries) - 1; i >= 0; i-- {
		if _, err := c.Remove(s.entries[i].Handle); err != nil {
			failures = append(failures, err)
		}
	}
	return replayErr("undo stroke", failures)
}

// Redo re-appends the instructions in their original order.
func (s *StrokeCommand) Redo(c *canvas.Canvas) error {
	var failures []error
	for _, e := range s.entries {
		if err := c.Restore(e.Handle, e.Instr); err != nil {
			failures = append(failures, err)
		}
	}
	return replayErr("redo stroke", failures)
}

// ImageLoadCommand replaces the whole render list with a loaded image.
type ImageLoadCommand struct {
	before, after canvas.List
	oldW, oldH    int
	newW, newH    int
}

// ApplyImageLoad resizes c to the image, replaces the render list with a
// background fill and the image blit, and returns the command that reverses
// it.
func ApplyImageLoad(c *canvas.Canvas, img canvas.Instruction, width, height int) *ImageLoadCommand {
	cmd := &ImageLoadCommand{before: c.Snapshot(), newW: width, newH: height}
	cmd.oldW, cmd.oldH = c.Size()

	c.Clear()
	c.Resize(width, height)
	bounds := c.Bounds()
	c.Add(canvas.SetColor(c.Background()))
	c.Add(canvas.FillRect(bounds))
	img.Rect = bounds
	c.Add(img)
	cmd.after = c.Snapshot()
	return cmd
}

// Textures names the textures of the list the load replaced.
func (l *ImageLoadCommand) Textures(ids map[canvas.TextureID]bool) {
	l.before.Textures(ids)
}

func (l *ImageLoadCommand) Undo(c *canvas.Canvas) error {
	c.Resize(l.oldW, l.oldH)
	c.Replace(l.before)
	return nil
}

func (l *ImageLoadCommand) Redo(c *canvas.Canvas) error {
	c.Resize(l.newW, l.newH)
	c.Replace(l.after)
	return nil
}

func (l *ImageLoadCommand) String() string {
	return fmt.Sprintf("load %dx%d", l.newW, l.newH)
}
