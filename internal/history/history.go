// Package history records reversible edits of a canvas and replays them
// for undo and redo.
package history

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/example/sketchpad/internal/canvas"
)

// DefaultCapacity bounds the undo stack when no capacity is configured.
const DefaultCapacity = 50

// Command is one reversible edit. Undo and Redo attempt every step they
// contain and report failed steps through a *ReplayError.
type Command interface {
	Undo(c *canvas.Canvas) error
	Redo(c *canvas.Canvas) error
}

// ReplayError collects the steps of a command that could not be replayed.
type ReplayError struct {
	Op       string
	Failures []error
}

func (e *ReplayError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%s: %d step(s) failed: %s", e.Op, len(e.Failures), strings.Join(msgs, "; "))
}

func (e *ReplayError) Unwrap() []error { return e.Failures }

func replayErr(op string, failures []error) error {
	if len(failures) == 0 {
		return nil
	}
	return &ReplayError{Op: op, Failures: failures}
}

// Stack holds the undo and redo stacks.
type Stack struct {
	capacity int
	undo     []Command
	redo     []Command
}

// NewStack returns a stack that keeps at most capacity undo entries.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

func (s *Stack) Capacity() int { return s.capacity }

// Push records cmd as the most recent edit and discards the redo stack.
func (s *Stack) Push(cmd Command) {
	if cmd == nil {
		return
	}
	s.undo = append(s.undo, cmd)
	if over := len(s.undo) - s.capacity; over > 0 {
		clear(s.undo[:over])
		s.undo = s.undo[over:]
	}
	clear(s.redo)
	s.redo = s.redo[:0]
}

// Undo reverses the most recent edit. It reports false when there was
// nothing to undo. A replay failure is returned after the command has moved
// to the redo stack.
func (s *Stack) Undo(c *canvas.Canvas) (bool, error) {
	if len(s.undo) == 0 {
		return false, nil
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	err := cmd.Undo(c)
	if err != nil {
		log.Printf("undo: %v", err)
	}
	s.redo = append(s.redo, cmd)
	return true, err
}

// Redo reapplies the most recently undone edit.
func (s *Stack) Redo(c *canvas.Canvas) (bool, error) {
	if len(s.redo) == 0 {
		return false, nil
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	err := cmd.Redo(c)
	if err != nil {
		log.Printf("redo: %v", err)
	}
	s.undo = append(s.undo, cmd)
	return true, err
}

// Clear drops both stacks.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

// TextureHolder is implemented by commands whose replay draws canvas
// textures.
type TextureHolder interface {
	Textures(ids map[canvas.TextureID]bool)
}

// Prune releases the canvas textures that neither the render list nor a
// command on either stack can bring back.
func (s *Stack) Prune(c *canvas.Canvas) int {
	keep := make(map[canvas.TextureID]bool)
	for _, stack := range [][]Command{s.undo, s.redo} {
		for _, cmd := range stack {
			if th, ok := cmd.(TextureHolder); ok {
				th.Textures(keep)
			}
		}
	}
	return c.PruneTextures(keep)
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Len returns the sizes of the undo and redo stacks.
func (s *Stack) Len() (undo, redo int) { return len(s.undo), len(s.redo) }

// IsReplayError reports whether err carries a *ReplayError.
func IsReplayError(err error) bool {
	var re *ReplayError
	return errors.As(err, &re)
}
