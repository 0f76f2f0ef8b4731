// Package canvas stores the ordered render list of a drawing surface and
// rasterises it into pixel buffers.
//
// Instructions live in an arena keyed by Handle. Removing an instruction
// only unlinks it from the ordered list; whoever holds the Handle and the
// record can put it back with Restore.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
)

var (
	// ErrUnknownHandle is returned when a handle is not in the render list.
	ErrUnknownHandle = errors.New("canvas: unknown instruction handle")
	// ErrDuplicateHandle is returned when restoring a handle that is already
	// in the render list.
	ErrDuplicateHandle = errors.New("canvas: instruction handle already present")
	// ErrUnknownTexture is returned for texture ids the canvas does not hold.
	ErrUnknownTexture = errors.New("canvas: unknown texture")
)

// Handle identifies an instruction for as long as any command refers to it.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

// Entry pairs a handle with its record.
type Entry struct {
	Handle Handle
	Instr  *Instruction
}

// List is an ordered render list snapshot.
type List []Entry

// Canvas is the render list of one drawing surface. It is not safe for
// concurrent use.
type Canvas struct {
	width, height int
	background    color.RGBA
	position      geom.Point

	order   []Handle
	records map[Handle]*Instruction

	textures    map[TextureID]*image.RGBA
	nextTexture TextureID

	capture *image.RGBA
}

// New returns an empty canvas of the given pixel size.
func New(width, height int, background color.RGBA) *Canvas {
	return &Canvas{
		width:      width,
		height:     height,
		background: background,
		records:    make(map[Handle]*Instruction),
		textures:   make(map[TextureID]*image.RGBA),
	}
}

// Size returns the surface size in pixels.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Bounds returns the surface rectangle in surface coordinates.
func (c *Canvas) Bounds() geom.Rect {
	return geom.Rect{W: float64(c.width), H: float64(c.height)}
}

// Resize changes the surface size. The render list is kept.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.invalidate()
}

func (c *Canvas) Background() color.RGBA { return c.background }

// Position is where the surface sits inside its host window.
func (c *Canvas) Position() geom.Point { return c.position }

func (c *Canvas) SetPosition(p geom.Point) { c.position = p }

// Len returns the number of instructions in the render list.
func (c *Canvas) Len() int { return len(c.order) }

// Handles returns the render list order.
func (c *Canvas) Handles() []Handle {
	out := make([]Handle, len(c.order))
	copy(out, c.order)
	return out
}

// Add appends in to the render list.
func (c *Canvas) Add(in Instruction) Handle {
	h := Handle(uuid.New())
	rec := in
	c.records[h] = &rec
	c.order = append(c.order, h)
	c.invalidate()
	return h
}

// Instruction returns the live record for h.
func (c *Canvas) Instruction(h Handle) (*Instruction, bool) {
	rec, ok := c.records[h]
	return rec, ok
}

// Contains reports whether h is in the render list.
func (c *Canvas) Contains(h Handle) bool {
	_, ok := c.records[h]
	return ok
}

// Update mutates the record for h in place.
func (c *Canvas) Update(h Handle, fn func(*Instruction)) error {
	rec, ok := c.records[h]
	if !ok {
		return fmt.Errorf("update %s: %w", h, ErrUnknownHandle)
	}
	fn(rec)
	c.invalidate()
	return nil
}

// Remove unlinks h from the render list and returns its record.
func (c *Canvas) Remove(h Handle) (*Instruction, error) {
	rec, ok := c.records[h]
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", h, ErrUnknownHandle)
	}
	delete(c.records, h)
	for i, oh := range c.order {
		if oh == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.invalidate()
	return rec, nil
}

// Restore appends a previously removed record under its original handle.
func (c *Canvas) Restore(h Handle, rec *Instruction) error {
	if rec == nil {
		return fmt.Errorf("restore %s: nil instruction", h)
	}
	if _, ok := c.records[h]; ok {
		return fmt.Errorf("restore %s: %w", h, ErrDuplicateHandle)
	}
	c.records[h] = rec
	c.order = append(c.order, h)
	c.invalidate()
	return nil
}

// Snapshot returns the current render list. Records are shared with the
// canvas.
func (c *Canvas) Snapshot() List {
	l := make(List, 0, len(c.order))
	for _, h := range c.order {
		l = append(l, Entry{Handle: h, Instr: c.records[h]})
	}
	return l
}

// Replace swaps the whole render list for l.
func (c *Canvas) Replace(l List) {
	c.order = make([]Handle, 0, len(l))
	c.records = make(map[Handle]*Instruction, len(l))
	for _, e := range l {
		if e.Instr == nil {
			continue
		}
		if _, dup := c.records[e.Handle]; dup {
			continue
		}
		c.order = append(c.order, e.Handle)
		c.records[e.Handle] = e.Instr
	}
	c.invalidate()
}

// Clear empties the render list.
func (c *Canvas) Clear() { c.Replace(nil) }

// NewTexture stores a copy of img and returns its id.
func (c *Canvas) NewTexture(img *image.RGBA) TextureID {
	c.nextTexture++
	c.textures[c.nextTexture] = render.Clone(img)
	return c.nextTexture
}

// Textures adds the ids of the textures l draws to ids.
func (l List) Textures(ids map[TextureID]bool) {
	for _, e := range l {
		if e.Instr != nil && e.Instr.Op == OpTexture {
			ids[e.Instr.Texture] = true
		}
	}
}

// DropTexture releases the pixels of texture id.
func (c *Canvas) DropTexture(id TextureID) {
	delete(c.textures, id)
}

// PruneTextures drops every texture that is neither drawn by the render
// list nor named in keep. It returns the number of textures released.
func (c *Canvas) PruneTextures(keep map[TextureID]bool) int {
	live := make(map[TextureID]bool, len(keep)+1)
	for id := range keep {
		live[id] = true
	}
	c.Snapshot().Textures(live)
	n := 0
	for id := range c.textures {
		if !live[id] {
			c.DropTexture(id)
			n++
		}
	}
	return n
}

// TextureCount returns the number of textures held.
func (c *Canvas) TextureCount() int { return len(c.textures) }

// Texture returns the texture pixels for id.
func (c *Canvas) Texture(id TextureID) (*image.RGBA, bool) {
	t, ok := c.textures[id]
	return t, ok
}

// SetTexturePixels overwrites the pixels of texture id with img.
func (c *Canvas) SetTexturePixels(id TextureID, img *image.RGBA) error {
	if _, ok := c.textures[id]; !ok {
		return fmt.Errorf("texture %d: %w", id, ErrUnknownTexture)
	}
	c.textures[id] = render.Clone(img)
	c.invalidate()
	return nil
}

// Capture returns a copy of the rasterised render list. The rasterisation
// is cached until the list changes.
func (c *Canvas) Capture() *image.RGBA {
	if c.capture == nil || c.capture.Bounds().Dx() != c.width || c.capture.Bounds().Dy() != c.height {
		c.capture = c.rasterize()
	}
	return render.Clone(c.capture)
}

// SetCapture primes the capture cache with img, which must match the
// current size.
func (c *Canvas) SetCapture(img *image.RGBA) {
	if img == nil || img.Bounds().Dx() != c.width || img.Bounds().Dy() != c.height {
		c.capture = nil
		return
	}
	c.capture = render.Clone(img)
}

func (c *Canvas) invalidate() { c.capture = nil }
