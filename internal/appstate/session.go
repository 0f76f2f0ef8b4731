package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/sketchpad/assets"
	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tools"
)

const (
	statusHeight = 22
	buttonHeight = 26
	iconSize     = 18
	swatchSize   = 16
	widthRowH    = 16
	toleranceHop = 8
)

var palette = []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
	{128, 0, 0, 255},
	{0, 128, 0, 255},
	{0, 0, 128, 255},
	{128, 128, 0, 255},
	{0, 128, 128, 255},
	{128, 0, 128, 255},
	{192, 192, 192, 255},
	{128, 128, 128, 255},
}

var widths = []float64{1, 2, 4, 6, 8, 12}

// session is the window independent part of the editor: toolbar layout,
// input routing and frame composition.
type session struct {
	surf     *surface.Surface
	theme    *theme.Theme
	icons    *assets.Table
	output   string
	export   export.Settings
	notifier *notify.Notifier
	now      func() time.Time

	// discardUntil is when a pending New confirmation lapses.
	discardUntil time.Time

	width, height int
	toolbarWidth  int
	toolbarBottom int

	buttons      []*CacheButton
	toolIDs      []tools.ID // parallel to the first len(toolIDs) buttons
	paletteRects []image.Rectangle
	widthRects   []image.Rectangle
	hover        int

	dragging bool
	closing  bool

	message      string
	messageUntil time.Time

	shadow       *image.RGBA
	shadowOrigin image.Point
	shadowSize   image.Point
}

func newSession(surf *surface.Surface, th *theme.Theme) *session {
	if th == nil {
		th = theme.Default()
	}
	s := &session{
		surf:   surf,
		theme:  th,
		icons:  assets.NewTable(th.ButtonText),
		export: export.DefaultSettings(),
		now:    time.Now,
		hover:  -1,
	}
	s.buildToolbar()
	w, h := surf.Size()
	s.resize(w+s.toolbarWidth+32, h+statusHeight+32)
	if s.height < s.toolbarBottom+4 {
		s.resize(s.width, s.toolbarBottom+4)
	}
	return s
}

func (s *session) buildToolbar() {
	s.buttons, s.toolIDs = nil, nil
	widest := labelWidth("Sketchpad")
	for _, id := range tools.All() {
		id := id
		name := id.String()
		label := fmt.Sprintf("%c:%s%s", unicode.ToUpper(id.Key()), strings.ToUpper(name[:1]), name[1:])
		widest = max(widest, iconSize+4+labelWidth(label))
		s.buttons = append(s.buttons, &CacheButton{Button: &ToolButton{
			label:    label,
			icon:     s.icons.Icon(id, iconSize),
			onSelect: func() { s.selectTool(id) },
		}})
		s.toolIDs = append(s.toolIDs, id)
	}
	for _, a := range []struct {
		label string
		fn    func()
	}{
		{"Undo", s.undo},
		{"Redo", s.redo},
		{"New", s.newCanvas},
		{"Save", s.save},
		{"Copy", s.copy},
		{"Paste", s.paste},
	} {
		s.buttons = append(s.buttons, &CacheButton{Button: &ActionButton{label: a.label, onActivate: a.fn}})
	}
	s.toolbarWidth = widest + 12
}

// resize lays the toolbar out for a window of w by h pixels.
func (s *session) resize(w, h int) {
	s.width, s.height = w, h
	y := 0
	for i, b := range s.buttons {
		if i == len(s.toolIDs) {
			y += 6
		}
		b.SetRect(image.Rect(0, y, s.toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	y += 6
	x := 4
	s.paletteRects = s.paletteRects[:0]
	for range palette {
		if x+swatchSize > s.toolbarWidth {
			x = 4
			y += swatchSize + 2
		}
		s.paletteRects = append(s.paletteRects, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + 2
	}
	y += swatchSize + 6
	s.widthRects = s.widthRects[:0]
	for range widths {
		s.widthRects = append(s.widthRects, image.Rect(0, y, s.toolbarWidth, y+widthRowH))
		y += widthRowH
	}
	s.toolbarBottom = y
}

// pageRect is where the surface is drawn, centred in the area right of the
// toolbar.
func (s *session) pageRect() image.Rectangle {
	w, h := s.surf.Size()
	area := image.Rect(s.toolbarWidth, 0, s.width, s.height-statusHeight)
	x := area.Min.X + max(0, (area.Dx()-w)/2)
	y := area.Min.Y + max(0, (area.Dy()-h)/2)
	return image.Rect(x, y, x+w, y+h)
}

// toSurface maps a window position to surface coordinates, where y grows
// upwards from the bottom edge of the page. Integer positions land on pixel
// centres.
func (s *session) toSurface(x, y float32) (float64, float64) {
	page := s.pageRect()
	sx := float64(x) - float64(page.Min.X) + 0.5
	sy := float64(page.Dy()) - (float64(y) - float64(page.Min.Y)) - 0.5
	return sx, sy
}

func (s *session) flash(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.messageUntil = s.now().Add(3 * time.Second)
	log.Print(s.message)
}

func (s *session) selectTool(id tools.ID) {
	if err := s.surf.SelectToolID(id); err != nil {
		s.flash("%v", err)
	}
}

func (s *session) undo() {
	if !s.surf.CanUndo() {
		return
	}
	if err := s.surf.Undo(); err != nil {
		s.flash("undo: %v", err)
	}
}

func (s *session) redo() {
	if !s.surf.CanRedo() {
		return
	}
	if err := s.surf.Redo(); err != nil {
		s.flash("redo: %v", err)
	}
}

// newCanvas starts a blank drawing. With unsaved edits the first request
// only warns and a second one within the message window discards them.
func (s *session) newCanvas() {
	if s.surf.HasUnsavedChanges() && !s.now().Before(s.discardUntil) {
		s.flash("unsaved changes: press New again to discard them")
		s.discardUntil = s.messageUntil
		return
	}
	s.discardUntil = time.Time{}
	s.surf.NewCanvas(0, 0)
	s.flash("new drawing")
}

func (s *session) save() {
	if s.output == "" {
		s.flash("save: no output file")
		return
	}
	s.surf.Confirm()
	if err := export.Save(s.output, s.surf.Export(), s.export); err != nil {
		s.flash("save: %v", err)
		return
	}
	s.surf.MarkSaved()
	s.notifier.Save(s.output)
	s.flash("saved %s", filepath.Base(s.output))
}

func (s *session) copy() {
	s.surf.Confirm()
	img := s.surf.Export()
	if err := clipboard.WriteImage(img); err != nil {
		s.flash("copy: %v", err)
		return
	}
	s.notifier.Copy("", img)
	s.flash("drawing copied to clipboard")
}

func (s *session) paste() {
	img, err := clipboard.ReadImage()
	if err != nil {
		s.flash("paste: %v", err)
		return
	}
	if err := s.surf.LoadImage(img); err != nil {
		s.flash("paste: %v", err)
		return
	}
	s.flash("pasted %dx%d image", img.Bounds().Dx(), img.Bounds().Dy())
}

func (s *session) setWidth(w float64) {
	if err := s.surf.SetStrokeWidth(w); err != nil {
		s.flash("%v", err)
	}
}

// stepWidth moves to the next preset width above or below the current one.
func (s *session) stepWidth(dir int) {
	cur := s.surf.Settings().Width
	if dir > 0 {
		for _, w := range widths {
			if w > cur {
				s.setWidth(w)
				return
			}
		}
		return
	}
	for i := len(widths) - 1; i >= 0; i-- {
		if widths[i] < cur {
			s.setWidth(widths[i])
			return
		}
	}
}

// mouse handles a pointer event and reports whether a redraw is needed.
func (s *session) mouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if s.message != "" && s.now().Before(s.messageUntil) {
			s.messageUntil = time.Time{}
		}
		if p.X < s.toolbarWidth {
			s.clickToolbar(p)
			return true
		}
		if p.Y >= s.height-statusHeight {
			return false
		}
		s.dragging = true
		s.surf.PointerDown(s.toSurface(e.X, e.Y))
		return true
	case mouse.DirRelease:
		if !s.dragging || e.Button != mouse.ButtonLeft {
			return false
		}
		s.dragging = false
		s.surf.PointerUp(s.toSurface(e.X, e.Y))
		return true
	case mouse.DirNone:
		if s.dragging {
			s.surf.PointerMove(s.toSurface(e.X, e.Y))
			return true
		}
		hover := -1
		for i, b := range s.buttons {
			if p.In(b.Rect()) {
				hover = i
				break
			}
		}
		changed := hover != s.hover
		s.hover = hover
		return changed
	}
	return false
}

// clickToolbar confirms any shape being edited before acting on the click.
func (s *session) clickToolbar(p image.Point) {
	s.surf.Confirm()
	for _, b := range s.buttons {
		if p.In(b.Rect()) {
			b.Activate()
			return
		}
	}
	for i, r := range s.paletteRects {
		if p.In(r) {
			s.surf.SetColorRGBA(palette[i])
			return
		}
	}
	for i, r := range s.widthRects {
		if p.In(r) {
			s.setWidth(widths[i])
			return
		}
	}
}

func letter(e key.Event) rune {
	if unicode.IsLetter(e.Rune) {
		return unicode.ToLower(e.Rune)
	}
	if e.Code >= key.CodeA && e.Code <= key.CodeZ {
		return 'a' + rune(e.Code-key.CodeA)
	}
	return e.Rune
}

// key handles a key press and reports whether a redraw is needed.
func (s *session) key(e key.Event) bool {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return false
	}
	ctrl := e.Modifiers&key.ModControl != 0
	shift := e.Modifiers&key.ModShift != 0
	switch e.Code {
	case key.CodeEscape, key.CodeReturnEnter:
		s.surf.Confirm()
		return true
	}
	r := letter(e)
	if ctrl {
		switch r {
		case 'z':
			if shift {
				s.redo()
			} else {
				s.undo()
			}
		case 'y':
			s.redo()
		case 's':
			s.save()
		case 'c':
			s.copy()
		case 'v':
			s.paste()
		case 'n':
			s.newCanvas()
		case 'q', 'w':
			s.closing = true
		default:
			return false
		}
		return true
	}
	for _, id := range tools.All() {
		if r == id.Key() {
			s.selectTool(id)
			return true
		}
	}
	switch e.Rune {
	case '[':
		s.stepWidth(-1)
	case ']':
		s.stepWidth(1)
	case '-':
		s.surf.SetTolerance(s.surf.Settings().Tolerance - toleranceHop)
	case '=', '+':
		s.surf.SetTolerance(s.surf.Settings().Tolerance + toleranceHop)
	default:
		return false
	}
	return true
}

func (s *session) pageShadow(page image.Rectangle) {
	if s.shadow != nil && s.shadowSize == page.Size() {
		return
	}
	s.shadow, s.shadowOrigin = render.PageShadow(page.Dx(), page.Dy(), render.DefaultShadowOptions())
	s.shadowSize = page.Size()
}

// draw composes one window frame into dst.
func (s *session) draw(dst *image.RGBA) {
	th := s.theme
	render.FillRect(dst, dst.Bounds(), th.Background)

	page := s.pageRect()
	s.pageShadow(page)
	if s.shadow != nil {
		at := page.Min.Sub(s.shadowOrigin)
		draw.Draw(dst, s.shadow.Bounds().Add(at), s.shadow, image.Point{}, draw.Over)
	}
	frame := s.surf.Frame()
	draw.Draw(dst, page, frame, image.Point{}, draw.Src)

	s.drawToolbar(dst)
	s.drawStatus(dst)
}

func (s *session) drawToolbar(dst *image.RGBA) {
	th := s.theme
	render.FillRect(dst, image.Rect(0, 0, s.toolbarWidth, s.height), th.ToolbarBackground)
	current, active := s.surf.Tool()
	for i, b := range s.buttons {
		state := StateDefault
		if i < len(s.toolIDs) && active && s.toolIDs[i] == current {
			state = StatePressed
		} else if i == s.hover {
			state = StateHover
		}
		b.Draw(dst, state, th)
	}

	st := s.surf.Settings()
	for i, r := range s.paletteRects {
		render.FillRect(dst, r, palette[i])
		if palette[i] == st.Color {
			render.Rect(dst, r.Inset(-1), th.ButtonBorder, 1)
		}
	}
	for i, r := range s.widthRects {
		bg := th.ButtonBackground
		if widths[i] == st.Width {
			bg = th.ButtonBackgroundPress
		}
		render.FillRect(dst, r, bg)
		drawLabel(dst, r.Min.X+4, r.Min.Y+12, fmt.Sprintf("%g", widths[i]), th.ButtonText)
		mid := r.Min.Y + r.Dy()/2
		render.Line(dst, r.Min.X+30, mid, r.Max.X-4, mid, st.Color, int(widths[i]))
	}
}

func (s *session) status() string {
	w, h := s.surf.Size()
	st := s.surf.Settings()
	tool := "no tool"
	if id, ok := s.surf.Tool(); ok {
		tool = id.String()
	}
	undo, redo := s.surf.History().Len()
	line := fmt.Sprintf("%dx%d  %s  width %g  tolerance %d  undo %d  redo %d", w, h, tool, st.Width, st.Tolerance, undo, redo)
	if s.surf.HasUnsavedChanges() {
		line += "  *"
	}
	if s.message != "" && s.now().Before(s.messageUntil) {
		line += "  " + s.message
	}
	return line
}

func (s *session) drawStatus(dst *image.RGBA) {
	r := image.Rect(s.toolbarWidth, s.height-statusHeight, s.width, s.height)
	render.FillRect(dst, r, s.theme.StatusBackground)
	drawLabel(dst, r.Min.X+6, r.Min.Y+15, s.status(), s.theme.Foreground)
}
