// Package script drives a surface from a line oriented command language.
// Each line holds one command followed by its arguments; blank lines and
// lines starting with # are skipped.
//
//	size 200 100
//	tool rectangle
//	color #ff0000
//	drag 10 10 120 80
//	save out.png
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tools"
)

var (
	// ErrUnknownCommand is returned for a command word that is not defined.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("usage")
)

// LineError ties a failure to the script line that caused it.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Runner executes commands against one surface.
type Runner struct {
	s        *surface.Surface
	out      io.Writer
	dir      string
	export   export.Settings
	notifier *notify.Notifier
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where status and help text are written.
func WithOutput(w io.Writer) Option { return func(r *Runner) { r.out = w } }

// WithDir resolves relative load and save paths against dir.
func WithDir(dir string) Option { return func(r *Runner) { r.dir = dir } }

// WithExport sets the encoder settings used by save.
func WithExport(s export.Settings) Option { return func(r *Runner) { r.export = s } }

// WithNotifier announces saves and copies through n.
func WithNotifier(n *notify.Notifier) Option { return func(r *Runner) { r.notifier = n } }

// New creates a Runner for s.
func New(s *surface.Surface, opts ...Option) *Runner {
	r := &Runner{s: s, out: io.Discard, export: export.Settings{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Surface returns the surface the runner draws on.
func (r *Runner) Surface() *surface.Surface { return r.s }

// SetDir changes the directory relative file names resolve against.
func (r *Runner) SetDir(dir string) { r.dir = dir }

// Run executes every line read from in and stops at the first failure,
// which is returned as a *LineError.
func (r *Runner) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		done, err := r.Exec(sc.Text())
		if err != nil {
			return &LineError{Line: n, Text: strings.TrimSpace(sc.Text()), Err: err}
		}
		if done {
			return nil
		}
	}
	return sc.Err()
}

// Exec runs a single command line. done reports an exit command.
func (r *Runner) Exec(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	name := strings.ToLower(args[0])
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		return false, r.help()
	}
	c, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}
	if len(args)-1 < c.min || (c.max >= 0 && len(args)-1 > c.max) {
		return false, fmt.Errorf("%w: %s %s", ErrUsage, name, c.args)
	}
	return false, c.run(r, args[1:])
}

func (r *Runner) help() error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c := commands[n]
		if _, err := fmt.Fprintf(r.out, "  %-14s %-22s %s\n", n, c.args, c.help); err != nil {
			return err
		}
	}
	return nil
}

// Commands lists the command words in alphabetical order.
func Commands() []string {
	names := []string{"exit", "help"}
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type command struct {
	args     string
	help     string
	min, max int
	run      func(r *Runner, args []string) error
}

var commands = map[string]command{
	"size":          {"W H", "start a new blank surface of W by H pixels", 2, 2, (*Runner).size},
	"new":           {"[W H]", "clear the surface and history", 0, 2, (*Runner).newCanvas},
	"tool":          {"NAME", "select pencil, brush, eraser, line, rectangle, circle or fill", 1, 1, (*Runner).tool},
	"color":         {"#RRGGBB|NAME|R G B [A]", "set the drawing colour", 1, 4, (*Runner).color},
	"width":         {"N", "set the stroke width", 1, 1, (*Runner).width},
	"tolerance":     {"N", "set the fill tolerance (0-255)", 1, 1, (*Runner).tolerance},
	"brush":         {"round|square", "set the brush stamp shape", 1, 1, (*Runner).brush},
	"down":          {"X Y", "press the pointer", 2, 2, pointer((*surface.Surface).PointerDown)},
	"move":          {"X Y", "move the pointer", 2, 2, pointer((*surface.Surface).PointerMove)},
	"up":            {"X Y", "release the pointer", 2, 2, pointer((*surface.Surface).PointerUp)},
	"click":         {"X Y", "press and release at one point", 2, 2, (*Runner).click},
	"drag":          {"X0 Y0 X1 Y1 [STEPS]", "press, move in STEPS and release", 4, 5, (*Runner).drag},
	"confirm":       {"", "finish the shape being edited", 0, 0, (*Runner).confirm},
	"undo":          {"[N]", "undo the last N edits", 0, 1, (*Runner).undo},
	"redo":          {"[N]", "redo the last N undone edits", 0, 1, (*Runner).redo},
	"clear-history": {"", "forget all undo and redo steps", 0, 0, (*Runner).clearHistory},
	"load":          {"PATH", "load an image, resizing the surface", 1, 1, (*Runner).load},
	"save":          {"PATH", "export the surface to PATH", 1, 1, (*Runner).save},
	"frame":         {"PATH", "export the surface with the selection overlay", 1, 1, (*Runner).frame},
	"copy":          {"", "copy the surface to the clipboard", 0, 0, (*Runner).copy},
	"paste":         {"", "load the clipboard image", 0, 0, (*Runner).paste},
	"status":        {"", "print size, tool and history depth", 0, 0, (*Runner).status},
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func parseSize(args []string) (int, int, error) {
	w, err := strconv.Atoi(args[0])
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width %q", args[0])
	}
	h, err := strconv.Atoi(args[1])
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height %q", args[1])
	}
	return w, h, nil
}

func optionalCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}

func (r *Runner) path(p string) string {
	if r.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.dir, p)
}

func (r *Runner) size(args []string) error {
	w, h, err := parseSize(args)
	if err != nil {
		return err
	}
	r.s.NewCanvas(w, h)
	return nil
}

func (r *Runner) newCanvas(args []string) error {
	switch len(args) {
	case 0:
		r.s.NewCanvas(0, 0)
		return nil
	case 2:
		return r.size(args)
	}
	return fmt.Errorf("%w: new [W H]", ErrUsage)
}

func (r *Runner) tool(args []string) error { return r.s.SelectTool(args[0]) }

func (r *Runner) color(args []string) error {
	if len(args) == 1 {
		c, err := theme.ParseColor(args[0])
		if err != nil {
			return err
		}
		r.s.SetColorRGBA(c)
		return nil
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: color R G B [A]", ErrUsage)
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	if len(v) == 3 {
		v = append(v, 1)
	}
	r.s.SetColor(v[0], v[1], v[2], v[3])
	return nil
}

func (r *Runner) width(args []string) error {
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	return r.s.SetStrokeWidth(v[0])
}

func (r *Runner) tolerance(args []string) error {
	t, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid tolerance %q", args[0])
	}
	r.s.SetTolerance(t)
	return nil
}

func (r *Runner) brush(args []string) error {
	b, err := tools.ParseBrushStyle(args[0])
	if err != nil {
		return err
	}
	r.s.SetBrushStyle(b)
	return nil
}

func pointer(fn func(*surface.Surface, float64, float64)) func(*Runner, []string) error {
	return func(r *Runner, args []string) error {
		v, err := parseFloats(args)
		if err != nil {
			return err
		}
		fn(r.s, v[0], v[1])
		return nil
	}
}

func (r *Runner) click(args []string) error {
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	r.s.PointerDown(v[0], v[1])
	r.s.PointerUp(v[0], v[1])
	return nil
}

func (r *Runner) drag(args []string) error {
	steps := 8
	if len(args) == 5 {
		n, err := strconv.Atoi(args[4])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid step count %q", args[4])
		}
		steps = n
		args = args[:4]
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	x0, y0, x1, y1 := v[0], v[1], v[2], v[3]
	r.s.PointerDown(x0, y0)
	for i := 1; i < steps; i++ {
		f := float64(i) / float64(steps)
		r.s.PointerMove(x0+(x1-x0)*f, y0+(y1-y0)*f)
	}
	r.s.PointerUp(x1, y1)
	return nil
}

func (r *Runner) confirm([]string) error {
	r.s.Confirm()
	return nil
}

func (r *Runner) undo(args []string) error {
	n, err := optionalCount(args)
	if err != nil {
		return err
	}
	var errs []error
	for i := 0; i < n && r.s.CanUndo(); i++ {
		errs = append(errs, r.s.Undo())
	}
	return errors.Join(errs...)
}

func (r *Runner) redo(args []string) error {
	n, err := optionalCount(args)
	if err != nil {
		return err
	}
	var errs []error
	for i := 0; i < n && r.s.CanRedo(); i++ {
		errs = append(errs, r.s.Redo())
	}
	return errors.Join(errs...)
}

func (r *Runner) clearHistory([]string) error {
	r.s.ClearHistory()
	return nil
}

func (r *Runner) load(args []string) error {
	img, err := export.Load(r.path(args[0]))
	if err != nil {
		return err
	}
	return r.s.LoadImage(img)
}

func (r *Runner) save(args []string) error {
	p := r.path(args[0])
	r.s.Confirm()
	if err := export.Save(p, r.s.Export(), r.export); err != nil {
		return err
	}
	r.s.MarkSaved()
	r.notifier.Save(p)
	return nil
}

func (r *Runner) frame(args []string) error {
	return export.Save(r.path(args[0]), r.s.Frame(), r.export)
}

func (r *Runner) copy([]string) error {
	r.s.Confirm()
	img := r.s.Export()
	if err := clipboard.WriteImage(img); err != nil {
		return err
	}
	r.notifier.Copy("", img)
	return nil
}

func (r *Runner) paste([]string) error {
	img, err := clipboard.ReadImage()
	if err != nil {
		return err
	}
	return r.s.LoadImage(img)
}

func (r *Runner) status([]string) error {
	w, h := r.s.Size()
	tool := "none"
	if id, ok := r.s.Tool(); ok {
		tool = id.String()
	}
	undo, redo := r.s.History().Len()
	_, err := fmt.Fprintf(r.out, "size=%dx%d tool=%s undo=%d redo=%d\n", w, h, tool, undo, redo)
	return err
}
