package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("sketchpad", flag.ExitOnError),
		program:  "sketchpad",
		notifier: notify.FromConfig(cfg),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, light, dark or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme picks the window theme. An explicit name that fails to load
// falls back to the default with a warning.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SKETCHPAD_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "fill":
		cmd, err = parseFillCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) subcommand(name string) string {
	program := "sketchpad"
	if r != nil && r.program != "" {
		program = r.program
	}
	return strings.TrimSpace(program + " " + name)
}

// newSurface builds a surface carrying the configured drawing settings.
func (r *root) newSurface(opts ...surface.Option) *surface.Surface {
	var base []surface.Option
	if r != nil {
		base = append(base, surface.WithConfig(r.config), surface.WithTheme(r.activeTheme))
	}
	return surface.New(append(base, opts...)...)
}

// exportSettings converts the [export] section. The format is left empty so
// each save picks it from the file extension.
func (r *root) exportSettings() export.Settings {
	s := export.DefaultSettings()
	s.Format = ""
	if r == nil || r.config == nil {
		return s
	}
	e := r.config.Export
	if e.Quality > 0 {
		s.Quality = e.Quality
	}
	if e.DPI > 0 {
		s.DPI = e.DPI
	}
	s.Transparency = e.Transparency
	return s
}

// defaultFormat is the configured format, used for paths without a known
// extension.
func (r *root) defaultFormat() export.Format {
	if r == nil || r.config == nil || r.config.Export.Format == "" {
		return export.PNG
	}
	f, err := export.ParseFormat(r.config.Export.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return export.PNG
	}
	return f
}

// settingsFor picks the output format from the file extension.
func (r *root) settingsFor(path string) export.Settings {
	s := r.exportSettings()
	s.Format = export.FormatFromPath(path, r.defaultFormat())
	return s
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
