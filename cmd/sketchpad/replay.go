package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/script"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// replayCmd runs drawing scripts without opening a window.
type replayCmd struct {
	*root
	fs      *flag.FlagSet
	execs   commandList
	dir     string
	output  string
	scripts []string
	stdin   io.Reader
	stdout  io.Writer
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command after the scripts (may be specified multiple times)")
	fs.StringVar(&c.dir, "dir", "", "directory relative paths in scripts resolve against (defaults to each script's directory)")
	fs.StringVar(&c.output, "output", "", "save the final canvas to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.scripts = fs.Args()
	if len(c.scripts) == 0 && len(c.execs) == 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Program() string {
	return c.root.subcommand("replay")
}

func (c *replayCmd) runner() *script.Runner {
	opts := []script.Option{
		script.WithOutput(c.stdout),
		script.WithExport(c.root.exportSettings()),
	}
	if c.root != nil {
		opts = append(opts, script.WithNotifier(c.root.notifier))
	}
	return script.New(c.root.newSurface(), opts...)
}

func (c *replayCmd) Run() error {
	r := c.runner()
	for _, name := range c.scripts {
		if err := c.runScript(r, name); err != nil {
			return err
		}
	}
	if len(c.execs) > 0 {
		r.SetDir(c.dir)
	}
	for _, line := range c.execs {
		done, err := r.Exec(line)
		if err != nil {
			return fmt.Errorf("-e %q: %w", line, err)
		}
		if done {
			break
		}
	}
	if c.output == "" {
		return nil
	}
	s := r.Surface()
	s.Confirm()
	if err := export.Save(c.output, s.Export(), c.root.settingsFor(c.output)); err != nil {
		return err
	}
	s.MarkSaved()
	c.root.notifySave(c.output)
	return nil
}

func (c *replayCmd) runScript(r *script.Runner, name string) error {
	if name == "-" {
		r.SetDir(c.dir)
		return r.Run(c.stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	dir := c.dir
	if dir == "" {
		dir = filepath.Dir(name)
	}
	r.SetDir(dir)
	if err := r.Run(f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
