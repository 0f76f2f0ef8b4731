package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/sketchpad/internal/tools"
)

type toolsCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	cmd := &toolsCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *toolsCmd) Run() error {
	fmt.Fprintln(c.stdout, "available tools (key, name):")
	for _, id := range tools.All() {
		fmt.Fprintf(c.stdout, "  %c  %s\n", id.Key(), id)
	}
	return nil
}

func (c *toolsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *toolsCmd) Program() string {
	return c.root.subcommand("tools")
}
