package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/script"
)

// interactiveCmd reads drawing commands from a prompt. Errors are reported
// and the session continues.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute command in immediate mode (may be specified multiple times)")
	fs.StringVar(&i.dir, "dir", "", "directory relative file names resolve against")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Program() string {
	return i.root.subcommand("interactive")
}

func (i *interactiveCmd) runner() *script.Runner {
	opts := []script.Option{
		script.WithOutput(i.stdout),
		script.WithDir(i.dir),
		script.WithExport(i.root.exportSettings()),
	}
	if i.root != nil {
		opts = append(opts, script.WithNotifier(i.root.notifier))
	}
	return script.New(i.root.newSurface(), opts...)
}

func (i *interactiveCmd) Run() error {
	r := i.runner()
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := r.Exec(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'exit' to quit, 'help' for a list)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		done, err := r.Exec(line)
		if err != nil {
			fmt.Fprintln(i.stderr, err)
			continue
		}
		if done {
			break
		}
	}
	if r.Surface().HasUnsavedChanges() {
		fmt.Fprintln(i.stderr, "warning: unsaved changes discarded")
	}
	return scanner.Err()
}
