package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/blogkit/internal/linebuf"
)

// ErrNoCommand indicates that no clipboard command
// could be found on the host.
var ErrNoCommand = errors.New("no clipboard command found")

// _knownCommands are host clipboard tools in order of preference.
var _knownCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// Command is a [Clipboard] backed by a host command
// that reads the text to copy from stdin.
type Command struct {
	// Args is the command to run, e.g. []string{"xclip", "-selection", "clipboard"}.
	// If unset, the first of the known clipboard tools found on $PATH is used.
	Args []string

	// Log receives the output of the command.
	Log *log.Logger

	// LookPath searches for executables. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

var _ Clipboard = (*Command)(nil)

func (c *Command) args() ([]string, error) {
	if len(c.Args) > 0 {
		return c.Args, nil
	}

	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, args := range _knownCommands {
		if _, err := lookPath(args[0]); err == nil {
			return args, nil
		}
	}
	return nil, ErrNoCommand
}

// WriteText runs the clipboard command with text on stdin.
func (c *Command) WriteText(ctx context.Context, text string) error {
	logger := c.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	args, err := c.args()
	if err != nil {
		return errtrace.Wrap(err)
	}

	out, done := linebuf.Logger(logger, args[0]+": ")
	defer done()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return errtrace.Wrap(fmt.Errorf("%v: %w", args[0], err))
	}
	return nil
}
