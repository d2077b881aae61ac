package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/paths"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultShell is used when Options.Shell is empty
const DefaultShell = "/bin/sh"

// pipeWaitDelay bounds how long Run waits for output pipes after the shell
// is killed. Children of the shell can hold them open past the timeout.
const pipeWaitDelay = 500 * time.Millisecond

// Runner executes a single build script
type Runner interface {
	Run(ctx context.Context, script types.Script) error
}

// Options contains configuration for the shell runner
type Options struct {
	// Shell receives the script content after -c
	Shell string
	// Timeout bounds each script; zero means wait forever
	Timeout time.Duration
	// Dir is the working directory for scripts; empty inherits ours
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Logger defaults to the package component logger
	Logger *zerolog.Logger
}

// ShellRunner runs scripts through a shell
type ShellRunner struct {
	shell   string
	timeout time.Duration
	dir     string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  zerolog.Logger
}

// New creates a new shell runner
func New(opts Options) *ShellRunner {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	r := &ShellRunner{
		shell:   opts.Shell,
		timeout: opts.Timeout,
		dir:     opts.Dir,
		stdin:   opts.Stdin,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		logger:  logger,
	}
	if r.shell == "" {
		r.shell = DefaultShell
	}
	if r.stdin == nil {
		r.stdin = os.Stdin
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	return r
}

// Run executes script and waits for it. A non-zero exit, a spawn failure or
// a timeout is reported as an ErrBuildScript error naming the script.
func (r *ShellRunner) Run(ctx context.Context, script types.Script) error {
	content := script.Content()
	command := commandLine(content)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Debug().
		Str("script", script.Name).
		Str("content", content.Kind.String()).
		Str("shell", r.shell).
		Msg("Executing build script")

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = pipeWaitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return hberrors.NewBuildScriptError(script.Name, -1, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return hberrors.NewBuildScriptError(script.Name, exitErr.ExitCode(), err)
		}
		return hberrors.NewBuildScriptError(script.Name, -1, err)
	}

	r.logger.Debug().
		Str("script", script.Name).
		Dur("duration", time.Since(start)).
		Msg("Build script finished")
	return nil
}

// commandLine turns script content into the string given to the shell.
// A file reference is quoted so the path is invoked as a single command word.
func commandLine(content types.ScriptContent) string {
	if content.Kind == types.ContentInline {
		return content.Body
	}
	return shellQuote(paths.Expand(content.Body))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Verify interface compliance
var _ Runner = (*ShellRunner)(nil)
