// Package execute runs external commands with structured logging, timeouts,
// and optional output capture. Shell execution is not supported; callers pass
// argv-style arguments only.
package execute

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chatwootops/chatwootctl/pkg/cwerr"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Options configures a single command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string        // working directory; empty means inherit
	Capture bool          // return combined output instead of streaming it
	Quiet   bool          // suppress streaming to the terminal even uncaptured
	Timeout time.Duration // zero means DefaultTimeout
	Env     []string      // extra environment entries, KEY=VALUE
}

// DefaultTimeout bounds commands that do not set their own. Compose pulls
// override this with something much larger.
const DefaultTimeout = 3 * time.Minute

// Run executes the command described by opts. With Capture set the combined
// stdout/stderr is returned; otherwise output streams to the terminal and the
// returned string is empty.
func Run(ctx context.Context, opts Options) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := otelzap.Ctx(ctx)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmdStr := opts.Command + " " + strings.Join(opts.Args, " ")
	logger.Debug("Executing command",
		zap.String("command", cmdStr),
		zap.String("dir", opts.Dir),
		zap.Duration("timeout", timeout))

	cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var buf bytes.Buffer
	if opts.Capture || opts.Quiet {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	} else {
		cmd.Stdout = io.MultiWriter(os.Stdout, &buf)
		cmd.Stderr = io.MultiWriter(os.Stderr, &buf)
	}

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		summary := cwerr.ExtractSummary(output, 2)
		logger.Debug("Command failed",
			zap.String("command", cmdStr),
			zap.String("summary", summary),
			zap.Error(err))
		if runCtx.Err() == context.DeadlineExceeded {
			return output, cerr.Wrapf(err, "command %q timed out after %s", cmdStr, timeout)
		}
		return output, cerr.Wrapf(err, "command %q failed: %s", cmdStr, summary)
	}

	logger.Debug("Command succeeded", zap.String("command", cmdStr))
	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// LookPath reports whether the named binary is discoverable on PATH.
func LookPath(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
