package job

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/carpdriver/internal/ctxlog"
)

// Runner starts an external program and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs programs with os/exec and streams their output into the
// context logger line by line.
type ExecRunner struct{}

// Run starts name with args and blocks until it exits. A non-zero exit is
// returned as a wrapped *exec.ExitError.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	logger := ctxlog.FromContext(ctx).With("program", name)

	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach stdout of %s: %w", name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to attach stderr of %s: %w", name, err)
	}

	logger.Debug("Starting process.", "args", args)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	// Both pipes must be drained before Wait closes them.
	var g errgroup.Group
	g.Go(func() error { return pump(ctx, stdout, logger, slog.LevelInfo, "stdout") })
	g.Go(func() error { return pump(ctx, stderr, logger, slog.LevelWarn, "stderr") })
	pumpErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	if pumpErr != nil {
		return fmt.Errorf("failed to read output of %s: %w", name, pumpErr)
	}
	logger.Debug("Process finished.")
	return nil
}

// maxLineLen caps a logged output line. Longer lines are cut and marked
// truncated.
const maxLineLen = 64 * 1024

func pump(ctx context.Context, r io.Reader, logger *slog.Logger, level slog.Level, stream string) error {
	br := bufio.NewReaderSize(r, maxLineLen)
	for {
		line, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// Keep draining so the child never blocks on a full pipe.
			_, _ = io.Copy(io.Discard, r)
			return err
		}

		msg := string(line)
		truncated := isPrefix
		for isPrefix && err == nil {
			_, isPrefix, err = br.ReadLine()
		}
		if truncated {
			logger.Log(ctx, level, msg, "stream", stream, "truncated", true)
		} else {
			logger.Log(ctx, level, msg, "stream", stream)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			_, _ = io.Copy(io.Discard, r)
			return err
		}
	}
}
