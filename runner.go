package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jstokke/wireguard-doctor/internal/diagnose"
)

// execRunner is the real CommandRunner: one exec.CommandContext per call so
// user interruption and step timeouts kill the child process.
type execRunner struct {
	log *zap.Logger
}

func newExecRunner(log *zap.Logger) *execRunner {
	return &execRunner{log: log}
}

func (r *execRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (r *execRunner) Run(ctx context.Context, stdin string, name string, args ...string) diagnose.RunResult {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := strings.TrimSpace(buf.String())

	res := diagnose.RunResult{Status: diagnose.RunOK, Output: out}
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			res.Status = diagnose.RunTimedOut
			res.Err = fmt.Errorf("%s timed out: %w", name, ctx.Err())
		case errors.Is(err, exec.ErrNotFound):
			res.Status = diagnose.RunToolMissing
			res.Err = err
		default:
			res.Status = diagnose.RunNonZeroExit
			if out != "" {
				res.Err = fmt.Errorf("%w (%s)", err, out)
			} else {
				res.Err = err
			}
		}
	}

	r.log.Debug("exec",
		zap.String("cmd", name),
		zap.Strings("args", args),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("status", int(res.Status)),
		zap.Error(res.Err))
	return res
}
