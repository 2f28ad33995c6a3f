package diagnose

import (
	"context"
	"strings"
	"testing"
)

func TestPingHost_Reachable(t *testing.T) {
	runner := &fakeRunner{responses: map[string]RunResult{
		"ping -c 1 203.0.113.9": {Status: RunOK, Output: "1 packets transmitted, 1 received"},
	}}
	ui := &fakePresenter{}
	d := newTestDoctor(runner, ui)

	if !d.PingHost(context.Background(), "203.0.113.9") {
		t.Fatalf("expected reachable")
	}
	ui.stepMessage(t, "Endpoint 203.0.113.9 is reachable.")
}

func TestPingHost_TimeoutMentionsBadState(t *testing.T) {
	runner := &fakeRunner{responses: map[string]RunResult{
		"ping -c 1 203.0.113.9": {Status: RunTimedOut, Err: context.DeadlineExceeded},
	}}
	ui := &fakePresenter{}
	d := newTestDoctor(runner, ui)

	if d.PingHost(context.Background(), "203.0.113.9") {
		t.Fatalf("expected unreachable on timeout")
	}
	step := ui.stepMessage(t, "timed out")
	if !strings.Contains(step.Message, "may be in a bad state") {
		t.Fatalf("timeout message must mention a bad state: %q", step.Message)
	}
}

func TestPingHost_WindowsCountFlag(t *testing.T) {
	runner := &fakeRunner{}
	ui := &fakePresenter{}
	d := newTestDoctor(runner, ui)
	d.goos = "windows"

	d.PingHost(context.Background(), "203.0.113.9")
	if !runner.called("ping -n 1 203.0.113.9") {
		t.Fatalf("expected -n on windows, calls: %v", runner.calls)
	}
}
