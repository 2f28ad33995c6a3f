package diagnose

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestClassifyHandshake_FreshnessBoundary(t *testing.T) {
	now := time.Unix(2_000_000_000, 0)

	cases := []struct {
		name       string
		secondsAgo int64
		wantKind   HandshakeKind
		wantMsg    string
	}{
		{"just now", 0, HandshakeFresh, "Recent handshake found! (0 seconds ago)"},
		{"thirty seconds", 30, HandshakeFresh, "Recent handshake found! (30 seconds ago)"},
		{"boundary fresh", 179, HandshakeFresh, "Recent handshake found! (179 seconds ago)"},
		{"boundary stale", 180, HandshakeStale, "Stale handshake found. (Last handshake was 3 minutes ago)"},
		{"ten minutes", 600, HandshakeStale, "Stale handshake found. (Last handshake was 10 minutes ago)"},
		{"integer division", 659, HandshakeStale, "Stale handshake found. (Last handshake was 10 minutes ago)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := fmt.Sprintf("PEERKEY\t%d", now.Unix()-tc.secondsAgo)
			v := classifyHandshake(raw, now)
			if v.Kind != tc.wantKind {
				t.Fatalf("kind = %v, want %v", v.Kind, tc.wantKind)
			}
			if v.Message() != tc.wantMsg {
				t.Fatalf("message = %q, want %q", v.Message(), tc.wantMsg)
			}
		})
	}
}

func TestClassifyHandshake_EmptyOutputIsAbsent(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n"} {
		v := classifyHandshake(raw, time.Unix(2_000_000_000, 0))
		if v.Kind != HandshakeAbsent {
			t.Fatalf("classify(%q) = %v, want Absent", raw, v.Kind)
		}
	}
	v := classifyHandshake("", time.Now())
	if v.Message() != "No handshake found for any peer on this interface." {
		t.Fatalf("unexpected absent message: %q", v.Message())
	}
}

func TestClassifyHandshake_MalformedOutputIsUnavailable(t *testing.T) {
	now := time.Unix(2_000_000_000, 0)
	for _, raw := range []string{
		"no tab separator here",
		"PEERKEY\tnot-a-number",
		"PEERKEY\t123\textra-field",
	} {
		v := classifyHandshake(raw, now)
		if v.Kind != HandshakeUnavailable {
			t.Fatalf("classify(%q) = %v, want Unavailable", raw, v.Kind)
		}
		if v.Message() != "Failed to parse handshake data." {
			t.Fatalf("unexpected reason: %q", v.Message())
		}
	}
}

func TestClassifyHandshake_FirstLineOnly(t *testing.T) {
	now := time.Unix(2_000_000_000, 0)
	raw := fmt.Sprintf("PEER1\t%d\nPEER2\t%d", now.Unix()-30, now.Unix()-6000)
	v := classifyHandshake(raw, now)
	if v.Kind != HandshakeFresh || v.SecondsAgo != 30 {
		t.Fatalf("expected first record to win, got %+v", v)
	}
}

func TestClassify_Mapping(t *testing.T) {
	cases := []struct {
		kind HandshakeKind
		want Classification
	}{
		{HandshakeFresh, HasHandshake},
		{HandshakeStale, NoHandshake},
		{HandshakeAbsent, NoHandshake},
		{HandshakeUnavailable, NoHandshake},
	}
	for _, tc := range cases {
		if got := Classify(HandshakeVerdict{Kind: tc.kind}); got != tc.want {
			t.Fatalf("Classify(%v) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestCheckHandshake_QueryFailureDegrades(t *testing.T) {
	runner := &fakeRunner{responses: map[string]RunResult{
		"wg show wg0 latest-handshakes": {Status: RunNonZeroExit, Err: fmt.Errorf("exit status 1")},
	}}
	d := newTestDoctor(runner, &fakePresenter{})

	v := d.CheckHandshake(context.Background(), "wg0")
	if v.Kind != HandshakeUnavailable {
		t.Fatalf("expected Unavailable, got %v", v.Kind)
	}
	if v.Reason != "Could not get handshake status. Is interface 'wg0' up?" {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}
}

func TestCheckHandshake_TimeoutMentionsBadState(t *testing.T) {
	runner := &fakeRunner{responses: map[string]RunResult{
		"wg show wg0 latest-handshakes": {Status: RunTimedOut, Err: context.DeadlineExceeded},
	}}
	d := newTestDoctor(runner, &fakePresenter{})

	v := d.CheckHandshake(context.Background(), "wg0")
	if v.Kind != HandshakeUnavailable {
		t.Fatalf("expected Unavailable, got %v", v.Kind)
	}
	if !strings.Contains(v.Reason, "may be in a bad state") {
		t.Fatalf("timeout reason must mention a bad state, got %q", v.Reason)
	}
}
