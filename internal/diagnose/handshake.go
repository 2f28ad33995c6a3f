package diagnose

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// freshHandshakeWindow is how recent a handshake must be to count as a live
// session.
const freshHandshakeWindow = 180 * time.Second

type HandshakeKind int

const (
	HandshakeFresh HandshakeKind = iota
	HandshakeStale
	HandshakeAbsent
	HandshakeUnavailable
)

// HandshakeVerdict is the classifier's view of the latest handshake on one
// interface. SecondsAgo is set for Fresh, MinutesAgo for Stale, Reason for
// Unavailable.
type HandshakeVerdict struct {
	Kind       HandshakeKind
	SecondsAgo int64
	MinutesAgo int64
	Reason     string
}

// Message renders the verdict the way it is reported to the user.
func (v HandshakeVerdict) Message() string {
	switch v.Kind {
	case HandshakeFresh:
		return fmt.Sprintf("Recent handshake found! (%d seconds ago)", v.SecondsAgo)
	case HandshakeStale:
		return fmt.Sprintf("Stale handshake found. (Last handshake was %d minutes ago)", v.MinutesAgo)
	case HandshakeAbsent:
		return "No handshake found for any peer on this interface."
	default:
		return v.Reason
	}
}

// Classification is the single top-level branch decision of a run.
type Classification int

const (
	NoHandshake Classification = iota
	HasHandshake
)

// Classify maps a verdict to the branch decision: only a fresh handshake
// counts as an established tunnel.
func Classify(v HandshakeVerdict) Classification {
	if v.Kind == HandshakeFresh {
		return HasHandshake
	}
	return NoHandshake
}

// classifyHandshake applies the freshness rule to the raw latest-handshakes
// output at the given wall-clock time. Only the first output line is
// consulted; multi-peer interfaces are not disambiguated beyond the first
// entry.
func classifyHandshake(raw string, now time.Time) HandshakeVerdict {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return HandshakeVerdict{Kind: HandshakeAbsent}
	}

	line, _, _ := strings.Cut(raw, "\n")
	fields := strings.Split(strings.TrimSpace(line), "\t")
	if len(fields) != 2 {
		return HandshakeVerdict{Kind: HandshakeUnavailable, Reason: "Failed to parse handshake data."}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return HandshakeVerdict{Kind: HandshakeUnavailable, Reason: "Failed to parse handshake data."}
	}

	age := now.Unix() - ts
	if age < int64(freshHandshakeWindow/time.Second) {
		return HandshakeVerdict{Kind: HandshakeFresh, SecondsAgo: age}
	}
	return HandshakeVerdict{Kind: HandshakeStale, MinutesAgo: age / 60}
}

// CheckHandshake queries the latest handshake timestamps for iface and
// classifies the first record. Query failures and timeouts degrade to an
// Unavailable verdict; they never abort the run.
func (d *Doctor) CheckHandshake(ctx context.Context, iface string) HandshakeVerdict {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	res := d.runner.Run(ctx, "", "wg", "show", iface, "latest-handshakes")
	switch res.Status {
	case RunOK:
		return classifyHandshake(res.Output, d.now())
	case RunTimedOut:
		return HandshakeVerdict{
			Kind:   HandshakeUnavailable,
			Reason: fmt.Sprintf("Timed out waiting for handshake status. Interface '%s' may be in a bad state.", iface),
		}
	default:
		return HandshakeVerdict{
			Kind:   HandshakeUnavailable,
			Reason: fmt.Sprintf("Could not get handshake status. Is interface '%s' up?", iface),
		}
	}
}
