package diagnose

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/curve25519"
)

// DerivePublicKey derives the public key for privateKey by feeding it to
// `wg pubkey` on stdin. A missing helper or non-zero exit is an error; the
// orchestrator treats it as fatal. No explicit timeout: this is a
// short-lived local computation.
func (d *Doctor) DerivePublicKey(ctx context.Context, privateKey string) (string, error) {
	res := d.runner.Run(ctx, privateKey, "wg", "pubkey")
	if res.Status != RunOK {
		return "", fmt.Errorf("derive public key: %w", res.Err)
	}
	return strings.TrimSpace(res.Output), nil
}

// localPublicKey derives the X25519 public key for a base64 private key
// without invoking wg, as a cross-check of the external helper.
func localPublicKey(privB64 string) (string, error) {
	privRaw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(privB64))
	if err != nil {
		return "", fmt.Errorf("decode private key: %w", err)
	}
	if len(privRaw) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes, got %d", len(privRaw))
	}

	// Clamp (per X25519). Some inputs are already clamped, but do it anyway.
	var priv [32]byte
	copy(priv[:], privRaw)
	priv[0] &= 248
	priv[31] = (priv[31] & 127) | 64

	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("derive public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), nil
}

// FindInterfaceForPeer scans `wg show all dump` for an interface whose peer
// list contains serverPublicKey and returns the first match. Peer records
// are tab-separated with more than 4 fields; field 0 is the interface name
// and field 1 the peer public key. Misses, timeouts, and tool failures all
// report not-found.
func (d *Doctor) FindInterfaceForPeer(ctx context.Context, serverPublicKey string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	res := d.runner.Run(ctx, "", "wg", "show", "all", "dump")
	if res.Status != RunOK {
		return "", false
	}
	return findPeerInDump(res.Output, serverPublicKey)
}

func findPeerInDump(dump, serverPublicKey string) (string, bool) {
	for _, line := range strings.Split(dump, "\n") {
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) <= 4 {
			continue
		}
		if fields[1] == serverPublicKey {
			return fields[0], true
		}
	}
	return "", false
}
