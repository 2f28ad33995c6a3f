package diagnose

import (
	"context"
	"fmt"
	"time"
)

// probeTimeout bounds every live-state query (ping, handshake, dump).
const probeTimeout = 10 * time.Second

// PingHost sends a single echo request to host. Non-zero exit or timeout is
// reported as unreachable with the ICMP caveat; the result never aborts the
// run.
func (d *Doctor) PingHost(ctx context.Context, host string) bool {
	desc := fmt.Sprintf("Pinging server endpoint: %s...", host)

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	countFlag := "-c"
	if d.goos == "windows" {
		countFlag = "-n"
	}

	res := d.runner.Run(ctx, "", "ping", countFlag, "1", host)
	switch res.Status {
	case RunOK:
		d.ui.StepResult(desc, true, fmt.Sprintf("Endpoint %s is reachable.", host))
		return true
	case RunTimedOut:
		d.ui.StepResult(desc, false, fmt.Sprintf("Ping to %s timed out. The network stack may be in a bad state.", host))
	default:
		d.ui.StepResult(desc, false, fmt.Sprintf("Endpoint %s is not reachable via ping.", host))
	}
	d.ui.Info("Note: Some servers disable ping (ICMP). This may not be a fatal error.")
	return false
}
