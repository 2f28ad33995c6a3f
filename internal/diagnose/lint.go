package diagnose

import "github.com/jstokke/wireguard-doctor/internal/wgconf"

// Lint applies static best-practice checks to a parsed configuration. The
// two warnings are independent of each other and of live state; they never
// affect the diagnosis branch.
func Lint(cfg wgconf.Config) []string {
	var warnings []string
	if cfg.AllowedIPs == "0.0.0.0/0" && cfg.DNS == "" {
		warnings = append(warnings, "AllowedIPs routes all traffic (0.0.0.0/0) but no DNS is set. Name lookups may leak to your local resolver or fail entirely once the tunnel is up. Consider adding a DNS entry to [Interface].")
	}
	if cfg.PersistentKeepalive == "" {
		warnings = append(warnings, "PersistentKeepalive is not set. Clients behind NAT can silently lose the tunnel when idle. Consider adding `PersistentKeepalive = 25` to [Peer].")
	}
	return warnings
}
