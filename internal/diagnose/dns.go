package diagnose

// The two resolution targets are independent: one.one.one.one exercises
// Cloudflare's resolver path, google.com a second common zone.
var dnsProbeHosts = []string{"one.one.one.one", "google.com"}

// CheckDNS resolves both probe hostnames through the injected resolver. Any
// failure on either yields false.
func (d *Doctor) CheckDNS() bool {
	const desc = "Checking DNS resolution..."
	for _, host := range dnsProbeHosts {
		if _, err := d.lookupHost(host); err != nil {
			d.ui.StepResult(desc, false, "DNS resolution failed. This is likely the cause of the 'no internet' issue.")
			return false
		}
	}
	d.ui.StepResult(desc, true, "DNS resolution is working correctly.")
	return true
}
