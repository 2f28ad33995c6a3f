// Package wgconf parses WireGuard client configuration files into an
// immutable Config used by the diagnostic engine.
package wgconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the parsed view of a WireGuard client .conf file. It is never
// mutated after Parse returns it.
type Config struct {
	ClientPrivateKey string
	ServerPublicKey  string
	EndpointHost     string
	EndpointPort     int

	Address             string
	DNS                 string
	AllowedIPs          string
	PersistentKeepalive string
}

// Parse reads and parses the WireGuard configuration at path.
func Parse(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("configuration file not found at %q", path)
		}
		return Config{}, fmt.Errorf("read configuration file %q: %w", path, err)
	}
	return ParseString(string(raw))
}

// ParseString parses WireGuard .conf content. Required keys are
// [Interface] PrivateKey, [Peer] PublicKey, and [Peer] Endpoint; the rest
// are optional, with AllowedIPs defaulting to routing all traffic.
func ParseString(conf string) (Config, error) {
	cfg := Config{AllowedIPs: "0.0.0.0/0"}
	endpoint := ""

	section := ""
	for _, ln := range strings.Split(conf, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") || strings.HasPrefix(ln, ";") {
			continue
		}
		if strings.HasPrefix(ln, "[") && strings.HasSuffix(ln, "]") {
			section = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(ln, "["), "]"))
			continue
		}
		k, v, ok := strings.Cut(ln, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		switch {
		case strings.EqualFold(section, "Interface"):
			switch {
			case strings.EqualFold(k, "PrivateKey"):
				cfg.ClientPrivateKey = v
			case strings.EqualFold(k, "Address"):
				cfg.Address = v
			case strings.EqualFold(k, "DNS"):
				cfg.DNS = v
			}
		case strings.EqualFold(section, "Peer"):
			switch {
			case strings.EqualFold(k, "PublicKey"):
				cfg.ServerPublicKey = v
			case strings.EqualFold(k, "Endpoint"):
				endpoint = v
			case strings.EqualFold(k, "AllowedIPs"):
				cfg.AllowedIPs = v
			case strings.EqualFold(k, "PersistentKeepalive"):
				cfg.PersistentKeepalive = v
			}
		}
	}

	if cfg.ClientPrivateKey == "" {
		return Config{}, fmt.Errorf("invalid or incomplete configuration file: missing [Interface] PrivateKey")
	}
	if cfg.ServerPublicKey == "" {
		return Config{}, fmt.Errorf("invalid or incomplete configuration file: missing [Peer] PublicKey")
	}
	if endpoint == "" {
		return Config{}, fmt.Errorf("invalid or incomplete configuration file: missing [Peer] Endpoint")
	}

	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return Config{}, err
	}
	cfg.EndpointHost = host
	cfg.EndpointPort = port
	return cfg, nil
}

// splitEndpoint splits on the last colon so bracketed IPv6 endpoints like
// [2001:db8::1]:51820 keep their host part intact.
func splitEndpoint(endpoint string) (string, int, error) {
	idx := strings.LastIndex(endpoint, ":")
	if idx <= 0 || idx == len(endpoint)-1 {
		return "", 0, fmt.Errorf("invalid endpoint format %q: it should be 'host:port'", endpoint)
	}
	host := endpoint[:idx]
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if host == "" {
		return "", 0, fmt.Errorf("invalid endpoint format %q: it should be 'host:port'", endpoint)
	}
	port, err := strconv.Atoi(endpoint[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid endpoint port in %q: %w", endpoint, err)
	}
	if port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("endpoint port %d out of range (1-65535)", port)
	}
	return host, port, nil
}

// InterfaceNameFromPath derives the tunnel interface name from the config
// file's base name, matching wg-quick's convention (wg0.conf -> wg0).
func InterfaceNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
