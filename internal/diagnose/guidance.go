package diagnose

import (
	"context"
	"fmt"
)

// guideNode is one node of a guidance tree: optional info line and advice
// blocks, then at most one branch point (a built-in probe or a question).
// Trees are terminal: a walk never loops back or re-runs earlier checks.
type guideNode struct {
	info    string
	advice  []string // template paths, rendered and shown in order
	probe   string   // built-in check; its result keys next as "yes"/"no"
	prompt  string
	choices []string // with prompt: fixed choices; nil means yes/no
	def     string
	next    map[string]guideNode
}

// guideData is what the advice templates may interpolate.
type guideData struct {
	Address string
	Port    int
	Iface   string
}

var guideProbes = map[string]func(*Doctor) bool{
	"dns": (*Doctor).CheckDNS,
}

var noHandshakeGuide = guideNode{
	info:    "A handshake failure is usually caused by a networking or firewall issue.",
	prompt:  "First, where is your WireGuard server hosted?",
	choices: []string{"cloud", "home/office"},
	def:     "cloud",
	next: map[string]guideNode{
		"cloud": {advice: []string{"templates/cloud_firewall.tmpl"}},
		"home/office": {
			advice: []string{"templates/port_forwarding.tmpl"},
			prompt: "Are you using a second router inside your network (e.g., a mesh system like Eero/Google Wifi connected to your ISP's modem)?",
			def:    "no",
			next: map[string]guideNode{
				"yes": {advice: []string{"templates/double_nat.tmpl"}},
			},
		},
	},
}

var postHandshakeGuide = guideNode{
	probe: "dns",
	next: map[string]guideNode{
		"no": {advice: []string{"templates/dns_fix.tmpl"}},
		"yes": {
			info: "DNS is working. Your internet issue is likely on the server side.",
			advice: []string{
				"templates/server_forwarding.tmpl",
				"templates/mtu_check.tmpl",
			},
		},
	},
}

func (d *Doctor) guideData() guideData {
	addr := d.cfg.Address
	if addr == "" {
		addr = "10.0.0.2/32"
	}
	return guideData{Address: addr, Port: d.cfg.EndpointPort, Iface: d.iface}
}

// walkGuide runs one guidance tree to completion. Prompt failures are the
// only errors: advice is static text and probes cannot fail the walk.
func (d *Doctor) walkGuide(ctx context.Context, node guideNode, data guideData) error {
	if node.info != "" {
		d.ui.Info(node.info)
	}
	for _, path := range node.advice {
		text, err := renderTemplateFile(path, data)
		if err != nil {
			return fmt.Errorf("render advice: %w", err)
		}
		d.ui.Advice(text)
	}

	answer := ""
	switch {
	case node.probe != "":
		answer = "no"
		if guideProbes[node.probe](d) {
			answer = "yes"
		}
	case node.prompt != "" && node.choices != nil:
		got, err := d.ui.AskChoice(node.prompt, node.choices, node.def)
		if err != nil {
			return fmt.Errorf("ask %q: %w", node.prompt, err)
		}
		answer = got
	case node.prompt != "":
		got, err := d.ui.AskYesNo(node.prompt, node.def == "yes")
		if err != nil {
			return fmt.Errorf("ask %q: %w", node.prompt, err)
		}
		answer = "no"
		if got {
			answer = "yes"
		}
	default:
		return nil
	}

	next, ok := node.next[answer]
	if !ok {
		return nil
	}
	return d.walkGuide(ctx, next, data)
}

func execGuideNoHandshake(ctx context.Context, d *Doctor) error {
	d.ui.Error("No recent handshake detected. This is the primary issue to solve.")
	d.ui.Info("Details: " + d.verdict.Message())
	d.ui.Section("Interactive No-Handshake Guide")
	return d.walkGuide(ctx, noHandshakeGuide, d.guideData())
}

func execGuidePostHandshake(ctx context.Context, d *Doctor) error {
	d.ui.Info("A recent handshake was detected! The tunnel itself is likely working.")
	d.ui.Section("Interactive Post-Handshake Guide")
	return d.walkGuide(ctx, postHandshakeGuide, d.guideData())
}
