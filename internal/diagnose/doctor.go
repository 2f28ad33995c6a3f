// Package diagnose implements the WG-Doctor decision engine: the ordered
// automated checks, the handshake-staleness classification, and the two
// interactive guidance branches that consume it.
package diagnose

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jstokke/wireguard-doctor/internal/wgconf"
)

// Doctor runs one diagnosis: a strictly sequential single pass over the step
// table, then exactly one guidance branch. No step is ever retried.
type Doctor struct {
	confPath string
	runner   CommandRunner
	ui       Presenter
	log      *zap.Logger

	// Injected for tests; defaulted by New.
	loadConfig func(path string) (wgconf.Config, error)
	lookupHost func(host string) ([]string, error)
	now        func() time.Time
	goos       string

	cfg        wgconf.Config
	iface      string
	derivedPub string
	verdict    HandshakeVerdict
	class      Classification
}

func New(confPath string, runner CommandRunner, ui Presenter, log *zap.Logger) *Doctor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Doctor{
		confPath:   confPath,
		runner:     runner,
		ui:         ui,
		log:        log,
		loadConfig: wgconf.Parse,
		lookupHost: net.LookupHost,
		now:        time.Now,
		goos:       runtime.GOOS,
	}
}

type stepExecutor func(ctx context.Context, d *Doctor) error

var diagStepExecutors = map[StepID]stepExecutor{
	StepCheckTools:         execCheckTools,
	StepParseConfig:        execParseConfig,
	StepLintConfig:         execLintConfig,
	StepDeriveKey:          execDeriveKey,
	StepSanityCheck:        execSanityCheck,
	StepPingEndpoint:       execPingEndpoint,
	StepCheckHandshake:     execCheckHandshake,
	StepGuideNoHandshake:   execGuideNoHandshake,
	StepGuidePostHandshake: execGuidePostHandshake,
}

var (
	validateRegistryOnce sync.Once
	validateRegistryErr  error
)

// validateStepRegistry checks that the executor map and the step tables
// cover each other exactly.
func validateStepRegistry() error {
	validateRegistryOnce.Do(func() {
		defs := append(DiagnosisStepDefinitions(), GuideStepDefinitions()...)
		if err := ValidateStepDefinitions(defs); err != nil {
			validateRegistryErr = err
			return
		}
		if len(diagStepExecutors) != len(defs) {
			validateRegistryErr = fmt.Errorf("step executor count mismatch: executors=%d defs=%d", len(diagStepExecutors), len(defs))
			return
		}
		for _, def := range defs {
			if diagStepExecutors[def.ID] == nil {
				validateRegistryErr = fmt.Errorf("no executor for step %q", def.ID)
				return
			}
		}
	})
	return validateRegistryErr
}

// Run performs the full diagnosis. A non-nil error means a fatal abort
// (missing tools, unparseable config, failed key derivation, or a broken
// prompt); everything else is advisory and the run always reaches exactly
// one guidance branch.
func (d *Doctor) Run(ctx context.Context) error {
	if err := validateStepRegistry(); err != nil {
		return err
	}

	for _, def := range DiagnosisStepDefinitions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := d.now()
		err := diagStepExecutors[def.ID](ctx, d)
		d.log.Debug("step complete",
			zap.String("step", string(def.ID)),
			zap.Duration("elapsed", d.now().Sub(start)),
			zap.Error(err))
		if err != nil {
			return err
		}
	}

	guide := StepGuideNoHandshake
	if d.class == HasHandshake {
		guide = StepGuidePostHandshake
	}
	d.log.Debug("guide selected", zap.String("step", string(guide)))
	return diagStepExecutors[guide](ctx, d)
}

func execCheckTools(_ context.Context, d *Doctor) error {
	if !d.CheckTools() {
		return fmt.Errorf("required tools are missing")
	}
	return nil
}

func execParseConfig(_ context.Context, d *Doctor) error {
	cfg, err := d.loadConfig(d.confPath)
	if err != nil {
		d.ui.Error(err.Error())
		return fmt.Errorf("parse config: %w", err)
	}
	d.cfg = cfg
	d.iface = wgconf.InterfaceNameFromPath(d.confPath)
	d.ui.StepResult("Parsing configuration file", true,
		fmt.Sprintf("Parsed configuration for interface '%s' (endpoint %s:%d).", d.iface, cfg.EndpointHost, cfg.EndpointPort))
	return nil
}

func execLintConfig(_ context.Context, d *Doctor) error {
	for _, w := range Lint(d.cfg) {
		d.ui.Warn(w)
	}
	return nil
}

func execDeriveKey(ctx context.Context, d *Doctor) error {
	const desc = "Deriving public key from private key..."
	pub, err := d.DerivePublicKey(ctx, d.cfg.ClientPrivateKey)
	if err != nil {
		d.ui.StepResult(desc, false, fmt.Sprintf("Failed to derive public key. Error: %v", err))
		return err
	}
	d.derivedPub = pub
	d.ui.StepResult(desc, true, "Public key derived successfully.")

	// Cross-check against a local derivation. A private key the local decode
	// rejects is ignored here: wg already accepted it.
	if local, err := localPublicKey(d.cfg.ClientPrivateKey); err == nil && local != pub {
		d.ui.Warn("The public key derived by `wg pubkey` does not match a local derivation. Your wg binary may be broken.")
	}
	return nil
}

func execSanityCheck(_ context.Context, d *Doctor) error {
	if d.derivedPub == d.cfg.ServerPublicKey {
		d.ui.Error("Configuration Error: Your client PrivateKey and the peer's PublicKey are a matching pair. The peer's PublicKey should be the *server's* public key.")
	}
	return nil
}

func execPingEndpoint(ctx context.Context, d *Doctor) error {
	d.PingHost(ctx, d.cfg.EndpointHost)
	return nil
}

func execCheckHandshake(ctx context.Context, d *Doctor) error {
	desc := fmt.Sprintf("Checking for a handshake on interface '%s'...", d.iface)
	d.verdict = d.CheckHandshake(ctx, d.iface)
	d.class = Classify(d.verdict)
	d.ui.StepResult(desc, d.class == HasHandshake, d.verdict.Message())

	// When the query itself failed, the peer may simply live on another
	// interface than the one named by the config file.
	if d.verdict.Kind == HandshakeUnavailable {
		if iface, ok := d.FindInterfaceForPeer(ctx, d.cfg.ServerPublicKey); ok && iface != d.iface {
			d.ui.Info(fmt.Sprintf("The configured peer is active on interface '%s'. You may be diagnosing the wrong config file.", iface))
		}
	}
	return nil
}
