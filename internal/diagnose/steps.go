package diagnose

import "fmt"

type StepID string

type StepDef struct {
	ID    StepID
	Label string
}

const (
	StepCheckTools     StepID = "env.check_tools"
	StepParseConfig    StepID = "config.parse"
	StepLintConfig     StepID = "config.lint"
	StepDeriveKey      StepID = "key.derive_public"
	StepSanityCheck    StepID = "key.sanity_check"
	StepPingEndpoint   StepID = "net.ping_endpoint"
	StepCheckHandshake StepID = "wg.check_handshake"

	StepGuideNoHandshake   StepID = "guide.no_handshake"
	StepGuidePostHandshake StepID = "guide.post_handshake"
)

// DiagnosisStepDefinitions is the fixed automated-check sequence, in the
// order the orchestrator runs it.
func DiagnosisStepDefinitions() []StepDef {
	return []StepDef{
		{ID: StepCheckTools, Label: "Check required tools"},
		{ID: StepParseConfig, Label: "Parse tunnel configuration"},
		{ID: StepLintConfig, Label: "Lint configuration"},
		{ID: StepDeriveKey, Label: "Derive public key"},
		{ID: StepSanityCheck, Label: "Sanity-check key pair"},
		{ID: StepPingEndpoint, Label: "Ping server endpoint"},
		{ID: StepCheckHandshake, Label: "Check for a handshake"},
	}
}

// GuideStepDefinitions lists the two terminal guidance branches; exactly one
// runs per diagnosis, selected by the handshake classification.
func GuideStepDefinitions() []StepDef {
	return []StepDef{
		{ID: StepGuideNoHandshake, Label: "Interactive No-Handshake Guide"},
		{ID: StepGuidePostHandshake, Label: "Interactive Post-Handshake Guide"},
	}
}

func ValidateStepDefinitions(defs []StepDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("empty step definitions")
	}
	seenIDs := map[StepID]struct{}{}
	for i, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("step %d has empty id", i)
		}
		if def.Label == "" {
			return fmt.Errorf("step %q has empty label", def.ID)
		}
		if _, ok := seenIDs[def.ID]; ok {
			return fmt.Errorf("duplicate step id: %q", def.ID)
		}
		seenIDs[def.ID] = struct{}{}
	}
	return nil
}
