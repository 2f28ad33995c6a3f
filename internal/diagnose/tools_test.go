package diagnose

import (
	"strings"
	"testing"
)

func TestCheckTools_AllPresent(t *testing.T) {
	runner := &fakeRunner{}
	ui := &fakePresenter{}
	d := newTestDoctor(runner, ui)

	if !d.CheckTools() {
		t.Fatalf("expected success with both tools present")
	}
	step := ui.stepMessage(t, "Required tools are available.")
	if !step.Succeeded {
		t.Fatalf("expected passing step, got %+v", step)
	}
}

func TestCheckTools_MissingWG(t *testing.T) {
	runner := &fakeRunner{missing: map[string]bool{"wg": true}}
	ui := &fakePresenter{}
	d := newTestDoctor(runner, ui)

	if d.CheckTools() {
		t.Fatalf("expected failure with wg missing")
	}
	step := ui.stepMessage(t, "`wg` command not found")
	if step.Succeeded {
		t.Fatalf("expected failing step, got %+v", step)
	}
	hinted := false
	for _, i := range ui.infos {
		if strings.Contains(i, "wireguard-tools") {
			hinted = true
		}
	}
	if !hinted {
		t.Fatalf("expected a linux install hint, got %v", ui.infos)
	}
}

func TestCheckTools_MissingPing(t *testing.T) {
	runner := &fakeRunner{missing: map[string]bool{"ping": true}}
	ui := &fakePresenter{}
	d := newTestDoctor(runner, ui)

	if d.CheckTools() {
		t.Fatalf("expected failure with ping missing")
	}
	ui.stepMessage(t, "This is highly unusual.")
}

func TestWGInstallHint_PerOS(t *testing.T) {
	cases := []struct {
		goos string
		want string
	}{
		{"linux", "apt install"},
		{"darwin", "brew install"},
		{"windows", "wireguard.com"},
		{"openbsd", "your platform"},
	}
	for _, tc := range cases {
		hint := wgInstallHint(tc.goos)
		if !strings.Contains(hint, tc.want) {
			t.Fatalf("hint for %s should contain %q: %q", tc.goos, tc.want, hint)
		}
	}
}
