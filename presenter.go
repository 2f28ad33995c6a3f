package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	okMark    = color.New(color.FgGreen, color.Bold)
	failMark  = color.New(color.FgRed, color.Bold)
	infoMark  = color.New(color.FgCyan)
	warnMark  = color.New(color.FgYellow)
	errLabel  = color.New(color.FgRed, color.Bold)
	banner    = color.New(color.FgMagenta, color.Bold)
	borderCol = color.New(color.FgGreen)
	sectionCl = color.New(color.FgYellow, color.Bold)
	doneCol   = color.New(color.FgGreen, color.Bold)
)

// terminalPresenter renders step outcomes and guide text, and asks the
// interactive questions. With interactive=false every prompt resolves to
// its default.
type terminalPresenter struct {
	ctx         context.Context
	out         io.Writer
	interactive bool
}

func newTerminalPresenter(ctx context.Context, out io.Writer, interactive bool) *terminalPresenter {
	return &terminalPresenter{ctx: ctx, out: out, interactive: interactive}
}

func (p *terminalPresenter) Welcome() {
	title := "WG-Doctor: Your WireGuard Troubleshooting Assistant"
	rule := strings.Repeat("─", len(title)+2)
	fmt.Fprintln(p.out, borderCol.Sprint("╭"+rule+"╮"))
	fmt.Fprintf(p.out, "%s %s %s\n", borderCol.Sprint("│"), banner.Sprint(title), borderCol.Sprint("│"))
	fmt.Fprintln(p.out, borderCol.Sprint("╰"+rule+"╯"))
	fmt.Fprintln(p.out)
}

func (p *terminalPresenter) Complete() {
	fmt.Fprintf(p.out, "\n%s\n", doneCol.Sprint("Diagnosis complete."))
}

func (p *terminalPresenter) StepResult(_ string, succeeded bool, message string) {
	if succeeded {
		fmt.Fprintf(p.out, "%s %s\n", okMark.Sprint("✔"), message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", failMark.Sprint("✖"), message)
}

func (p *terminalPresenter) Info(message string) {
	fmt.Fprintf(p.out, "%s %s\n", infoMark.Sprint("ℹ"), message)
}

func (p *terminalPresenter) Warn(message string) {
	fmt.Fprintf(p.out, "%s %s\n", warnMark.Sprint("⚠"), message)
}

func (p *terminalPresenter) Error(message string) {
	fmt.Fprintf(p.out, "%s %s\n", errLabel.Sprint("Error:"), message)
}

func (p *terminalPresenter) Section(title string) {
	fmt.Fprintf(p.out, "\n%s\n", sectionCl.Sprintf("--- %s ---", title))
}

func (p *terminalPresenter) Advice(text string) {
	fmt.Fprintf(p.out, "\n%s\n", strings.TrimRight(text, "\n"))
}

func (p *terminalPresenter) AskChoice(prompt string, choices []string, def string) (string, error) {
	if !p.interactive {
		p.Info(fmt.Sprintf("%s (assuming %q)", prompt, def))
		return def, nil
	}
	answer, err := askChoice(p.ctx, prompt, choices, def)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "%s %s %s\n", warnMark.Sprint("?"), prompt, answer)
	return answer, nil
}

func (p *terminalPresenter) AskYesNo(prompt string, def bool) (bool, error) {
	if !p.interactive {
		assumed := "no"
		if def {
			assumed = "yes"
		}
		p.Info(fmt.Sprintf("%s (assuming %q)", prompt, assumed))
		return def, nil
	}
	answer, err := askYesNo(p.ctx, prompt, def)
	if err != nil {
		return false, err
	}
	shown := "no"
	if answer {
		shown = "yes"
	}
	fmt.Fprintf(p.out, "%s %s %s\n", warnMark.Sprint("?"), prompt, shown)
	return answer, nil
}
