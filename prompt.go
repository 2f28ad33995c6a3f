package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// choiceModel is a short-lived bubbletea program for one question: arrow
// keys move, enter selects, esc/ctrl+c aborts the guide.
type choiceModel struct {
	prompt  string
	choices []string
	cursor  int
	done    bool
	aborted bool
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", warnMark.Sprint("?"), m.prompt)
	for i, c := range m.choices {
		marker := "  "
		if i == m.cursor {
			marker = okMark.Sprint("❯") + " "
		}
		fmt.Fprintf(&b, "  %s%s\n", marker, c)
	}
	b.WriteString("\n  (arrows move, enter selects)\n")
	return b.String()
}

func askChoice(ctx context.Context, prompt string, choices []string, def string) (string, error) {
	cursor := 0
	for i, c := range choices {
		if c == def {
			cursor = i
		}
	}
	p := tea.NewProgram(choiceModel{prompt: prompt, choices: choices, cursor: cursor}, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(choiceModel)
	if !ok || m.aborted {
		return "", errors.New("prompt aborted")
	}
	return m.choices[m.cursor], nil
}

func askYesNo(ctx context.Context, prompt string, def bool) (bool, error) {
	d := "no"
	if def {
		d = "yes"
	}
	answer, err := askChoice(ctx, prompt, []string{"yes", "no"}, d)
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}
