// SPDX-License-Identifier: MPL-2.0

// Package tui holds the interactive prompt components. Every mutating uprev
// action is gated by the Confirm prompt.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user aborts a prompt (esc / ctrl+c).
var ErrCancelled = errors.New("cancelled by user")

type (
	// ConfirmOptions configures the Confirm prompt.
	ConfirmOptions struct {
		// Title is the question to display.
		Title string
		// Description provides additional context below the title.
		Description string
		// Affirmative is the text for the yes option (default: "Yes").
		Affirmative string
		// Negative is the text for the no option (default: "No").
		Negative string
		// Default is the initially selected answer.
		Default bool
	}

	confirmModel struct {
		opts      ConfirmOptions
		selection bool
		done      bool
		cancelled bool
		width     int
	}
)

var (
	confirmTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	confirmDescStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	confirmActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Bold(true).Padding(0, 1)
	confirmInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	confirmHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func newConfirmModel(opts ConfirmOptions) confirmModel {
	return confirmModel{opts: opts, selection: opts.Default}
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "y":
			m.selection = true
			m.done = true
			return m, tea.Quit
		case "n":
			m.selection = false
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.selection = true
		case "right", "l":
			m.selection = false
		case "up", "down", "tab", "shift+tab":
			m.selection = !m.selection
		case "enter", " ":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// View implements tea.Model.
func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	affirmative := m.opts.Affirmative
	negative := m.opts.Negative
	if affirmative == "" {
		affirmative = "Yes"
	}
	if negative == "" {
		negative = "No"
	}

	yesView := confirmInactiveStyle.Render(affirmative)
	noView := confirmInactiveStyle.Render(negative)
	if m.selection {
		yesView = confirmActiveStyle.Render(affirmative)
	} else {
		noView = confirmActiveStyle.Render(negative)
	}

	lines := make([]string, 0, 4)
	if m.opts.Title != "" {
		lines = append(lines, confirmTitleStyle.Render(m.opts.Title))
	}
	if m.opts.Description != "" {
		lines = append(lines, confirmDescStyle.Render(m.opts.Description))
	}
	lines = append(lines,
		yesView+"  "+noView,
		confirmHelpStyle.Render("enter submit • y yes • n no • esc cancel"),
	)

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}

// Confirm prompts the user to confirm an action. Returns the chosen answer,
// or ErrCancelled if the user aborted the prompt.
func Confirm(opts ConfirmOptions) (bool, error) {
	p := tea.NewProgram(newConfirmModel(opts))
	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	m := finalModel.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.selection, nil
}
