// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModelKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		defaultVal    bool
		keys          []string
		wantSelection bool
		wantDone      bool
		wantCancelled bool
	}{
		{name: "y answers yes", keys: []string{"y"}, wantSelection: true, wantDone: true},
		{name: "n answers no", defaultVal: true, keys: []string{"n"}, wantSelection: false, wantDone: true},
		{name: "enter submits default", defaultVal: true, keys: []string{"enter"}, wantSelection: true, wantDone: true},
		{name: "tab toggles then enter", defaultVal: true, keys: []string{"tab", "enter"}, wantSelection: false, wantDone: true},
		{name: "esc cancels", keys: []string{"esc"}, wantDone: true, wantCancelled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m tea.Model = newConfirmModel(ConfirmOptions{Title: "Proceed?", Default: tt.defaultVal})
			for _, k := range tt.keys {
				m, _ = m.Update(key(k))
			}

			cm := m.(confirmModel)
			if cm.done != tt.wantDone {
				t.Errorf("done = %v, want %v", cm.done, tt.wantDone)
			}
			if cm.cancelled != tt.wantCancelled {
				t.Errorf("cancelled = %v, want %v", cm.cancelled, tt.wantCancelled)
			}
			if !cm.cancelled && cm.selection != tt.wantSelection {
				t.Errorf("selection = %v, want %v", cm.selection, tt.wantSelection)
			}
		})
	}
}

func TestConfirmModelView(t *testing.T) {
	t.Parallel()

	m := newConfirmModel(ConfirmOptions{
		Title:       "Uprev zlib to 1.3.1?",
		Description: "Renames the recipe file",
	})

	view := m.View()
	if !strings.Contains(view, "Uprev zlib to 1.3.1?") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "Renames the recipe file") {
		t.Error("view missing description")
	}
	if !strings.Contains(view, "Yes") || !strings.Contains(view, "No") {
		t.Error("view missing default option labels")
	}

	m.done = true
	if m.View() != "" {
		t.Error("done model should render nothing")
	}
}
