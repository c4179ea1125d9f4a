package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bijbelquiz.app/backend/internal/authoring"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorLabel   = lipgloss.Color("250")
	colorFocus   = lipgloss.Color("212")
	colorMuted   = lipgloss.Color("242")
	colorSuccess = lipgloss.Color("42")
	colorError   = lipgloss.Color("196")
)

func (m Model) View() string {
	sections := []string{
		stylize("BijbelQuiz vragen maken", m.noColor, colorTitle),
		stylize("Vraagtype: "+m.ctrl.Type().Label(), m.noColor, colorLabel) + stylize("  (ctrl+t wisselen)", m.noColor, colorMuted),
		"",
	}
	for i, it := range m.items {
		sections = append(sections, m.renderItem(i, it))
	}
	sections = append(sections, "", m.renderCount())
	if m.ctrl.ConfirmingClear() {
		sections = append(sections, m.renderConfirm())
	}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, "", toasts)
	}
	sections = append(sections, "", stylize(helpLine, m.noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

const helpLine = "tab volgende veld • ←/→ keuze • enter toevoegen • ctrl+r herstellen • ctrl+x alles wissen • ctrl+d downloaden • esc stoppen"

func (m Model) renderItem(i int, it item) string {
	var b strings.Builder
	if it.spec.Label != "" {
		b.WriteString(stylize(it.spec.Label, m.noColor, colorLabel))
		b.WriteString("\n")
	}
	cursor := "  "
	if i == m.focus {
		cursor = stylize("> ", m.noColor, colorFocus)
	}
	b.WriteString(cursor)
	switch it.spec.Kind {
	case authoring.InputText:
		b.WriteString(it.input.View())
	case authoring.InputSelect:
		b.WriteString(m.renderSelect(it.spec, i == m.focus))
	}
	return b.String()
}

func (m Model) renderSelect(spec authoring.FieldSpec, focused bool) string {
	current := m.selected(spec)
	parts := make([]string, len(spec.Options))
	for i, opt := range spec.Options {
		if opt == current {
			parts[i] = "[" + opt + "]"
			if focused {
				parts[i] = stylize(parts[i], m.noColor, colorFocus)
			}
			continue
		}
		parts[i] = " " + opt + " "
	}
	return strings.Join(parts, " ")
}

func (m Model) renderCount() string {
	text := fmt.Sprintf("Aantal vragen: %d", m.ctrl.Count())
	if m.noColor {
		return text
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorTitle).
		Padding(0, 1).
		Render(text)
}

func (m Model) renderConfirm() string {
	return stylize("Weet je zeker dat je alle vragen wilt verwijderen? (j/n)", m.noColor, colorError)
}

// renderToasts shows visible toasts, newest last.
func (m Model) renderToasts() string {
	var lines []string
	for _, toast := range m.toaster.Toasts() {
		if !toast.Visible {
			continue
		}
		color := colorSuccess
		if toast.Error {
			color = colorError
		}
		if m.noColor {
			lines = append(lines, toast.Message)
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(color).
			Padding(0, 1).
			Render(toast.Message))
	}
	return strings.Join(lines, "\n")
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
