// Package tui is the terminal front end of the question authoring form.
package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bijbelquiz.app/backend/internal/authoring"
)

// Options configures the authoring UI.
type Options struct {
	NoColor bool
}

type item struct {
	spec  authoring.FieldSpec
	input textinput.Model
}

// Model renders the authoring form and forwards every action to the controller.
type Model struct {
	ctrl    *authoring.Controller
	toaster *authoring.Toaster
	changes <-chan struct{}
	items   []item
	focus   int
	width   int
	noColor bool
}

// NewModel builds the UI for ctrl. Toast changes arrive through a channel so
// timer goroutines never touch the program directly.
func NewModel(ctrl *authoring.Controller, toaster *authoring.Toaster, opts Options) Model {
	changes := make(chan struct{}, 1)
	toaster.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m := Model{
		ctrl:    ctrl,
		toaster: toaster,
		changes: changes,
		noColor: opts.NoColor,
	}
	m.rebuild()
	return m
}

// Run starts the UI on the terminal and blocks until the author quits.
func Run(ctrl *authoring.Controller, toaster *authoring.Toaster, opts Options) error {
	_, err := tea.NewProgram(NewModel(ctrl, toaster, opts), tea.WithAltScreen()).Run()
	return err
}

type toastMsg struct{}

func waitForToast(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return toastMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForToast(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case toastMsg:
		return m, waitForToast(m.changes)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m.updateFocused(msg)
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.ConfirmingClear() {
		switch key.String() {
		case "y", "j", "enter":
			_ = m.ctrl.ConfirmClear()
		case "n", "esc":
			m.ctrl.CancelClear()
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+t":
		if m.ctrl.ChangeType(m.ctrl.Type().Next()) == nil {
			m.rebuild()
		}
		return m, nil
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	case "left":
		if m.cycle(-1) {
			return m, nil
		}
	case "right":
		if m.cycle(1) {
			return m, nil
		}
	case "enter":
		if m.ctrl.Submit() == nil {
			m.rebuild()
		}
		return m, nil
	case "ctrl+x":
		m.ctrl.RequestClear()
		return m, nil
	case "ctrl+r":
		_ = m.ctrl.Restore()
		return m, nil
	case "ctrl+d":
		_ = m.ctrl.Download()
		return m, nil
	}
	return m.updateFocused(key)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	it := &m.items[m.focus]
	if it.spec.Kind != authoring.InputText {
		return m, nil
	}
	var cmd tea.Cmd
	it.input, cmd = it.input.Update(msg)
	_ = m.ctrl.SetField(it.spec.ID, it.input.Value())
	return m, cmd
}

// rebuild mirrors the controller's current field set, focusing the first field.
func (m *Model) rebuild() {
	specs := append(m.ctrl.Fields(), authoring.DifficultyField())
	m.items = make([]item, len(specs))
	for i, spec := range specs {
		m.items[i] = item{spec: spec}
		if spec.Kind == authoring.InputText {
			in := textinput.New()
			in.Placeholder = spec.Placeholder
			in.CharLimit = 500
			in.SetValue(m.ctrl.Value(spec.ID))
			m.items[i].input = in
		}
	}
	m.focus = 0
	m.items[0].input.Focus()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if it := &m.items[m.focus]; it.spec.Kind == authoring.InputText {
		it.input.Blur()
	}
	m.focus = (m.focus + delta + len(m.items)) % len(m.items)
	if it := &m.items[m.focus]; it.spec.Kind == authoring.InputText {
		return it.input.Focus()
	}
	return nil
}

// cycle moves a focused select to its previous or next option.
func (m *Model) cycle(delta int) bool {
	spec := m.items[m.focus].spec
	if spec.Kind != authoring.InputSelect || len(spec.Options) == 0 {
		return false
	}
	i := slices.Index(spec.Options, m.selected(spec))
	if i < 0 {
		i = 0
	}
	next := spec.Options[(i+delta+len(spec.Options))%len(spec.Options)]
	if spec.ID == authoring.FieldDifficulty {
		_ = m.ctrl.SetDifficulty(next)
	} else {
		_ = m.ctrl.SetField(spec.ID, next)
	}
	return true
}

func (m Model) selected(spec authoring.FieldSpec) string {
	if spec.ID == authoring.FieldDifficulty {
		return m.ctrl.Difficulty()
	}
	return m.ctrl.Value(spec.ID)
}
