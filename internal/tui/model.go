// Package tui is the terminal front end. It never draws dashboard state
// itself: it forwards keys to the services and repaints from board snapshots.
package tui

import (
	"context"
	"log"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/i18n"
	"weather-dashboard/internal/services"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusCards
)

// snapshotMsg carries a board snapshot into the update loop.
type snapshotMsg board.Snapshot

// submitDoneMsg reports the outcome of a form submit.
type submitDoneMsg struct {
	field string
	err   error
}

type Deps struct {
	Dashboard *services.Dashboard
	Board     *board.Board
	Fields    map[string]*services.Autocomplete
	Catalog   *i18n.Catalog
}

type model struct {
	ctx     context.Context
	dash    *services.Dashboard
	board   *board.Board
	fields  map[string]*services.Autocomplete
	catalog *i18n.Catalog

	snap board.Snapshot

	input textinput.Model
	modal textinput.Model

	focus     focusArea
	highlight int
	card      int
	width     int
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 100
	in.Width = 40
	in.Focus()
	return in
}

func newModel(ctx context.Context, deps Deps) model {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = i18n.Default()
	}
	return model{
		ctx:     ctx,
		dash:    deps.Dashboard,
		board:   deps.Board,
		fields:  deps.Fields,
		catalog: catalog,
		snap:    deps.Board.Snapshot(),
		input:   newInput(catalog.CityPlaceholder),
		modal:   newInput(catalog.CityPlaceholder),
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = board.Snapshot(msg)
		m.clamp()
		return m, nil

	case submitDoneMsg:
		if msg.err == nil {
			m.setInput(msg.field, m.inputFor(msg.field), "")
			return m, nil
		}
		if _, ok := domain.ValidationCodeOf(msg.err); !ok {
			log.Printf("tui submit failed field=%s err=%v", msg.field, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m, m.background(func() { m.dash.Refresh(m.ctx) })
	case "ctrl+g":
		return m, m.background(func() { m.dash.Locate(m.ctx) })
	case "ctrl+l":
		m.dash.OpenMainCityModal()
		return m, nil
	}

	if m.snap.ModalOpen {
		return m.handleFieldKey(msg, services.FieldModalCity)
	}

	if msg.String() == "tab" {
		if m.focus == focusInput && len(m.snap.Cities) > 0 {
			m.focus = focusCards
			m.input.Blur()
			m.fields[services.FieldCity].Blur()
			return m, nil
		}
		m.focus = focusInput
		return m, m.input.Focus()
	}

	if m.focus == focusCards {
		return m.handleCardKey(msg)
	}
	return m.handleFieldKey(msg, services.FieldCity)
}

func (m model) handleFieldKey(msg tea.KeyMsg, name string) (tea.Model, tea.Cmd) {
	field := m.fields[name]
	in := m.inputFor(name)
	suggestions := m.snap.Fields[name].Suggestions

	switch msg.String() {
	case "up":
		if m.highlight > 0 {
			m.highlight--
		}
		return m, nil
	case "down":
		if m.highlight < len(suggestions)-1 {
			m.highlight++
		}
		return m, nil
	case "esc":
		field.Blur()
		if name == services.FieldModalCity {
			m.board.HideMainCityModal()
		}
		return m, nil
	case "enter":
		if len(suggestions) == 0 {
			return m, m.submit(name)
		}
		city, err := field.Select(m.highlight)
		if err != nil {
			// The list changed under us; wait for the next snapshot.
			return m, nil
		}
		m.highlight = 0
		m.setInput(name, in, city.Name)
		return m, nil
	}

	before := in.Value()
	in, cmd := in.Update(msg)
	m.setInput(name, in, in.Value())
	if in.Value() != before {
		m.highlight = 0
		field.Input(in.Value())
	}
	return m, cmd
}

func (m model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "left":
		if m.card > 0 {
			m.card--
		}
	case "down", "right":
		if m.card < len(m.snap.Cities)-1 {
			m.card++
		}
	case "delete", "x":
		if m.card < len(m.snap.Cities) {
			id := m.snap.Cities[m.card].ID
			return m, m.background(func() { m.dash.RemoveExtraCity(m.ctx, id) })
		}
	case "esc":
		m.focus = focusInput
		return m, m.input.Focus()
	}
	return m, nil
}

func (m model) submit(name string) tea.Cmd {
	dash, field, ctx := m.dash, m.fields[name], m.ctx
	return func() tea.Msg {
		var err error
		if name == services.FieldModalCity {
			_, err = dash.SubmitMainCity(ctx, field)
		} else {
			_, err = dash.SubmitExtraCity(ctx, field)
		}
		return submitDoneMsg{field: name, err: err}
	}
}

// background runs fn off the update loop; results arrive as snapshots.
func (m model) background(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m model) inputFor(name string) textinput.Model {
	if name == services.FieldModalCity {
		return m.modal
	}
	return m.input
}

func (m *model) setInput(name string, in textinput.Model, value string) {
	if in.Value() != value {
		in.SetValue(value)
		in.CursorEnd()
	}
	if name == services.FieldModalCity {
		m.modal = in
	} else {
		m.input = in
	}
}

func (m *model) clamp() {
	if n := len(m.snap.Cities); m.card >= n {
		m.card = max(n-1, 0)
	}
	if len(m.snap.Cities) == 0 && m.focus == focusCards {
		m.focus = focusInput
		m.input.Focus()
	}

	name := services.FieldCity
	if m.snap.ModalOpen {
		name = services.FieldModalCity
	}
	if n := len(m.snap.Fields[name].Suggestions); m.highlight >= n {
		m.highlight = max(n-1, 0)
	}
}
