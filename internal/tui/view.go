package tui

import (
	"strings"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/ports"
	"weather-dashboard/internal/services"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pickStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedStyle = cardStyle.BorderForeground(lipgloss.Color("39"))
	dayStyle     = lipgloss.NewStyle().Width(18).MarginRight(1)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1)

	statusStyles = map[string]lipgloss.Style{
		ports.StatusLoading.String(): lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ports.StatusOK.String():      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ports.StatusError.String():   errorStyle,
		ports.StatusIdle.String():    faintStyle,
	}
)

func (m model) View() string {
	sections := []string{renderCard(m.snap.Main, false)}

	if m.snap.ModalOpen {
		sections = append(sections, m.renderModal())
	} else {
		sections = append(sections, m.renderField(m.catalog.AddCity, services.FieldCity, m.input.View(), m.focus == focusInput))
	}

	for i, c := range m.snap.Cities {
		sections = append(sections, renderCard(c, m.focus == focusCards && i == m.card))
	}

	sections = append(sections, faintStyle.Render(m.catalog.KeyHelp))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderModal() string {
	body := m.renderField(m.catalog.MainCityTitle, services.FieldModalCity, m.modal.View(), true)
	return modalStyle.Render(body)
}

func (m model) renderField(label, name, input string, active bool) string {
	f := m.snap.Fields[name]

	lines := []string{titleStyle.Render(label), input}
	if f.Error != "" {
		lines = append(lines, errorStyle.Render(f.Error))
	}
	lines = append(lines, renderSuggestions(f.Suggestions, m.highlight, active)...)
	return strings.Join(lines, "\n")
}

func renderSuggestions(items []domain.City, highlight int, active bool) []string {
	out := make([]string, 0, len(items))
	for i, c := range items {
		line := "  " + c.DisplayName()
		if active && i == highlight {
			line = pickStyle.Render("› " + c.DisplayName())
		}
		out = append(out, line)
	}
	return out
}

func renderCard(c board.Card, focused bool) string {
	style := cardStyle
	if focused {
		style = focusedStyle
	}

	status := statusStyles[c.Status.Kind].Render(c.Status.Text)
	lines := []string{titleStyle.Render(c.Title), status}

	if len(c.Forecast) > 0 {
		days := make([]string, 0, len(c.Forecast))
		for _, e := range c.Forecast {
			days = append(days, dayStyle.Render(e.Label+"\n"+e.Temperature+"\n"+e.Description))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, days...))
	}

	return style.Render(strings.Join(lines, "\n"))
}
