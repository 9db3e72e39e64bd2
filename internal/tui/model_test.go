package tui

import (
	"context"
	"strings"
	"testing"
	"weather-dashboard/internal/adapters/mock"
	"weather-dashboard/internal/adapters/repositories"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/i18n"
	"weather-dashboard/internal/services"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	paris = domain.City{ID: 2988507, Name: "Paris", Country: "France", Lat: 48.85341, Lon: 2.3488}
	parma = domain.City{ID: 3171457, Name: "Parma", Country: "Italy", Lat: 44.79935, Lon: 10.32618}
	oslo  = domain.City{ID: 3143244, Name: "Oslo", Country: "Norway", Lat: 59.91273, Lon: 10.74609}
)

type fixture struct {
	m     model
	board *board.Board
	dash  *services.Dashboard
	sched *mock.Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	weather := mock.NewWeatherProvider()
	for _, c := range []domain.City{paris, parma, oslo} {
		weather.Set(c.Coordinates(), domain.DailyForecast{{TempMin: 1, TempMax: 2}})
	}

	b := board.New()
	sched := mock.NewScheduler()
	searcher := mock.NewCitySearcher(paris, parma, oslo)

	dash, err := services.NewDashboard(services.DashboardDeps{
		Store:    services.NewStateStore(repositories.NewMemoryStateSlot()),
		Renderer: services.NewForecastRenderer(weather, i18n.Default()),
		View:     b,
	})
	if err != nil {
		t.Fatalf("new dashboard: %v", err)
	}
	t.Cleanup(dash.Close)

	fields := map[string]*services.Autocomplete{}
	for _, name := range []string{services.FieldCity, services.FieldModalCity} {
		fields[name] = services.NewAutocomplete(name, searcher, b.Field(name), services.WithScheduler(sched.Schedule))
	}

	m := newModel(context.Background(), Deps{Dashboard: dash, Board: b, Fields: fields, Catalog: i18n.Default()})
	return &fixture{m: m, board: b, dash: dash, sched: sched}
}

func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.m.Update(msg)
	f.m = next.(model)
	return cmd
}

// sync feeds the current board into the model, as the subscription would.
func (f *fixture) sync(t *testing.T) {
	f.send(t, snapshotMsg(f.board.Snapshot()))
}

func (f *fixture) typeText(t *testing.T, s string) {
	for _, r := range s {
		f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestTypeSelectAndSubmit(t *testing.T) {
	f := newFixture(t)

	f.typeText(t, "Par")
	if got := f.m.fields[services.FieldCity].Value(); got != "Par" {
		t.Fatalf("keystrokes not forwarded, field value %q", got)
	}

	f.sched.Fire(services.SearchDebounce)
	f.sync(t)
	if n := len(f.m.snap.Fields[services.FieldCity].Suggestions); n != 2 {
		t.Fatalf("expected 2 suggestions, got %d", n)
	}

	f.send(t, tea.KeyMsg{Type: tea.KeyDown})
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	if f.m.input.Value() != "Parma" {
		t.Fatalf("expected the highlighted suggestion in the input, got %q", f.m.input.Value())
	}
	if sel, ok := f.m.fields[services.FieldCity].Pending(); !ok || sel.CityID != parma.ID {
		t.Fatalf("unexpected pending selection %+v", sel)
	}

	f.sync(t)
	msg := run(f.send(t, tea.KeyMsg{Type: tea.KeyEnter}))
	done, ok := msg.(submitDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("expected a successful submit, got %#v", msg)
	}
	f.send(t, done)

	if f.m.input.Value() != "" {
		t.Fatalf("input not cleared after submit: %q", f.m.input.Value())
	}
	if st := f.dash.Snapshot(); len(st.ExtraCities) != 1 || st.ExtraCities[0].ID != parma.ID {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSubmitWithoutSelectionShowsError(t *testing.T) {
	f := newFixture(t)

	f.typeText(t, "Oslo")
	msg := run(f.send(t, tea.KeyMsg{Type: tea.KeyEnter}))
	done := msg.(submitDoneMsg)
	if code, _ := domain.ValidationCodeOf(done.err); code != domain.ValidationNoSelection {
		t.Fatalf("expected no_selection, got %v", done.err)
	}

	f.send(t, done)
	f.sync(t)
	if !strings.Contains(f.m.View(), "Выберите город из выпадающего списка.") {
		t.Fatalf("inline error not rendered")
	}
	if f.m.input.Value() != "Oslo" {
		t.Fatalf("a rejected submit must keep the input, got %q", f.m.input.Value())
	}
}

func TestRemoveFocusedCard(t *testing.T) {
	f := newFixture(t)

	f.typeText(t, "Oslo")
	f.sched.Fire(services.SearchDebounce)
	f.sync(t)
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.sync(t)
	f.send(t, run(f.send(t, tea.KeyMsg{Type: tea.KeyEnter})))
	f.sync(t)

	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	if f.m.focus != focusCards {
		t.Fatalf("tab must move focus to the cards")
	}

	run(f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}))
	if n := len(f.dash.Snapshot().ExtraCities); n != 0 {
		t.Fatalf("expected the card removed, %d cities left", n)
	}

	f.sync(t)
	if f.m.focus != focusInput {
		t.Fatalf("focus must return to the input when no cards are left")
	}
}

func TestModalTakesKeys(t *testing.T) {
	f := newFixture(t)

	f.send(t, tea.KeyMsg{Type: tea.KeyCtrlL})
	f.sync(t)
	if !f.m.snap.ModalOpen {
		t.Fatalf("ctrl+l must open the main city modal")
	}

	f.typeText(t, "Os")
	if got := f.m.fields[services.FieldModalCity].Value(); got != "Os" {
		t.Fatalf("modal field got %q", got)
	}
	if got := f.m.fields[services.FieldCity].Value(); got != "" {
		t.Fatalf("add-city field must not receive keys while the modal is open, got %q", got)
	}

	f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	f.sync(t)
	if f.m.snap.ModalOpen {
		t.Fatalf("esc must close the modal")
	}
}

func TestQuitAndView(t *testing.T) {
	f := newFixture(t)
	f.board.SetMainTitle("Текущее местоположение")
	f.sync(t)

	if !strings.Contains(f.m.View(), "Текущее местоположение") {
		t.Fatalf("main title not rendered")
	}
	if _, ok := run(f.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})).(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c must quit")
	}
}
