package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/game"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// DefaultSpeed is the replay pace in rounds per second.
const DefaultSpeed = 4

// maxVisibleFailures caps how many script errors the status area shows.
const maxVisibleFailures = 3

// Model is the Bubble Tea model for replaying a scripted ascent.
// The engine advances one round per tick; the script, not the viewer,
// decides what the samurai does.
type Model struct {
	engine   *game.Engine
	rebuild  func() (*game.Engine, error)
	store    *storage.Store
	level    string
	speed    int
	paused   bool
	recorded bool
	quitting bool
	buildErr error
}

// NewModel creates a replay model. rebuild constructs a fresh engine
// with a fresh script state and is called on restart.
func NewModel(rebuild func() (*game.Engine, error), store *storage.Store, level string, speed int) (Model, error) {
	engine, err := rebuild()
	if err != nil {
		return Model{}, err
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return Model{
		engine:  engine,
		rebuild: rebuild,
		store:   store,
		level:   level,
		speed:   speed,
	}, nil
}

// Init starts the replay loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.speed)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes playback input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "+", "=":
		if m.speed < 32 {
			m.speed *= 2
		}
	case "-", "_":
		if m.speed > 1 {
			m.speed /= 2
		}
	case "r":
		if m.engine.Done() {
			engine, err := m.rebuild()
			if err != nil {
				m.buildErr = err
				return m, nil
			}
			m.engine = engine
			m.recorded = false
			m.paused = false
		}
	}
	return m, nil
}

// handleTick advances the replay by one round.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.engine.Done() {
		m.engine.PlayRound()
	}

	// Record the result once, when the ascent finishes.
	if m.engine.Done() && !m.recorded {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, replay continues regardless
			m.store.RecordPlaythrough(
				m.level,
				m.engine.Outcome().String(),
				m.engine.Round(),
				m.engine.Score(),
			)
		}
		m.recorded = true
	}

	return m, tickCmd(m.speed)
}

// View renders the current round.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := RenderSnapshot(m.engine.Snapshot()) + "\n"
	if failures := RenderFailures(m.engine.Failures(), maxVisibleFailures); failures != "" {
		view += failures
	}
	if m.buildErr != nil {
		view += errorStyle.Render("restart failed: "+m.buildErr.Error()) + "\n"
	}
	if m.engine.Done() {
		view += statusStyle.Render("r restart  q quit") + "\n"
	} else if m.paused {
		view += statusStyle.Render("paused  space resume  q quit") + "\n"
	}
	return view
}

// Run starts the Bubble Tea program for a replay.
func Run(rebuild func() (*game.Engine, error), store *storage.Store, level string, speed int) error {
	model, err := NewModel(rebuild, store, level, speed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
