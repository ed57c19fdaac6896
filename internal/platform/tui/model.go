package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/philo/internal/core"
	"github.com/vovakirdan/philo/internal/games/philo"
	"github.com/vovakirdan/philo/internal/reflex"
	"github.com/vovakirdan/philo/internal/registry"
	"github.com/vovakirdan/philo/internal/storage"
)

// Observable is implemented by games that publish round events.
type Observable interface {
	Subscribe(o reflex.Observer)
}

// GameOptions configures a play screen.
type GameOptions struct {
	Store    *storage.Store     // reaction journal; nil disables recording
	Config   core.RuntimeConfig // tick rate, seed and initial size
	Session  string             // player name recorded in the journal
	Logger   *log.Logger        // nil discards logs
	Renderer *lipgloss.Renderer // nil uses the lipgloss default
}

// GameModel is the Bubble Tea model for playing one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *lipgloss.Renderer
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger
	journal    *storage.Journal
	journalErr error
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a play screen for game and wires the journal and
// round logging into it.
func NewGameModel(game registry.Game, opts GameOptions) GameModel {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		renderer:   opts.Renderer,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		logger:     logger,
	}
	m.help.Width = cfg.ScreenW

	if obs, ok := game.(Observable); ok {
		if opts.Store != nil {
			m.journal = storage.NewJournal(opts.Store, game.ID(), opts.Session)
			obs.Subscribe(m.journal)
		}
		obs.Subscribe(philo.RoundLogger(logger, game.ID(), opts.Session))
	}
	return m
}

// playHeight leaves the bottom row for the help footer.
func playHeight(h int) int {
	return core.Max(h-1, 0)
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The reflex games are size independent; only the buffer changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, keys.Back):
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.journal != nil {
		if err := m.journal.Err(); err != nil && err != m.journalErr {
			m.logger.Warn("could not record reaction", "game", m.game.ID(), "error", err)
			m.journalErr = err
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen to ~/.philo/screenshots.
// The first line records the background color, which the text alone loses.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".philo", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	content := fmt.Sprintf("# background %s\n%s\n", m.screen.Background().Hex(), m.screen.String())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.style().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keyMapper.Keys()))
	return RenderScreen(m.renderer, m.screen) + "\n" + footer
}

func (m GameModel) style() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game in the terminal until the player quits or
// goes back.
func Run(game registry.Game, opts GameOptions) error {
	model := NewGameModel(game, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks tap
	)

	_, err := p.Run()
	return err
}
