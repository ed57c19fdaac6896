// Package registry keeps the set of playable cabinets.
// Each game package registers its factories from init(), so hosts can list and
// start games by ID without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/philo/internal/core"
)

// Game is what every cabinet exposes to a host.
// Implementations hold pure logic; the host owns input mapping, timing and
// drawing the screen buffer.
type Game interface {
	// ID returns a unique identifier (e.g. "philo", "philo_color").
	// Used for CLI commands and the reaction journal.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts over with the given runtime configuration.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick of cfg.TickSeconds().
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst, resizing nothing.
	Render(dst *core.Screen)

	// State returns the current score and flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id.
// Panics if id is empty or already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
