// Package config holds named ruleset presets: a small registry mapping a
// preset name to a validated engine.Config, so callers (the CLI, the
// solver) can refer to "classic-36" instead of spelling out every field.
package config

import "github.com/bran/durak/internal/engine"

// registry holds every registered preset, keyed by name.
var registry = map[string]engine.Config{}

// order preserves registration order for List, since map iteration order
// is not stable.
var order []string

// Register adds a named preset to the default registry. Panics if cfg
// fails validation or the name is already registered — both are
// programmer errors caught at init time, not runtime conditions a caller
// can recover from.
func Register(name string, cfg engine.Config) {
	if _, exists := registry[name]; exists {
		panic("config: preset " + name + " already registered")
	}
	if err := cfg.Validate(); err != nil {
		panic("config: preset " + name + " is invalid: " + err.Error())
	}
	registry[name] = cfg
	order = append(order, name)
}

// Get retrieves a preset by name.
func Get(name string) (engine.Config, bool) {
	cfg, ok := registry[name]
	return cfg, ok
}

// List returns every registered preset name, in registration order.
func List() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func init() {
	Register("classic-36", engine.Config{
		DeckSize: 36, NumPlayers: 2, Reflecting: true, TrumpReflecting: true,
	})
	Register("classic-36-no-reflect", engine.Config{
		DeckSize: 36, NumPlayers: 2, Reflecting: false, TrumpReflecting: false,
	})
	Register("full-deck-4p", engine.Config{
		DeckSize: 52, NumPlayers: 4, Reflecting: true, TrumpReflecting: true,
	})
	Register("six-player-52", engine.Config{
		DeckSize: 52, NumPlayers: 6, Reflecting: true, TrumpReflecting: true,
	})
	Register("short-40-3p", engine.Config{
		DeckSize: 40, NumPlayers: 3, Reflecting: true, TrumpReflecting: false,
	})
}
