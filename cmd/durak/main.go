package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/bran/durak/internal/ai"
	"github.com/bran/durak/internal/ai/rule_based"
	"github.com/bran/durak/internal/config"
	"github.com/bran/durak/internal/deduce"
	"github.com/bran/durak/internal/engine"
	"github.com/bran/durak/internal/solver"
)

func main() {
	cliApp := &cli.App{
		Name:  "durak",
		Usage: "Play and analyze the Russian card game Durak",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "preset", Value: "classic-36", Usage: "ruleset preset name (see 'durak presets')"},
		},
		Commands: []*cli.Command{
			{
				Name:   "presets",
				Usage:  "List available ruleset presets",
				Action: runPresets,
			},
			{
				Name:  "new",
				Usage: "Deal a new game and print its state as JSON",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Value: 1, Usage: "RNG seed for a computer-dealt game"},
				},
				Action: runNew,
			},
			{
				Name:   "legal",
				Usage:  "Print the legal actions for a state read from stdin",
				Action: runLegal,
			},
			{
				Name:  "apply",
				Usage: "Apply an action (JSON on stdin: {\"state\":...,\"action\":...}) and print the resulting state",
				Action: runApply,
			},
			{
				Name:  "deduce",
				Usage: "Propagate negative knowledge over a state read from stdin",
				Action: runDeduce,
			},
			{
				Name:  "solve",
				Usage: "Run the MCTS advisor over a state read from stdin",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "determinizations", Value: 64},
					&cli.IntFlag{Name: "workers", Value: 4},
					&cli.IntFlag{Name: "iterations", Value: 200},
					&cli.Int64Flag{Name: "seed", Value: 1},
				},
				Action: runSolve,
			},
			{
				Name:  "watch",
				Usage: "Watch a computer-dealt game auto-play in the terminal",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Value: 1},
					&cli.IntFlag{Name: "players", Value: 2},
				},
				Action: runWatch,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// presetConfig resolves the --preset flag to a validated engine.Config.
func presetConfig(c *cli.Context) (engine.Config, error) {
	name := c.String("preset")
	cfg, ok := config.Get(name)
	if !ok {
		return engine.Config{}, cli.Exit(fmt.Sprintf("unknown preset %q (see 'durak presets')", name), 1)
	}
	return cfg, nil
}

func runPresets(c *cli.Context) error {
	for _, name := range config.List() {
		cfg, _ := config.Get(name)
		fmt.Fprintf(c.App.Writer, "%-24s deck=%d players=%d reflect=%v trump_reflect=%v\n",
			name, cfg.DeckSize, cfg.NumPlayers, cfg.Reflecting, cfg.TrumpReflecting)
	}
	return nil
}

func runNew(c *cli.Context) error {
	cfg, err := presetConfig(c)
	if err != nil {
		return err
	}
	state, err := engine.NewComputerGame(c.Int64("seed"), cfg)
	if err != nil {
		return exitErr(err)
	}
	return printJSON(c, state)
}

func runLegal(c *cli.Context) error {
	state, err := readState(c)
	if err != nil {
		return err
	}
	actions := engine.LegalActions(state)
	envelopes := make([]json.RawMessage, len(actions))
	for i, a := range actions {
		b, err := engine.MarshalAction(a)
		if err != nil {
			return exitErr(err)
		}
		envelopes[i] = b
	}
	return printJSON(c, envelopes)
}

type applyRequest struct {
	State  *engine.State   `json:"state"`
	Action json.RawMessage `json:"action"`
}

func runApply(c *cli.Context) error {
	var req applyRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		return cli.Exit(fmt.Sprintf("SerializationError: %v", err), 1)
	}
	action, err := engine.UnmarshalAction(req.Action)
	if err != nil {
		return exitErr(err)
	}
	next, err := engine.Apply(req.State, action)
	if err != nil {
		return exitErr(err)
	}
	return printJSON(c, next)
}

func runDeduce(c *cli.Context) error {
	state, err := readState(c)
	if err != nil {
		return err
	}
	deduced, err := deduce.DeduceCards(state)
	if err != nil {
		return exitErr(err)
	}
	return printJSON(c, deduced)
}

func runSolve(c *cli.Context) error {
	state, err := readState(c)
	if err != nil {
		return err
	}
	req := solver.Request{
		State:            state,
		RootPlayer:       state.Viewer,
		Determinizations: c.Int("determinizations"),
		Workers:          c.Int("workers"),
		Iterations:       c.Int("iterations"),
		Seed:             c.Int64("seed"),
	}
	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()
	result, err := solver.Solve(ctx, req)
	if err != nil {
		return exitErr(err)
	}
	for _, a := range result.Actions {
		score := "n/a"
		if a.Score != nil {
			score = fmt.Sprintf("%.3f", *a.Score)
		}
		fmt.Fprintf(c.App.Writer, "%-28s visits=%-6d score=%s\n", a.Action.Key(), a.Visits, score)
	}
	return nil
}

func runWatch(c *cli.Context) error {
	cfg, err := presetConfig(c)
	if err != nil {
		return err
	}
	cfg.NumPlayers = c.Int("players")
	if err := cfg.Validate(); err != nil {
		return exitErr(err)
	}
	state, err := engine.NewComputerGame(c.Int64("seed"), cfg)
	if err != nil {
		return exitErr(err)
	}

	players := rule_based.CreatePlayers(cfg.NumPlayers, engine.PlayerID(-1), ai.DifficultyMedium)
	p := tea.NewProgram(newWatchModel(state, players), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func readState(c *cli.Context) (*engine.State, error) {
	var state engine.State
	if err := json.NewDecoder(os.Stdin).Decode(&state); err != nil {
		return nil, cli.Exit(fmt.Sprintf("SerializationError: %v", err), 1)
	}
	return &state, nil
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return exitErr(engine.SerializationError{Reason: "encode", Err: err})
	}
	return nil
}

// exitErr maps an engine error to a cli.Exit carrying its ErrorKind name,
// so scripts driving this CLI can branch on the kind without parsing text.
func exitErr(err error) error {
	if kinded, ok := err.(engine.Kinded); ok {
		return cli.Exit(fmt.Sprintf("%s: %v", kinded.Kind(), err), 1)
	}
	return cli.Exit(err.Error(), 1)
}
