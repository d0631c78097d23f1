package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bran/durak/internal/ai"
	"github.com/bran/durak/internal/engine"
	"github.com/bran/durak/internal/ui/components"
	"github.com/bran/durak/internal/ui/theme"
)

// tickMsg drives the auto-play loop: one simulated decision per tick.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(600*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// watchModel is the bubbletea model behind the `watch` command: it steps a
// computer-dealt game to completion, one AI decision per tick, rendering
// the board through internal/ui/components after every move.
type watchModel struct {
	state   *engine.State
	players []ai.Player
	done    bool
	draw    bool
	durak   engine.PlayerID
}

func newWatchModel(state *engine.State, players []ai.Player) *watchModel {
	return &watchModel{state: state, players: players}
}

func (m *watchModel) Init() tea.Cmd {
	return tick()
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.step()
		if m.done {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

// step applies one decision from whichever player the current phase
// assigns, using LegalActions to both find the actor and bound its choice.
func (m *watchModel) step() {
	if engine.IsOver(m.state) {
		if durak, ok := engine.GetDurak(m.state); ok {
			m.durak = durak
		} else {
			m.draw = true
		}
		m.done = true
		return
	}

	legal := engine.LegalActions(m.state)
	if len(legal) == 0 {
		m.done = true
		return
	}
	actor := legal[0].Player()
	player := m.players[actor]

	var action engine.Action
	switch m.state.Phase {
	case engine.PhaseAttacking, engine.PhaseThrowing:
		action = player.DecideAttack(m.state)
	case engine.PhaseDefending:
		action = player.DecideDefense(m.state)
	}

	next, err := engine.Apply(m.state, action)
	if err != nil {
		m.done = true
		return
	}
	m.state = next
}

func (m *watchModel) View() string {
	table := tableFromState(m.state)
	board := table.Render()

	status := theme.Current.Subtitle.Render("press q to quit")
	switch {
	case m.done && m.draw:
		status = theme.Current.Title.Render("draw — every hand emptied at once, no durak")
	case m.done:
		status = theme.Current.Title.Render(fmt.Sprintf("%s is the durak", m.durak))
	}

	return "\n" + board + "\n\n" + status + "\n"
}

// tableFromState projects an engine.State into the view-layer TableView.
func tableFromState(s *engine.State) *components.TableView {
	t := components.NewTableView()
	t.TrumpCard = s.TrumpCard
	t.StockSize = len(s.Stock)
	t.DiscardSize = len(s.Discard)
	t.TrickNumber = s.TrickNumber
	t.Defender = s.Defender
	t.Attackers = s.Attackers
	t.Piles = s.Table

	t.SeatNames = make([]string, s.NumPlayers())
	t.HandSizes = make([]int, s.NumPlayers())
	for i := 0; i < s.NumPlayers(); i++ {
		t.SeatNames[i] = fmt.Sprintf("P%d", i)
		t.HandSizes[i] = len(s.Hands[i])
	}
	if len(s.Attackers) > 0 {
		t.CurrentTurn = s.Attackers[s.CurrentAttackerIdx]
	}
	if s.Phase == engine.PhaseDefending {
		t.CurrentTurn = s.Defender
	}
	return t
}
