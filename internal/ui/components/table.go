package components

import (
	"fmt"
	"strings"

	"github.com/bran/durak/internal/engine"
	"github.com/bran/durak/internal/ui/theme"
	"github.com/charmbracelet/lipgloss"
)

// TableView renders one Durak table: every seat's card count and role,
// the attack/defense piles currently in play, and a trump/stock/discard
// status line. Unlike a fixed four-seat partnership table, seats are laid
// out in a single row since Durak supports 2-6 players with a rotating
// attacker/defender assignment rather than fixed partnerships.
type TableView struct {
	Width int

	TrumpCard   engine.Card
	StockSize   int
	DiscardSize int
	TrickNumber int

	SeatNames   []string
	HandSizes   []int
	Defender    engine.PlayerID
	Attackers   []engine.PlayerID
	CurrentTurn engine.PlayerID

	Piles []engine.Pile
}

// NewTableView creates a new table view with a sensible default width.
func NewTableView() *TableView {
	return &TableView{Width: 72}
}

// Render returns the visual representation of the table.
func (t *TableView) Render() string {
	var sb strings.Builder
	sb.WriteString(t.renderSeats())
	sb.WriteString("\n\n")
	sb.WriteString(t.renderPiles())
	sb.WriteString("\n\n")
	sb.WriteString(t.renderStatusLine())
	return sb.String()
}

// renderSeats lists every seat with its hand size, its attacker/defender
// role this trick, and a turn indicator for whoever is on move.
func (t *TableView) renderSeats() string {
	parts := make([]string, len(t.SeatNames))
	for i, name := range t.SeatNames {
		p := engine.PlayerID(i)

		role := ""
		switch {
		case p == t.Defender:
			role = " " + theme.Current.Warning.Render("defending")
		case containsPlayer(t.Attackers, p):
			role = " " + theme.Current.Accent.Render("attacking")
		}

		turn := ""
		if p == t.CurrentTurn {
			turn = " " + theme.Current.Success.Render("◀")
		}

		parts[i] = fmt.Sprintf("%s [%d]%s%s", name, t.HandSizes[i], role, turn)
	}
	return lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, strings.Join(parts, "   "))
}

// renderPiles renders every attack/defense pair currently on the table,
// side by side, each defense card stacked below its attack card (an empty
// slot if the pile is still undefended).
func (t *TableView) renderPiles() string {
	if len(t.Piles) == 0 {
		return lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, theme.Current.Muted.Render("(table is empty)"))
	}

	columns := make([]string, len(t.Piles))
	for i, p := range t.Piles {
		attack := NewCardView(p.Attack).Render()
		var defense string
		if p.Defense != nil {
			defense = NewCardView(*p.Defense).Render()
		} else {
			defense = emptyCardSlot()
		}
		columns[i] = lipgloss.JoinVertical(lipgloss.Center, attack, defense)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, "  ")...)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3498DB")).
		Padding(0, 1)
	return lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, style.Render(row))
}

// renderStatusLine shows the trump card, stock/discard sizes, and trick
// number.
func (t *TableView) renderStatusLine() string {
	trumpStyle := theme.Current.CardBlack
	if t.TrumpCard.Suit == engine.Hearts || t.TrumpCard.Suit == engine.Diamonds {
		trumpStyle = theme.Current.CardRed
	}

	parts := []string{
		fmt.Sprintf("Trump: %s", trumpStyle.Render(t.TrumpCard.Suit.Symbol()+" "+t.TrumpCard.Rank.String())),
		fmt.Sprintf("Stock: %d", t.StockSize),
		fmt.Sprintf("Discard: %d", t.DiscardSize),
		fmt.Sprintf("Trick %d", t.TrickNumber+1),
	}
	return lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, strings.Join(parts, "  •  "))
}

func emptyCardSlot() string {
	return lipgloss.NewStyle().Width(7).Height(5).Render("")
}

func interleave(cols []string, sep string) []string {
	out := make([]string, 0, len(cols)*2-1)
	for i, c := range cols {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, c)
	}
	return out
}

func containsPlayer(list []engine.PlayerID, p engine.PlayerID) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}
