package components

import (
	"strings"

	"github.com/bran/durak/internal/engine"
	"github.com/bran/durak/internal/ui/theme"
	"github.com/charmbracelet/lipgloss"
)

// CardStyle defines the rendering style for a card.
type CardStyle int

const (
	CardStyleNormal CardStyle = iota
	CardStyleSelected
	CardStylePlayable
	CardStyleSelectedPlayable
	CardStyleDisabled
)

// CardView represents a visual card component.
type CardView struct {
	Card    engine.Card
	Style   CardStyle
	FaceUp  bool
	Compact bool
}

// NewCardView creates a new, face-up card view.
func NewCardView(card engine.Card) *CardView {
	return &CardView{Card: card, Style: CardStyleNormal, FaceUp: true}
}

// Render returns the visual representation of the card.
func (c *CardView) Render() string {
	if !c.FaceUp {
		return c.renderFaceDown()
	}
	if c.Compact {
		return c.renderCompact()
	}
	return c.renderFull()
}

// renderFull renders a full-size card.
func (c *CardView) renderFull() string {
	rank := c.Card.Rank.String()
	suit := c.Card.Suit.Symbol()

	rankPad := rank
	if len(rank) == 1 {
		rankPad = rank + " "
	}

	_, borderStyle, _ := c.getStyles()

	contentColor := lipgloss.Color("#2C3E50")
	if c.Card.Suit == engine.Hearts || c.Card.Suit == engine.Diamonds {
		contentColor = lipgloss.Color("#E74C3C")
	}

	interiorBg := lipgloss.Color("#FFFFFF")
	if c.Style == CardStyleDisabled {
		contentColor = lipgloss.Color("#666666")
		interiorBg = lipgloss.Color("#CCCCCC")
	}

	interiorStyle := lipgloss.NewStyle().
		Background(interiorBg).
		Foreground(contentColor)

	interior1 := interiorStyle.Render(rankPad + "   ")
	interior2 := interiorStyle.Render("  " + suit + "  ")
	interior3 := interiorStyle.Render("   " + rankPad)

	border := borderStyle.Render

	lines := []string{
		border("┌─────┐"),
		border("│") + interior1 + border("│"),
		border("│") + interior2 + border("│"),
		border("│") + interior3 + border("│"),
		border("└─────┘"),
	}
	return strings.Join(lines, "\n")
}

// renderCompact renders a single-line card representation.
func (c *CardView) renderCompact() string {
	return c.getStyle().Render(c.Card.String())
}

// renderFaceDown renders a face-down card.
func (c *CardView) renderFaceDown() string {
	lines := []string{
		"┌─────┐",
		"│░░░░░│",
		"│░░░░░│",
		"│░░░░░│",
		"└─────┘",
	}
	style := theme.Current.Muted
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = style.Render(line)
	}
	return strings.Join(styled, "\n")
}

func (c *CardView) getStyle() lipgloss.Style {
	contentStyle, _, _ := c.getStyles()
	return contentStyle
}

// getStyles returns separate styles for content (rank/suit) and border.
func (c *CardView) getStyles() (contentStyle, borderStyle, bgStyle lipgloss.Style) {
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8C8D"))
	bgStyle = lipgloss.NewStyle()

	if c.Card.Suit == engine.Hearts || c.Card.Suit == engine.Diamonds {
		contentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	} else {
		contentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C3E50"))
	}

	switch c.Style {
	case CardStyleSelected:
		return contentStyle, borderStyle, bgStyle
	case CardStylePlayable, CardStyleSelectedPlayable:
		greenBorder := lipgloss.NewStyle().Foreground(lipgloss.Color("#27AE60"))
		return contentStyle, greenBorder, bgStyle
	case CardStyleDisabled:
		disabledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
		return disabledStyle, disabledStyle, bgStyle
	default:
		return contentStyle, borderStyle, bgStyle
	}
}

// RenderHand renders a hand of cards horizontally. legalCards marks which
// cards are legal to act on right now (e.g. the card side of each legal
// Attack/Throw/Defend action); pass nil to render every card normally.
// Set selectedIdx to -1 to disable selection highlighting.
func RenderHand(cards []engine.Card, selectedIdx int, legalCards []engine.Card) string {
	if len(cards) == 0 {
		return ""
	}

	legal := make(map[string]bool, len(legalCards))
	for _, c := range legalCards {
		legal[c.String()] = true
	}
	hasLegalInfo := len(legalCards) > 0

	cardViews := make([]*CardView, len(cards))
	for i, card := range cards {
		cv := NewCardView(card)
		isSelected := selectedIdx >= 0 && i == selectedIdx
		isLegal := hasLegalInfo && legal[card.String()]

		switch {
		case isSelected && isLegal:
			cv.Style = CardStyleSelectedPlayable
		case isSelected:
			cv.Style = CardStyleSelected
		case isLegal:
			cv.Style = CardStylePlayable
		case hasLegalInfo:
			cv.Style = CardStyleDisabled
		}
		cardViews[i] = cv
	}

	cardWidth := 7
	emptyLine := strings.Repeat(" ", cardWidth)
	renderedCards := make([]string, len(cardViews))
	for i, cv := range cardViews {
		card := cv.Render()
		if selectedIdx >= 0 && i == selectedIdx {
			renderedCards[i] = card + "\n" + emptyLine
		} else {
			renderedCards[i] = emptyLine + "\n" + card
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedCards...)
}

// RenderFaceDown renders count face-down cards horizontally with overlap.
func RenderFaceDown(count int) string {
	if count == 0 {
		return ""
	}
	style := theme.Current.Muted

	var lines [5]string
	for i := 0; i < count; i++ {
		if i < count-1 {
			lines[0] += style.Render("┌─")
			lines[1] += style.Render("│░")
			lines[2] += style.Render("│░")
			lines[3] += style.Render("│░")
			lines[4] += style.Render("└─")
		} else {
			lines[0] += style.Render("┌─────┐")
			lines[1] += style.Render("│░░░░░│")
			lines[2] += style.Render("│░░░░░│")
			lines[3] += style.Render("│░░░░░│")
			lines[4] += style.Render("└─────┘")
		}
	}
	return strings.Join(lines[:], "\n")
}
