package tui

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Bridge turns game events into entries in the TUI round log
type Bridge struct {
	tui *Model
}

// NewBridge subscribes a bridge for the model to the game's events
func NewBridge(g *game.Game, tui *Model) *Bridge {
	b := &Bridge{tui: tui}
	g.Subscribe(b)
	return b
}

// OnEvent implements game.EventSubscriber
func (b *Bridge) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartedEvent:
		b.tui.AddLogEntry("")
		b.tui.AddLogEntry(fmt.Sprintf("*** ROUND %d ***", e.Round))
		b.tui.AddLogEntry(fmt.Sprintf("Dealer shows %s", formatCard(e.DealerCard)))

	case game.PlayerActionEvent:
		switch e.Action {
		case game.Hit:
			entry := fmt.Sprintf("%s: hits %s (%d)", e.Player, formatCard(*e.Card), e.Value)
			if e.Bust {
				entry += " " + ErrorStyle.Render("BUST")
			}
			b.tui.AddLogEntry(entry)
		case game.Stay:
			b.tui.AddLogEntry(fmt.Sprintf("%s: stays on %d", e.Player, e.Value))
		}

	case game.HoleCardRevealedEvent:
		b.tui.AddLogEntry(fmt.Sprintf("Dealer: reveals %s (%d)", formatCard(e.Card), e.Value))

	case game.DealerDrawEvent:
		b.tui.AddLogEntry(fmt.Sprintf("Dealer: draws %s (%d)", formatCard(e.Card), e.Value))

	case game.RoundSettledEvent:
		if e.DealerBust {
			b.tui.AddLogEntry(fmt.Sprintf("Dealer busts with %d", e.DealerValue))
		}
		for _, r := range e.Results {
			b.tui.AddLogEntry(formatResult(r))
		}
	}
}

func formatResult(r game.Result) string {
	switch r.Outcome {
	case game.OutcomeBlackjack:
		return SuccessStyle.Render(fmt.Sprintf("%s: blackjack! wins $%d", r.Player, r.Delta))
	case game.OutcomeWin:
		return SuccessStyle.Render(fmt.Sprintf("%s: wins $%d with %d", r.Player, r.Delta, r.Value))
	case game.OutcomePush:
		return WarningStyle.Render(fmt.Sprintf("%s: push, $%d returned", r.Player, r.Bet))
	default:
		return ErrorStyle.Render(fmt.Sprintf("%s: loses $%d", r.Player, -r.Delta))
	}
}

// formatCard renders a single card, red suits in red
func formatCard(c deck.Card) string {
	switch {
	case !c.FaceUp():
		return HiddenCardStyle.Render(c.String())
	case c.IsRed():
		return RedCardStyle.Render(c.String())
	default:
		return BlackCardStyle.Render(c.String())
	}
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	out := "["
	for i, c := range cards {
		if i > 0 {
			out += " "
		}
		out += formatCard(c)
	}
	return out + "]"
}
