package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"coup/internal/engine"
)

// RenderView draws the participants as a table followed by the recent log.
// Only the viewer's own cards are named.
func RenderView(view engine.PublicView) (string, error) {
	data := pterm.TableData{{"Player", "Coins", "Influence", "Cards"}}
	for _, p := range view.Participants {
		cards := strings.Repeat("? ", p.CardCount)
		if len(p.Cards) > 0 {
			names := make([]string, len(p.Cards))
			for i, c := range p.Cards {
				names[i] = c.String()
			}
			cards = strings.Join(names, ", ")
		}
		name := p.Name
		if p.Name == view.Turn {
			name = "> " + name
		}
		if p.CardCount == 0 {
			cards = "out"
		}
		data = append(data, []string{name, strconv.Itoa(p.Coins), strconv.Itoa(p.Influence), strings.TrimSpace(cards)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(table)
	fmt.Fprintf(&sb, "\nDeck: %d\n", view.DeckSize)
	for _, e := range view.RecentLog {
		if e.Kind == engine.EntryTurn {
			continue
		}
		fmt.Fprintf(&sb, "  %s\n", e)
	}
	return sb.String(), nil
}

// Narrator prints each log entry as it happens. It is an engine observer.
type Narrator struct {
	Out io.Writer
}

func (n Narrator) Observe(e engine.Entry, _ engine.PublicView) {
	switch e.Kind {
	case engine.EntryTurn:
		fmt.Fprintln(n.Out, pterm.DefaultSection.Sprint(e.String()))
	case engine.EntryGameOver:
		fmt.Fprintln(n.Out, pterm.Success.Sprint(e.String()))
	case engine.EntryInfluence:
		fmt.Fprintln(n.Out, pterm.Warning.Sprint(e.String()))
	default:
		fmt.Fprintln(n.Out, pterm.Info.Sprint(e.String()))
	}
}
