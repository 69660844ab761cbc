package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"coup/internal/engine"
)

// Human is a decider driven by the person at the terminal. The engine's
// decision timeout still applies; a late answer is discarded.
type Human struct {
	Prompt Prompter
	Out    io.Writer // board output; nil skips rendering
}

func NewHuman(p Prompter, out io.Writer) *Human {
	return &Human{Prompt: p, Out: out}
}

func (h *Human) show(view engine.PublicView) {
	if h.Out == nil {
		return
	}
	board, err := RenderView(view)
	if err != nil {
		fmt.Fprintln(h.Out, err)
		return
	}
	fmt.Fprintln(h.Out, board)
}

func (h *Human) ChooseAction(ctx context.Context, view engine.PublicView) (engine.ActionKind, error) {
	h.show(view)
	var options []string
	for _, kind := range engine.AllActions() {
		options = append(options, actionLabel(kind))
	}
	choice, err := h.Prompt.Select("Choose your action", options)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, kind := range engine.AllActions() {
		if actionLabel(kind) == choice {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", engine.ErrInvalidAction, choice)
}

func (h *Human) ChooseTarget(ctx context.Context, view engine.PublicView, action engine.ActionKind, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}
	var options []string
	for _, name := range candidates {
		options = append(options, targetLabel(view, name))
	}
	choice, err := h.Prompt.Select(fmt.Sprintf("Who do you %s?", humanize(action)), options)
	if err != nil {
		return "", err
	}
	for i, opt := range options {
		if opt == choice {
			return candidates[i], nil
		}
	}
	return "", fmt.Errorf("%w: %q", engine.ErrNoTarget, choice)
}

func (h *Human) WantsToChallenge(ctx context.Context, view engine.PublicView, claimant string, claim engine.ActionKind) (bool, error) {
	quals := engine.ClaimQualifiers(claim)
	return h.Prompt.Confirm(fmt.Sprintf("%s claims %s (needs %s). Challenge?",
		claimant, humanize(claim), joinNames(quals)), false)
}

func (h *Human) WantsToBlock(ctx context.Context, view engine.PublicView, actor string, action engine.ActionKind) (bool, error) {
	h.show(view)
	return h.Prompt.Confirm(fmt.Sprintf("%s is trying to %s. Block as %s?",
		actor, humanize(action), joinNames(engine.QualifiedBlockers(action))), false)
}

// ChooseExchangeCards asks until exactly count cards are picked.
func (h *Human) ChooseExchangeCards(ctx context.Context, hand []engine.Character, count int) ([]engine.Character, error) {
	options := make([]string, len(hand))
	for i, c := range hand {
		options[i] = strconv.Itoa(i+1) + ". " + c.String()
	}
	text := fmt.Sprintf("Pick %d card(s) to return to the deck", count)
	for {
		picked, err := h.Prompt.MultiSelect(text, options)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(picked) != count {
			text = fmt.Sprintf("Pick exactly %d card(s), you picked %d", count, len(picked))
			continue
		}
		out := make([]engine.Character, 0, count)
		for _, p := range picked {
			n, _, _ := strings.Cut(p, ".")
			i, err := strconv.Atoi(n)
			if err != nil || i < 1 || i > len(hand) {
				return nil, fmt.Errorf("%w: %q", engine.ErrInvalidAction, p)
			}
			out = append(out, hand[i-1])
		}
		return out, nil
	}
}

func actionLabel(kind engine.ActionKind) string {
	rule, _ := engine.LookupRule(kind)
	label := humanize(kind)
	if rule.Cost > 0 {
		label += fmt.Sprintf(" (%d coins)", rule.Cost)
	}
	if rule.Requires != engine.CharNone {
		label += " [" + rule.Requires.String() + "]"
	}
	return label
}

func targetLabel(view engine.PublicView, name string) string {
	p, ok := view.Find(name)
	if !ok {
		return name
	}
	return fmt.Sprintf("%s (%d coins, %d cards)", name, p.Coins, p.CardCount)
}

func humanize(kind engine.ActionKind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

func joinNames(cards []engine.Character) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, " or ")
}
