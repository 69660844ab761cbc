package agent

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"coup/internal/engine"
)

// Completer sends a prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const systemPrompt = `You are an expert Coup player. Your goal is to strategically outmaneuver your opponents.
Weigh your own cards and coins, what your opponents' recent actions suggest about their cards,
and the risk of being challenged or blocked. Bluff when the odds favour it.
Answer in one short sentence.`

// LLM asks a language model for every decision. Replies it cannot use, and
// any completer failure, are handed to Fallback.
type LLM struct {
	Completer Completer
	Fallback  *Bot
	Logger    *slog.Logger
}

func NewLLM(c Completer, fallback *Bot, logger *slog.Logger) *LLM {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LLM{Completer: c, Fallback: fallback, Logger: logger}
}

func (l *LLM) ask(ctx context.Context, decision string, view engine.PublicView, question string) (string, bool) {
	reply, err := l.Completer.Complete(ctx, systemPrompt, buildPrompt(view, decision, question))
	if err != nil {
		l.Logger.Warn("completion failed, using fallback", "player", view.Viewer, "decision", decision, "error", err)
		return "", false
	}
	l.Logger.Debug("completion", "player", view.Viewer, "decision", decision, "reply", reply)
	return reply, true
}

func (l *LLM) ChooseAction(ctx context.Context, view engine.PublicView) (engine.ActionKind, error) {
	question := `Which action do you take? Start with "The best action is to" followed by one of: ` +
		strings.Join(actionNames(), ", ") + "."
	if reply, ok := l.ask(ctx, "action", view, question); ok {
		kind, found := extractAction(reply)
		switch {
		case !found:
			l.Logger.Warn("unparseable action reply", "player", view.Viewer, "reply", reply)
		case !affordable(view, kind):
			l.Logger.Warn("model chose an unaffordable action", "player", view.Viewer, "action", kind)
		case kind == lastRejected(view):
			l.Logger.Warn("model repeated a rejected action", "player", view.Viewer, "action", kind)
		default:
			return kind, nil
		}
	}
	return l.Fallback.ChooseAction(ctx, view)
}

func (l *LLM) ChooseTarget(ctx context.Context, view engine.PublicView, action engine.ActionKind, candidates []string) (string, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	question := fmt.Sprintf("You are performing %s. Name exactly one target from: %s.",
		action, strings.Join(candidates, ", "))
	if reply, ok := l.ask(ctx, "target", view, question); ok {
		if name, found := extractName(reply, candidates); found {
			return name, nil
		}
	}
	return l.Fallback.ChooseTarget(ctx, view, action, candidates)
}

func (l *LLM) WantsToChallenge(ctx context.Context, view engine.PublicView, claimant string, claim engine.ActionKind) (bool, error) {
	question := fmt.Sprintf("%s claims %s. Do you challenge? Answer \"challenge\" or \"no challenge\".", claimant, claim)
	if reply, ok := l.ask(ctx, "challenge", view, question); ok {
		if yes, decided := parseYesNo(reply, "challenge"); decided {
			return yes, nil
		}
	}
	return l.Fallback.WantsToChallenge(ctx, view, claimant, claim)
}

func (l *LLM) WantsToBlock(ctx context.Context, view engine.PublicView, actor string, action engine.ActionKind) (bool, error) {
	blockers := engine.QualifiedBlockers(action)
	question := fmt.Sprintf("%s is performing %s, which %s can block. Do you block? Answer \"block\" or \"no block\".",
		actor, action, joinCharacters(blockers))
	if reply, ok := l.ask(ctx, "block", view, question); ok {
		if yes, decided := parseYesNo(reply, "block"); decided {
			return yes, nil
		}
	}
	return l.Fallback.WantsToBlock(ctx, view, actor, action)
}

func (l *LLM) ChooseExchangeCards(ctx context.Context, hand []engine.Character, count int) ([]engine.Character, error) {
	question := fmt.Sprintf("You drew cards for an exchange and hold %s. Name exactly %d cards to return to the deck.",
		joinCharacters(hand), count)
	view := engine.PublicView{}
	if reply, ok := l.ask(ctx, "exchange", view, question); ok {
		if cards, found := extractCards(reply, hand, count); found {
			return cards, nil
		}
	}
	return l.Fallback.ChooseExchangeCards(ctx, hand, count)
}

// buildPrompt renders what the viewer may know: its own cards, everyone's
// coins and card counts, and the recent log.
func buildPrompt(view engine.PublicView, decision, question string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Decision type: %s\n", decision)
	if me, ok := view.Self(); ok {
		fmt.Fprintf(&sb, "You are %s with %d coins holding %s.\n", me.Name, me.Coins, joinCharacters(me.Cards))
	}
	if len(view.Participants) > 0 {
		sb.WriteString("Players:\n")
		for _, p := range view.Participants {
			if p.Name == view.Viewer {
				continue
			}
			fmt.Fprintf(&sb, "- %s: %d coins, %d cards\n", p.Name, p.Coins, p.CardCount)
		}
		fmt.Fprintf(&sb, "Deck: %d cards\n", view.DeckSize)
	}
	if len(view.RecentLog) > 0 {
		sb.WriteString("Recent events:\n")
		for _, e := range view.RecentLog {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}
	sb.WriteString(question)
	return sb.String()
}

var wordRe = regexp.MustCompile(`[a-z_]+`)

const actionLead = "best action is to"

// extractAction finds the first action named in reply, looking after "The
// best action is to" when the reply has it. "foreign aid" is accepted as two
// words.
func extractAction(reply string) (engine.ActionKind, bool) {
	r := strings.ToLower(reply)
	if i := strings.Index(r, actionLead); i >= 0 {
		r = r[i+len(actionLead):]
	}
	words := wordRe.FindAllString(r, -1)
	for i, w := range words {
		if _, ok := engine.LookupRule(engine.ActionKind(w)); ok {
			return engine.ActionKind(w), true
		}
		if i+1 < len(words) {
			if joined := engine.ActionKind(w + "_" + words[i+1]); joined == engine.ActionForeignAid {
				return joined, true
			}
		}
	}
	return "", false
}

// parseYesNo reads a reply to a "verb or no verb" question. decided is false
// when the reply says neither.
func parseYesNo(reply, verb string) (yes, decided bool) {
	r := strings.ToLower(reply)
	if words := wordRe.FindAllString(r, 1); len(words) == 1 {
		switch words[0] {
		case "yes":
			return true, true
		case "no":
			return false, true
		}
	}
	for _, neg := range []string{"no " + verb, "no_" + verb, "not " + verb, "don't " + verb, "won't " + verb} {
		if strings.Contains(r, neg) {
			return false, true
		}
	}
	if strings.Contains(r, verb) {
		return true, true
	}
	return false, false
}

func extractName(reply string, candidates []string) (string, bool) {
	r := strings.ToLower(reply)
	best, at := "", -1
	for _, c := range candidates {
		if i := strings.Index(r, strings.ToLower(c)); i >= 0 && (at < 0 || i < at) {
			best, at = c, i
		}
	}
	return best, at >= 0
}

// extractCards reads count character names from reply, each one present in
// hand.
func extractCards(reply string, hand []engine.Character, count int) ([]engine.Character, bool) {
	pool := slices.Clone(hand)
	var out []engine.Character
	for _, w := range wordRe.FindAllString(strings.ToLower(reply), -1) {
		for i, c := range pool {
			if strings.ToLower(c.String()) == w {
				out = append(out, c)
				pool = slices.Delete(pool, i, i+1)
				break
			}
		}
		if len(out) == count {
			return out, true
		}
	}
	return nil, false
}

func affordable(view engine.PublicView, kind engine.ActionKind) bool {
	rule, ok := engine.LookupRule(kind)
	if !ok {
		return false
	}
	me, ok := view.Self()
	return ok && me.Coins >= rule.Cost
}

// lastRejected returns the viewer's action if the latest log entry is that
// action being rejected.
func lastRejected(view engine.PublicView) engine.ActionKind {
	if len(view.RecentLog) == 0 {
		return ""
	}
	e := view.RecentLog[len(view.RecentLog)-1]
	if e.Kind == engine.EntryAction && e.Actor == view.Viewer && e.Outcome.Rejected() {
		return e.Action
	}
	return ""
}

func actionNames() []string {
	var out []string
	for _, a := range engine.AllActions() {
		out = append(out, strings.ReplaceAll(string(a), "_", " "))
	}
	return out
}

func joinCharacters(cards []engine.Character) string {
	if len(cards) == 0 {
		return "nothing"
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, " and ")
}
