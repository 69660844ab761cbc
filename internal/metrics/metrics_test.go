package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coup/internal/agent"
	"coup/internal/engine"
	"coup/internal/engine/actions"
)

func TestObserveCountsEntries(t *testing.T) {
	m := New(prometheus.NewRegistry())
	view := engine.PublicView{}

	m.Observe(engine.Entry{Kind: engine.EntryTurn, Actor: "A"}, view)
	m.Observe(engine.Entry{Kind: engine.EntryAction, Action: engine.ActionTax, Outcome: engine.OutcomeSuccess}, view)
	m.Observe(engine.Entry{Kind: engine.EntryAction, Action: engine.ActionTax, Outcome: engine.OutcomeSuccess}, view)
	m.Observe(engine.Entry{Kind: engine.EntryAction, Action: engine.ActionCoup, Outcome: engine.OutcomeInsufficientCoins}, view)
	m.Observe(engine.Entry{Kind: engine.EntryChallenge, Result: engine.ResultBluff, Success: true}, view)
	m.Observe(engine.Entry{Kind: engine.EntryBlock, Result: engine.ResultUnchallenged, Success: true}, view)
	m.Observe(engine.Entry{Kind: engine.EntryInfluence, Player: "B", Delta: -1, Card: engine.CharDuke}, view)
	m.Observe(engine.Entry{Kind: engine.EntryGameOver, Winner: "A"}, view)
	m.Observe(engine.Entry{Kind: engine.EntryGameOver}, view)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Turns))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Actions.WithLabelValues("tax", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("coup", "insufficient_coins")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Challenges.WithLabelValues(engine.ResultBluff)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Blocks.WithLabelValues(engine.ResultUnchallenged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InfluenceLost.WithLabelValues("Duke")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesFinished.WithLabelValues("yes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesFinished.WithLabelValues("none")))
}

func TestFallbackReason(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Fallback("A", "action", fmt.Errorf("%w: context deadline exceeded", engine.ErrDecisionTimeout))
	m.Fallback("A", "block", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks.WithLabelValues("action", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks.WithLabelValues("block", "error")))
}

func TestObserveFullGame(t *testing.T) {
	m := New(prometheus.NewRegistry())
	seats := []engine.Seat{
		{Name: "A", Decider: agent.NewBot(1)},
		{Name: "B", Decider: agent.NewBot(2)},
		{Name: "C", Decider: agent.NewBot(3)},
	}
	cfg := engine.DefaultConfig()
	cfg.Seed = 7
	g, err := engine.NewGame(seats, cfg, actions.Registry())
	require.NoError(t, err)
	g.AddObserver(m)
	g.OnFallback(m.Fallback)

	winner, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, winner)

	assert.Equal(t, float64(g.Turns), testutil.ToFloat64(m.Turns))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesFinished.WithLabelValues("yes")))

	tally := make(map[[2]string]int)
	for _, e := range g.State.Entries() {
		if e.Kind == engine.EntryAction {
			tally[[2]string{string(e.Action), string(e.Outcome)}]++
		}
	}
	for k, n := range tally {
		assert.Equal(t, float64(n), testutil.ToFloat64(m.Actions.WithLabelValues(k[0], k[1])), "%s/%s", k[0], k[1])
	}
}
