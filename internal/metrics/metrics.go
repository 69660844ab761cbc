// Package metrics counts game events for Prometheus. Metrics is an engine
// observer; register it on every game with AddObserver and OnFallback.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"coup/internal/engine"
)

const namespace = "coup"

type Metrics struct {
	Actions       *prometheus.CounterVec
	Challenges    *prometheus.CounterVec
	Blocks        *prometheus.CounterVec
	InfluenceLost *prometheus.CounterVec
	Turns         prometheus.Counter
	GamesFinished *prometheus.CounterVec
	Fallbacks     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Attempted actions by kind and outcome.",
		}, []string{"action", "outcome"}),
		Challenges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenges_total",
			Help:      "Resolved challenges by result.",
		}, []string{"result"}),
		Blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_total",
			Help:      "Declared blocks by result.",
		}, []string{"result"}),
		InfluenceLost: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "influence_lost_total",
			Help:      "Cards lost by character.",
		}, []string{"card"}),
		Turns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Turns started.",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games, split by whether a winner was found.",
		}, []string{"winner"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decision_fallbacks_total",
			Help:      "Decisions replaced by their default.",
		}, []string{"decision", "reason"}),
	}
	reg.MustRegister(m.Actions, m.Challenges, m.Blocks, m.InfluenceLost,
		m.Turns, m.GamesFinished, m.Fallbacks)
	return m
}

// Observe counts one log entry.
func (m *Metrics) Observe(e engine.Entry, _ engine.PublicView) {
	switch e.Kind {
	case engine.EntryTurn:
		m.Turns.Inc()
	case engine.EntryAction:
		m.Actions.WithLabelValues(string(e.Action), string(e.Outcome)).Inc()
	case engine.EntryChallenge:
		m.Challenges.WithLabelValues(e.Result).Inc()
	case engine.EntryBlock:
		m.Blocks.WithLabelValues(e.Result).Inc()
	case engine.EntryInfluence:
		m.InfluenceLost.WithLabelValues(e.Card.String()).Inc()
	case engine.EntryGameOver:
		label := "yes"
		if e.Winner == "" {
			label = "none"
		}
		m.GamesFinished.WithLabelValues(label).Inc()
	}
}

// Fallback counts a decision that fell back to its default. It matches the
// signature of engine.Game.OnFallback.
func (m *Metrics) Fallback(_, decision string, err error) {
	reason := "error"
	if errors.Is(err, engine.ErrDecisionTimeout) {
		reason = "timeout"
	}
	m.Fallbacks.WithLabelValues(decision, reason).Inc()
}
