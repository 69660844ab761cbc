package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coup/internal/engine"
	"coup/internal/engine/actions"
)

func viewFor(coins int, cards []engine.Character, others ...engine.PublicParticipant) engine.PublicView {
	me := engine.PublicParticipant{
		Name: "me", Coins: coins, Cards: cards, CardCount: len(cards), Influence: len(cards),
	}
	return engine.PublicView{Viewer: "me", Participants: append([]engine.PublicParticipant{me}, others...)}
}

func opponent(name string, coins, influence int) engine.PublicParticipant {
	return engine.PublicParticipant{Name: name, Coins: coins, Influence: influence, CardCount: influence}
}

func TestBotChooseAction(t *testing.T) {
	b := NewBot(1)
	b.BluffRate = 0
	ctx := context.Background()
	rich := opponent("opp", 4, 2)

	tests := []struct {
		name  string
		coins int
		cards []engine.Character
		want  engine.ActionKind
	}{
		{"coup when rich", 7, []engine.Character{engine.CharDuke, engine.CharCaptain}, engine.ActionCoup},
		{"assassin with coins", 3, []engine.Character{engine.CharAssassin, engine.CharDuke}, engine.ActionAssassinate},
		{"duke taxes", 2, []engine.Character{engine.CharDuke, engine.CharContessa}, engine.ActionTax},
		{"captain steals", 2, []engine.Character{engine.CharCaptain, engine.CharContessa}, engine.ActionSteal},
		{"ambassador exchanges", 2, []engine.Character{engine.CharAmbassador, engine.CharContessa}, engine.ActionExchange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.ChooseAction(ctx, viewFor(tt.coins, tt.cards, rich))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBotHonestFallbackIsFree(t *testing.T) {
	b := NewBot(2)
	b.BluffRate = 0
	for range 20 {
		got, err := b.ChooseAction(context.Background(),
			viewFor(2, []engine.Character{engine.CharContessa, engine.CharContessa}, opponent("opp", 0, 2)))
		require.NoError(t, err)
		assert.Contains(t, []engine.ActionKind{engine.ActionIncome, engine.ActionForeignAid}, got)
	}
}

func TestBotAvoidsRepeatingBlockedSteal(t *testing.T) {
	b := NewBot(3)
	b.BluffRate = 0
	v := viewFor(2, []engine.Character{engine.CharCaptain, engine.CharContessa}, opponent("opp", 4, 2))
	v.RecentLog = []engine.Entry{
		{Kind: engine.EntryAction, Actor: "me", Action: engine.ActionSteal, Target: "opp", Outcome: engine.OutcomeBlocked},
		{Kind: engine.EntryAction, Actor: "opp", Action: engine.ActionIncome, Outcome: engine.OutcomeSuccess},
	}
	got, err := b.ChooseAction(context.Background(), v)
	require.NoError(t, err)
	assert.NotEqual(t, engine.ActionSteal, got)
}

func TestBotChooseTarget(t *testing.T) {
	b := NewBot(4)
	v := viewFor(7, []engine.Character{engine.CharDuke},
		opponent("weak", 6, 1), opponent("strong", 1, 2), opponent("rich", 2, 1))

	got, err := b.ChooseTarget(context.Background(), v, engine.ActionCoup, []string{"weak", "strong", "rich"})
	require.NoError(t, err)
	assert.Equal(t, "strong", got)

	got, err = b.ChooseTarget(context.Background(), v, engine.ActionSteal, []string{"weak", "strong", "rich"})
	require.NoError(t, err)
	assert.Equal(t, "weak", got)

	got, err = b.ChooseTarget(context.Background(), v, engine.ActionCoup, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBotBlocksWithQualifiedCard(t *testing.T) {
	b := NewBot(5)
	b.BluffRate = 0
	ctx := context.Background()

	yes, err := b.WantsToBlock(ctx, viewFor(2, []engine.Character{engine.CharAmbassador, engine.CharDuke}), "opp", engine.ActionSteal)
	require.NoError(t, err)
	assert.True(t, yes)

	yes, err = b.WantsToBlock(ctx, viewFor(2, []engine.Character{engine.CharDuke, engine.CharDuke}), "opp", engine.ActionAssassinate)
	require.NoError(t, err)
	assert.False(t, yes)

	yes, err = b.WantsToBlock(ctx, viewFor(2, []engine.Character{engine.CharDuke}), "opp", engine.ActionAssassinate)
	require.NoError(t, err)
	assert.True(t, yes, "last card should always contest an assassination")
}

func TestBotNeverChallengesUnclaimedActions(t *testing.T) {
	b := NewBot(6)
	b.ChallengeRate = 1
	for _, kind := range []engine.ActionKind{engine.ActionIncome, engine.ActionForeignAid, engine.ActionCoup} {
		yes, err := b.WantsToChallenge(context.Background(), viewFor(2, nil), "opp", kind)
		require.NoError(t, err)
		assert.False(t, yes, kind)
	}
}

func TestBotExchangeReturnsWeakest(t *testing.T) {
	b := NewBot(7)
	hand := []engine.Character{engine.CharAmbassador, engine.CharDuke, engine.CharDuke, engine.CharCaptain}
	got, err := b.ChooseExchangeCards(context.Background(), hand, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []engine.Character{engine.CharDuke, engine.CharAmbassador}, got)
}

// Full bot games: every game ends with a winner, card accounting holds and
// eliminated participants never act again.
func TestBotGamesKeepInvariants(t *testing.T) {
	for seats := engine.MinSeats; seats <= engine.MaxSeats; seats++ {
		for seed := uint64(1); seed <= 15; seed++ {
			t.Run(fmt.Sprintf("%d seats seed %d", seats, seed), func(t *testing.T) {
				var ss []engine.Seat
				for i := range seats {
					ss = append(ss, engine.Seat{
						Name:    fmt.Sprintf("bot%d", i+1),
						Decider: NewBot(seed*31 + uint64(i)),
					})
				}
				cfg := engine.DefaultConfig()
				cfg.Seed = seed
				cfg.DecisionTimeout = time.Second
				g, err := engine.NewGame(ss, cfg, actions.Registry())
				require.NoError(t, err)
				require.NoError(t, g.Start())

				for turn := 0; turn < 2000 && g.Phase != engine.PhaseGameOver; turn++ {
					require.NoError(t, g.PlayTurn(context.Background()))
				}
				require.Equal(t, engine.PhaseGameOver, g.Phase, "game did not finish")

				winner, over := g.State.Winner()
				require.True(t, over)
				require.NotEmpty(t, winner)

				influence := make(map[string]int)
				for _, s := range ss {
					influence[s.Name] = engine.HandSize
				}
				for _, e := range g.State.Entries() {
					if e.Kind == engine.EntryTurn {
						require.Positive(t, influence[e.Actor], "eliminated %s took a turn", e.Actor)
					}
					if e.Kind == engine.EntryInfluence {
						influence[e.Player] += e.Delta
					}
				}
				require.NoError(t, g.CheckIntegrity())
			})
		}
	}
}
