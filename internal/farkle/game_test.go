package farkle

import (
	"testing"

	"github.com/anchal00/farkle/internal/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bustRoll = []int{2, 3, 4, 2, 3, 4}

func startedGame(t *testing.T, roller dice.Roller, players ...string) *Game {
	t.Helper()
	g := NewGame(DefaultRules(), roller)
	for _, p := range players {
		_, err := g.AddPlayer(p)
		require.NoError(t, err)
	}
	require.NoError(t, g.Start())
	return g
}

func TestSeating(t *testing.T) {
	rules := DefaultRules()
	rules.MaxPlayers = 2
	g := NewGame(rules, dice.NewScriptedRoller())

	seat, err := g.AddPlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, 0, seat)
	assert.ErrorIs(t, g.Start(), ErrNotEnoughPlayers)

	_, err = g.AddPlayer("alice")
	assert.ErrorIs(t, err, ErrAlreadySeated)

	seat, err = g.AddPlayer("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, seat)
	assert.True(t, g.Full())

	_, err = g.AddPlayer("carol")
	assert.ErrorIs(t, err, ErrRoomFull)

	require.NoError(t, g.Start())
	assert.Equal(t, StatusInProgress, g.Status())
	assert.Equal(t, "alice", g.Turn().PlayerID)
	assert.Equal(t, PhaseWaitingToRoll, g.Turn().Phase)

	_, err = g.AddPlayer("carol")
	assert.ErrorIs(t, err, ErrRoomInProgress)
}

func TestBustEndsTurn(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller(bustRoll), "alice", "bob")

	result, err := g.Roll("alice")
	require.NoError(t, err)
	assert.False(t, result.Scorable)
	require.NotNil(t, result.Bust)
	assert.Equal(t, EndBust, result.Bust.Reason)
	assert.Equal(t, 0, result.Bust.Banked)
	assert.Equal(t, "bob", result.Bust.Next)

	turn := g.Turn()
	assert.Equal(t, "bob", turn.PlayerID)
	assert.Equal(t, PhaseWaitingToRoll, turn.Phase)
	assert.Equal(t, DiceCount, turn.Pool)
	assert.Equal(t, 0, g.Score("alice"))
}

func TestBustForfeitsRunningScore(t *testing.T) {
	roller := dice.NewScriptedRoller([]int{1, 5, 2, 3, 4, 6}, []int{2, 3, 4, 6, 2})
	g := startedGame(t, roller, "alice", "bob")

	_, err := g.Roll("alice")
	require.NoError(t, err)
	hold, err := g.HoldAndContinue("alice", []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 150, hold.RunningScore)
	assert.Equal(t, 4, hold.Remaining)

	result, err := g.Roll("alice")
	require.NoError(t, err)
	assert.Len(t, result.Dice, 4)
	require.NotNil(t, result.Bust)
	assert.Equal(t, 0, g.Score("alice"))
	assert.Equal(t, "bob", g.Turn().PlayerID)
	assert.Equal(t, 0, g.Turn().RunningScore)
}

func TestHoldThreeOnes(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller([]int{1, 1, 1, 2, 3, 4}), "alice", "bob")

	result, err := g.Roll("alice")
	require.NoError(t, err)
	assert.True(t, result.Scorable)
	assert.Equal(t, 1000, result.BestScore)

	hold, err := g.HoldAndContinue("alice", []int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1000, hold.HeldScore)
	assert.Equal(t, 3, hold.Remaining)
	assert.False(t, hold.HotDice)

	turn := g.Turn()
	assert.Equal(t, "alice", turn.PlayerID)
	assert.Equal(t, PhaseWaitingToRoll, turn.Phase)
	assert.Equal(t, 3, turn.Pool)
	assert.Equal(t, []int{1, 1, 1}, turn.Held)
}

func TestHotDice(t *testing.T) {
	roller := dice.NewScriptedRoller([]int{1, 1, 1, 5, 5, 5}, []int{5, 2, 3, 4, 6, 2})
	g := startedGame(t, roller, "alice", "bob")

	_, err := g.Roll("alice")
	require.NoError(t, err)
	hold, err := g.HoldAndContinue("alice", []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.True(t, hold.HotDice)
	assert.Equal(t, 1500, hold.RunningScore)
	assert.Equal(t, DiceCount, hold.Remaining)
	assert.Equal(t, "alice", g.Turn().PlayerID)

	result, err := g.Roll("alice")
	require.NoError(t, err)
	assert.Len(t, result.Dice, DiceCount)
	assert.Nil(t, result.Bust)
}

func TestInvalidSelections(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller([]int{1, 5, 2, 3, 4, 6}), "alice", "bob")
	_, err := g.Roll("alice")
	require.NoError(t, err)
	before := g.Snapshot()

	tests := []struct {
		description string
		indices     []int
	}{
		{"empty", []int{}},
		{"non-scoring die", []int{2}},
		{"scoring die with dead die", []int{0, 2}},
		{"duplicate index", []int{0, 0}},
		{"out of range", []int{6}},
		{"negative", []int{-1}},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			_, err := g.HoldAndContinue("alice", tc.indices)
			assert.ErrorIs(t, err, ErrInvalidSelection)
			assert.Equal(t, before, g.Snapshot())
		})
	}
}

func TestTurnGuards(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller([]int{1, 2, 3, 4, 6, 2}), "alice", "bob")

	_, err := g.Roll("bob")
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = g.HoldAndContinue("alice", []int{0})
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.Bank("alice", nil)
	assert.ErrorIs(t, err, ErrWrongState)

	_, err = g.Roll("alice")
	require.NoError(t, err)
	_, err = g.Roll("alice")
	assert.ErrorIs(t, err, ErrWrongState, "cannot roll twice without holding")
	_, err = g.Bank("bob", nil)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	waiting := NewGame(DefaultRules(), dice.NewScriptedRoller())
	_, err = waiting.Roll("alice")
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestBankThreshold(t *testing.T) {
	roller := dice.NewScriptedRoller(
		[]int{1, 1, 5, 2, 3, 4}, // alice: 250, below the opening threshold
		[]int{1, 1, 1, 2, 3, 4}, // alice: 1000
		bustRoll,                // bob
		[]int{5, 2, 3, 4, 6, 2}, // alice: 50 is enough once opened
	)
	g := startedGame(t, roller, "alice", "bob")

	_, err := g.Roll("alice")
	require.NoError(t, err)
	_, err = g.HoldAndContinue("alice", []int{0, 1, 2})
	require.NoError(t, err)
	before := g.Snapshot()
	_, err = g.Bank("alice", nil)
	assert.ErrorIs(t, err, ErrBelowThreshold)
	assert.Equal(t, before, g.Snapshot())

	_, err = g.Roll("alice")
	require.NoError(t, err)
	bank, err := g.Bank("alice", []int{0, 1, 2})
	require.NoError(t, err)
	require.NotNil(t, bank.Hold)
	assert.Equal(t, 1000, bank.Hold.HeldScore)
	assert.Equal(t, 1250, bank.End.Banked)
	assert.Equal(t, 1250, bank.End.Total)
	assert.Equal(t, "bob", bank.End.Next)

	_, err = g.Roll("bob")
	require.NoError(t, err)

	_, err = g.Roll("alice")
	require.NoError(t, err)
	bank, err = g.Bank("alice", []int{0})
	require.NoError(t, err)
	assert.Equal(t, 1300, bank.End.Total)
}

func TestBankWithoutHoldInRolled(t *testing.T) {
	roller := dice.NewScriptedRoller([]int{1, 1, 1, 2, 3, 4}, []int{5, 2, 3})
	g := startedGame(t, roller, "alice", "bob")

	_, err := g.Roll("alice")
	require.NoError(t, err)
	_, err = g.HoldAndContinue("alice", []int{0, 1, 2})
	require.NoError(t, err)
	_, err = g.Roll("alice")
	require.NoError(t, err)

	bank, err := g.Bank("alice", nil)
	require.NoError(t, err)
	assert.Nil(t, bank.Hold)
	assert.Equal(t, 1000, bank.End.Total, "unheld dice of the last roll score nothing")
}

func TestReachingTargetFinishesGame(t *testing.T) {
	roller := dice.NewScriptedRoller(
		[]int{1, 1, 1, 1, 1, 1}, // 8000, hot dice
		[]int{4, 4, 4, 4, 4, 1}, // 1700, hot dice
		[]int{1, 2, 3, 4, 6, 2}, // 100
		bustRoll,                // bob
		[]int{1, 1, 2, 3, 4, 6}, // 200
	)
	g := startedGame(t, roller, "alice", "bob")

	_, err := g.Roll("alice")
	require.NoError(t, err)
	_, err = g.HoldAndContinue("alice", []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = g.Roll("alice")
	require.NoError(t, err)
	_, err = g.HoldAndContinue("alice", []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = g.Roll("alice")
	require.NoError(t, err)
	bank, err := g.Bank("alice", []int{0})
	require.NoError(t, err)
	assert.Equal(t, 9800, bank.End.Total)
	assert.False(t, bank.Finished)

	_, err = g.Roll("bob")
	require.NoError(t, err)

	_, err = g.Roll("alice")
	require.NoError(t, err)
	bank, err = g.Bank("alice", []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 200, bank.End.Banked)
	assert.Equal(t, 10000, bank.End.Total)
	assert.True(t, bank.Finished)
	assert.Equal(t, "alice", bank.Winner)
	assert.Empty(t, bank.End.Next)
	assert.Equal(t, StatusFinished, g.Status())
	assert.Equal(t, "alice", g.Winner())

	final := g.Snapshot()
	_, err = g.Roll("alice")
	assert.ErrorIs(t, err, ErrGameFinished)
	_, err = g.Roll("bob")
	assert.ErrorIs(t, err, ErrGameFinished)
	_, err = g.HoldAndContinue("alice", []int{0})
	assert.ErrorIs(t, err, ErrGameFinished)
	_, err = g.Bank("alice", nil)
	assert.ErrorIs(t, err, ErrGameFinished)
	assert.Equal(t, final, g.Snapshot())
}

func TestRemovePlayerForfeitsTurn(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller([]int{1, 1, 1, 2, 3, 4}), "alice", "bob", "carol")

	_, err := g.Roll("alice")
	require.NoError(t, err)
	_, err = g.HoldAndContinue("alice", []int{0, 1, 2})
	require.NoError(t, err)

	leave, err := g.RemovePlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, 0, leave.Seat)
	require.NotNil(t, leave.Forfeit)
	assert.Equal(t, EndForfeit, leave.Forfeit.Reason)
	assert.Equal(t, "bob", leave.Forfeit.Next)
	assert.False(t, leave.Finished)
	assert.Equal(t, []string{"bob", "carol"}, g.Seats())
	assert.Equal(t, "bob", g.Turn().PlayerID)
	assert.Equal(t, 0, g.Turn().RunningScore)

	_, err = g.RemovePlayer("alice")
	assert.ErrorIs(t, err, ErrNotSeated)
}

func TestRemoveOtherPlayerKeepsTurn(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller(bustRoll), "alice", "bob", "carol")
	_, err := g.Roll("alice")
	require.NoError(t, err)
	require.Equal(t, "bob", g.Turn().PlayerID)

	leave, err := g.RemovePlayer("alice")
	require.NoError(t, err)
	assert.Nil(t, leave.Forfeit)
	assert.Equal(t, "bob", g.Turn().PlayerID)

	// bob busts; the turn must wrap to carol, not skip her.
	_, err = g.Roll("bob")
	require.NoError(t, err)
	assert.Equal(t, "carol", g.Turn().PlayerID)
}

func TestLastPlayerStandingWins(t *testing.T) {
	g := startedGame(t, dice.NewScriptedRoller(), "alice", "bob")

	leave, err := g.RemovePlayer("bob")
	require.NoError(t, err)
	assert.True(t, leave.Finished)
	assert.Equal(t, "alice", leave.Winner)
	assert.Equal(t, StatusFinished, g.Status())
}

func TestBankedTotalsNeverDecrease(t *testing.T) {
	g := startedGame(t, dice.NewSeededRoller(7), "alice", "bob", "carol")
	last := map[string]int{}
	for step := 0; step < 5000 && g.Status() == StatusInProgress; step++ {
		turn := g.Turn()
		switch turn.Phase {
		case PhaseWaitingToRoll:
			if turn.RunningScore >= 500 {
				if _, err := g.Bank(turn.PlayerID, nil); err == nil {
					break
				}
			}
			_, err := g.Roll(turn.PlayerID)
			require.NoError(t, err)
		case PhaseRolled:
			indices := scoringIndices(turn.Dice)
			require.NotEmpty(t, indices)
			_, err := g.HoldAndContinue(turn.PlayerID, indices)
			require.NoError(t, err)
		}
		for _, p := range g.Seats() {
			assert.GreaterOrEqual(t, g.Score(p), last[p])
			last[p] = g.Score(p)
		}
	}
	assert.Equal(t, StatusFinished, g.Status())
	assert.GreaterOrEqual(t, g.Score(g.Winner()), g.Rules().TargetScore)
}

// scoringIndices selects every die that contributes to the best score.
func scoringIndices(values []int) []int {
	counts := map[int]int{}
	for _, v := range values {
		counts[v]++
	}
	var indices []int
	for i, v := range values {
		if counts[v] >= 3 || v == 1 || v == 5 {
			indices = append(indices, i)
		}
	}
	return indices
}
