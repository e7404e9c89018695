package farkle

import (
	"fmt"
	"slices"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/anchal00/farkle/internal/dice"
	"github.com/hashicorp/go-set/v3"
)

type Status string

const (
	StatusWaiting    Status = "WAITING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
)

type Phase string

const (
	PhaseWaitingToRoll Phase = "WAITING_TO_ROLL"
	PhaseRolled        Phase = "ROLLED"
	PhaseTurnEnded     Phase = "TURN_ENDED"
)

type EndReason string

const (
	EndBust    EndReason = "bust"
	EndBank    EndReason = "bank"
	EndForfeit EndReason = "forfeit"
)

// Turn is the state of the seat currently playing.
type Turn struct {
	PlayerID     string
	Phase        Phase
	Pool         int
	Dice         []int
	Held         []int
	RunningScore int
	RollCount    int
	// heldSinceRoll allows banking from WAITING_TO_ROLL right after a hold.
	heldSinceRoll bool
}

func newTurn(playerID string) *Turn {
	return &Turn{
		PlayerID: playerID,
		Phase:    PhaseWaitingToRoll,
		Pool:     DiceCount,
	}
}

type TurnEnd struct {
	PlayerID string
	Reason   EndReason
	Banked   int
	Total    int
	// Next is empty when the turn ended the game.
	Next string
}

type RollResult struct {
	PlayerID  string
	Dice      []int
	Scorable  bool
	BestScore int
	// Bust is set when the roll had nothing to score.
	Bust *TurnEnd
}

type HoldResult struct {
	PlayerID     string
	Held         []int
	HeldScore    int
	Remaining    int
	RunningScore int
	HotDice      bool
}

type BankResult struct {
	Hold     *HoldResult
	End      TurnEnd
	Finished bool
	Winner   string
}

type LeaveResult struct {
	Seat     int
	Forfeit  *TurnEnd
	Finished bool
	Winner   string
}

// Game is the turn state machine of one room. It is not safe for concurrent
// use; the owning room serializes every call. Each operation either fully
// applies or returns an error with no state changed.
type Game struct {
	rules   Rules
	roller  dice.Roller
	seats   []string
	scores  map[string]int
	status  Status
	current int
	turn    *Turn
	winner  string
}

func NewGame(rules Rules, roller dice.Roller) *Game {
	return &Game{
		rules:  rules,
		roller: roller,
		seats:  []string{},
		scores: make(map[string]int),
		status: StatusWaiting,
	}
}

func (g *Game) Rules() Rules       { return g.rules }
func (g *Game) Status() Status     { return g.status }
func (g *Game) Winner() string     { return g.winner }
func (g *Game) Seats() []string    { return slices.Clone(g.seats) }
func (g *Game) Score(p string) int { return g.scores[p] }
func (g *Game) Full() bool         { return len(g.seats) >= g.rules.MaxPlayers }

// Turn returns a copy of the active turn, or nil before the game starts.
func (g *Game) Turn() *Turn {
	if g.turn == nil {
		return nil
	}
	t := *g.turn
	t.Dice = slices.Clone(g.turn.Dice)
	t.Held = slices.Clone(g.turn.Held)
	return &t
}

func (g *Game) SeatOf(playerID string) int {
	return slices.Index(g.seats, playerID)
}

// AddPlayer seats a player at the end of the turn order.
func (g *Game) AddPlayer(playerID string) (int, error) {
	if g.status != StatusWaiting {
		return -1, ErrRoomInProgress
	}
	if g.SeatOf(playerID) >= 0 {
		return -1, ErrAlreadySeated
	}
	if g.Full() {
		return -1, ErrRoomFull
	}
	g.seats = append(g.seats, playerID)
	g.scores[playerID] = 0
	return len(g.seats) - 1, nil
}

func (g *Game) Start() error {
	if g.status != StatusWaiting {
		return ErrRoomInProgress
	}
	if len(g.seats) < g.rules.MinPlayers {
		return ErrNotEnoughPlayers
	}
	g.status = StatusInProgress
	g.current = 0
	g.turn = newTurn(g.seats[0])
	return nil
}

func (g *Game) checkActor(playerID string) error {
	switch g.status {
	case StatusFinished:
		return ErrGameFinished
	case StatusWaiting:
		return ErrWrongState
	}
	if g.turn.PlayerID != playerID {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) Roll(playerID string) (RollResult, error) {
	if err := g.checkActor(playerID); err != nil {
		return RollResult{}, err
	}
	t := g.turn
	if t.Phase != PhaseWaitingToRoll {
		return RollResult{}, ErrWrongState
	}
	values := g.roller.Roll(t.Pool)
	if len(values) != t.Pool {
		return RollResult{}, apperrors.Internal(fmt.Sprintf("roller returned %d dice, want %d", len(values), t.Pool), nil)
	}
	for _, v := range values {
		if v < 1 || v > dice.Sides {
			return RollResult{}, apperrors.Internal(fmt.Sprintf("roller returned face %d", v), nil)
		}
	}

	t.Dice = values
	t.RollCount++
	t.heldSinceRoll = false
	result := RollResult{PlayerID: playerID, Dice: slices.Clone(values)}

	best := g.rules.BestScore(values)
	if best == 0 {
		t.RunningScore = 0
		end := g.resolveTurn(EndBust, 0)
		result.Bust = &end
		return result, nil
	}
	t.Phase = PhaseRolled
	result.Scorable = true
	result.BestScore = best
	return result, nil
}

// planHold validates a selection of indices into the current roll without
// touching state.
func (g *Game) planHold(indices []int) ([]int, int, error) {
	t := g.turn
	if len(indices) == 0 || len(indices) > len(t.Dice) {
		return nil, 0, ErrInvalidSelection
	}
	picked := set.New[int](len(indices))
	held := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(t.Dice) || !picked.Insert(i) {
			return nil, 0, ErrInvalidSelection
		}
		held = append(held, t.Dice[i])
	}
	score, ok := g.rules.Score(held)
	if !ok || score <= 0 {
		return nil, 0, ErrInvalidSelection
	}
	return held, score, nil
}

func (g *Game) applyHold(held []int, score int) HoldResult {
	t := g.turn
	t.RunningScore += score
	t.Held = append(t.Held, held...)
	t.Pool -= len(held)
	hot := t.Pool == 0
	if hot {
		t.Pool = DiceCount
		t.Held = nil
	}
	t.Dice = nil
	t.Phase = PhaseWaitingToRoll
	t.heldSinceRoll = true
	return HoldResult{
		PlayerID:     t.PlayerID,
		Held:         slices.Clone(held),
		HeldScore:    score,
		Remaining:    t.Pool,
		RunningScore: t.RunningScore,
		HotDice:      hot,
	}
}

// HoldAndContinue sets aside a scoring selection and returns the turn to
// WAITING_TO_ROLL with the remaining dice, or six fresh dice on hot dice.
func (g *Game) HoldAndContinue(playerID string, indices []int) (HoldResult, error) {
	if err := g.checkActor(playerID); err != nil {
		return HoldResult{}, err
	}
	if g.turn.Phase != PhaseRolled {
		return HoldResult{}, ErrWrongState
	}
	held, score, err := g.planHold(indices)
	if err != nil {
		return HoldResult{}, err
	}
	return g.applyHold(held, score), nil
}

func (g *Game) bankMinimum(playerID string) int {
	if g.scores[playerID] == 0 && g.rules.OpeningThreshold > 1 {
		return g.rules.OpeningThreshold
	}
	return 1
}

// Bank commits the running score. In ROLLED an optional final selection is
// held first; both steps apply together or not at all.
func (g *Game) Bank(playerID string, indices []int) (BankResult, error) {
	if err := g.checkActor(playerID); err != nil {
		return BankResult{}, err
	}
	t := g.turn
	var (
		held  []int
		score int
	)
	switch t.Phase {
	case PhaseRolled:
		if len(indices) > 0 {
			var err error
			if held, score, err = g.planHold(indices); err != nil {
				return BankResult{}, err
			}
		}
	case PhaseWaitingToRoll:
		if !t.heldSinceRoll || len(indices) > 0 {
			return BankResult{}, ErrWrongState
		}
	default:
		return BankResult{}, ErrWrongState
	}
	if t.RunningScore+score < g.bankMinimum(playerID) {
		return BankResult{}, ErrBelowThreshold
	}

	var result BankResult
	if held != nil {
		hold := g.applyHold(held, score)
		result.Hold = &hold
	}
	result.End = g.resolveTurn(EndBank, t.RunningScore)
	result.Finished = g.status == StatusFinished
	result.Winner = g.winner
	return result, nil
}

// resolveTurn folds banked into the acting player's total, then either
// finishes the game or hands the turn to the next seat.
func (g *Game) resolveTurn(reason EndReason, banked int) TurnEnd {
	playerID := g.turn.PlayerID
	g.turn.Phase = PhaseTurnEnded
	if banked > 0 {
		g.scores[playerID] += banked
	}
	end := TurnEnd{
		PlayerID: playerID,
		Reason:   reason,
		Banked:   banked,
		Total:    g.scores[playerID],
	}
	if g.scores[playerID] >= g.rules.TargetScore {
		g.status = StatusFinished
		g.winner = playerID
		return end
	}
	g.current = (g.current + 1) % len(g.seats)
	g.turn = newTurn(g.seats[g.current])
	end.Next = g.turn.PlayerID
	return end
}

// RemovePlayer unseats a player. A player leaving on their own turn forfeits
// its running score; a game left with a single seat is won by that seat.
func (g *Game) RemovePlayer(playerID string) (LeaveResult, error) {
	idx := g.SeatOf(playerID)
	if idx < 0 {
		return LeaveResult{}, ErrNotSeated
	}
	result := LeaveResult{Seat: idx}
	total := g.scores[playerID]
	g.seats = slices.Delete(g.seats, idx, idx+1)
	delete(g.scores, playerID)

	if g.status != StatusInProgress {
		return result, nil
	}
	wasTurn := g.turn.PlayerID == playerID
	if wasTurn {
		g.turn.Phase = PhaseTurnEnded
		result.Forfeit = &TurnEnd{PlayerID: playerID, Reason: EndForfeit, Total: total}
	}
	if len(g.seats) == 0 {
		g.status = StatusFinished
		result.Finished = true
		return result, nil
	}
	if len(g.seats) == 1 {
		g.status = StatusFinished
		g.winner = g.seats[0]
		g.current = 0
		result.Finished = true
		result.Winner = g.winner
		return result, nil
	}
	switch {
	case wasTurn:
		g.current = idx % len(g.seats)
		g.turn = newTurn(g.seats[g.current])
		result.Forfeit.Next = g.turn.PlayerID
	case idx < g.current:
		g.current--
	}
	return result, nil
}
