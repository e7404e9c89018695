package farkle

type SeatState struct {
	PlayerID string `json:"playerId"`
	Seat     int    `json:"seatIndex"`
	Score    int    `json:"score"`
}

type TurnState struct {
	PlayerID     string `json:"playerId"`
	Phase        Phase  `json:"phase"`
	Dice         []int  `json:"dice"`
	Held         []int  `json:"held"`
	Remaining    int    `json:"remainingDice"`
	RunningScore int    `json:"runningScore"`
	RollCount    int    `json:"rollCount"`
	CanBank      bool   `json:"canBank"`
}

// State is a full, self-contained view of a game for rendering.
type State struct {
	Status           Status      `json:"status"`
	Seats            []SeatState `json:"seats"`
	Turn             *TurnState  `json:"turn,omitempty"`
	Winner           string      `json:"winnerId,omitempty"`
	TargetScore      int         `json:"targetScore"`
	OpeningThreshold int         `json:"openingThreshold"`
	MaxPlayers       int         `json:"maxPlayers"`
}

func (g *Game) Snapshot() State {
	state := State{
		Status:           g.status,
		Seats:            make([]SeatState, 0, len(g.seats)),
		Winner:           g.winner,
		TargetScore:      g.rules.TargetScore,
		OpeningThreshold: g.rules.OpeningThreshold,
		MaxPlayers:       g.rules.MaxPlayers,
	}
	for i, p := range g.seats {
		state.Seats = append(state.Seats, SeatState{PlayerID: p, Seat: i, Score: g.scores[p]})
	}
	if t := g.Turn(); t != nil {
		state.Turn = &TurnState{
			PlayerID:     t.PlayerID,
			Phase:        t.Phase,
			Dice:         t.Dice,
			Held:         t.Held,
			Remaining:    t.Pool,
			RunningScore: t.RunningScore,
			RollCount:    t.RollCount,
			CanBank:      g.status == StatusInProgress && g.canBank(t),
		}
	}
	return state
}

func (g *Game) canBank(t *Turn) bool {
	switch t.Phase {
	case PhaseRolled:
		return true
	case PhaseWaitingToRoll:
		return t.heldSinceRoll && t.RunningScore >= g.bankMinimum(t.PlayerID)
	}
	return false
}
