package farkle

import "github.com/anchal00/farkle/internal/dice"

const DiceCount = 6

// Rules holds the numeric policy of a game. Every value is configurable; the
// defaults follow the common Farkle table.
type Rules struct {
	TargetScore      int
	OpeningThreshold int
	MinPlayers       int
	MaxPlayers       int
	// StraightScore is awarded for a 1-2-3-4-5-6 selection. Zero disables
	// straights.
	StraightScore int
}

func DefaultRules() Rules {
	return Rules{
		TargetScore:      10000,
		OpeningThreshold: 300,
		MinPlayers:       2,
		MaxPlayers:       6,
	}
}

func tripleValue(face int) int {
	if face == 1 {
		return 1000
	}
	return face * 100
}

// setValue scores count (>= 3) matching faces: the triple value, doubled for
// every die beyond the third.
func setValue(face, count int) int {
	return tripleValue(face) << (count - 3)
}

func countFaces(values []int) ([dice.Sides + 1]int, bool) {
	var counts [dice.Sides + 1]int
	for _, v := range values {
		if v < 1 || v > dice.Sides {
			return counts, false
		}
		counts[v]++
	}
	return counts, true
}

func (r Rules) isStraight(counts [dice.Sides + 1]int, n int) bool {
	if r.StraightScore <= 0 || n != DiceCount {
		return false
	}
	for face := 1; face <= dice.Sides; face++ {
		if counts[face] != 1 {
			return false
		}
	}
	return true
}

// Score scores a held selection. ok is false unless every die in values is
// part of a scoring combination and the total is positive.
func (r Rules) Score(values []int) (score int, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	counts, valid := countFaces(values)
	if !valid {
		return 0, false
	}
	if r.isStraight(counts, len(values)) {
		return r.StraightScore, true
	}
	for face := 1; face <= dice.Sides; face++ {
		c := counts[face]
		switch {
		case c == 0:
		case c >= 3:
			score += setValue(face, c)
		case face == 1:
			score += 100 * c
		case face == 5:
			score += 50 * c
		default:
			return 0, false
		}
	}
	return score, score > 0
}

// BestScore is the most a player could claim from a roll by holding every
// scoring die. Zero means the roll is a bust.
func (r Rules) BestScore(values []int) int {
	counts, valid := countFaces(values)
	if !valid {
		return 0
	}
	if r.isStraight(counts, len(values)) {
		return r.StraightScore
	}
	score := 0
	for face := 1; face <= dice.Sides; face++ {
		c := counts[face]
		switch {
		case c >= 3:
			score += setValue(face, c)
		case face == 1:
			score += 100 * c
		case face == 5:
			score += 50 * c
		}
	}
	return score
}

func (r Rules) Scorable(values []int) bool {
	return r.BestScore(values) > 0
}
