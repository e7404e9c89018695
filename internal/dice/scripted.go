package dice

import "sync"

var bustFiller = []int{2, 3, 4, 6, 2, 3}

// ScriptedRoller replays a fixed list of rolls. Each call to Roll consumes the
// next scripted roll truncated to count. Positions the script does not cover
// are filled from a pattern that never scores, so an exhausted script busts.
// Tests use it to drive the rules engine through exact scenarios.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls [][]int
}

func NewScriptedRoller(rolls ...[]int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Push appends rolls to the end of the script.
func (s *ScriptedRoller) Push(rolls ...[]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolls = append(s.rolls, rolls...)
}

func (s *ScriptedRoller) Roll(count int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]int, count)
	for i := range results {
		results[i] = bustFiller[i%len(bustFiller)]
	}
	if len(s.rolls) == 0 {
		return results
	}
	next := s.rolls[0]
	s.rolls = s.rolls[1:]
	copy(results, next)
	return results
}
