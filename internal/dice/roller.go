// Package dice rolls six-sided dice for the rules engine.
//
// A Roller is owned by a single room and is only ever called from that room's
// goroutine, so implementations need no locking.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

const Sides = 6

type Roller interface {
	// Roll returns count independent values in [1, Sides].
	Roll(count int) []int
}

type RandomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller seeds a PRNG from crypto/rand.
func NewRandomRoller() (*RandomRoller, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeededRoller(seed), nil
}

// NewSeededRoller is deterministic for a given seed.
func NewSeededRoller(seed int64) *RandomRoller {
	return &RandomRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomRoller) Roll(count int) []int {
	results := make([]int, count)
	for i := range results {
		results[i] = rollDie(r.rng)
	}
	return results
}

func rollDie(rng *rand.Rand) int {
	return rng.Intn(Sides) + 1
}

func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
