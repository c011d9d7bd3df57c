// Package roll provides the randomness and id capabilities consumed at the
// engine boundary. Dice and ids are resolved before an event is submitted
// and captured in the event's fields; systems never touch these sources, so
// replay of a logged event needs no live randomness.
package roll

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// DiceSource yields die results. Roll returns a value in [1, sides].
type DiceSource interface {
	Roll(sides int) int
}

// Dice is parsed dice notation: Count dice of Sides sides plus Bonus.
type Dice struct {
	Count int
	Sides int
	Bonus int
}

// Parse parses notation like "1d8", "2d6+3" or "1d4-1". An omitted count
// ("d20") means one die.
func Parse(notation string) (Dice, error) {
	s := strings.TrimSpace(strings.ToLower(notation))
	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Dice{}, eris.Errorf("invalid dice notation %q", notation)
	}

	bonus := 0
	sidesStr := rest
	if before, after, found := strings.Cut(rest, "+"); found {
		sidesStr = before
		b, err := strconv.Atoi(after)
		if err != nil {
			return Dice{}, eris.Errorf("invalid dice notation %q", notation)
		}
		bonus = b
	} else if before, after, found := strings.Cut(rest, "-"); found {
		sidesStr = before
		b, err := strconv.Atoi(after)
		if err != nil {
			return Dice{}, eris.Errorf("invalid dice notation %q", notation)
		}
		bonus = -b
	}

	count := 1
	if countStr != "" {
		c, err := strconv.Atoi(countStr)
		if err != nil || c < 1 {
			return Dice{}, eris.Errorf("invalid dice notation %q", notation)
		}
		count = c
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 {
		return Dice{}, eris.Errorf("invalid dice notation %q", notation)
	}
	return Dice{Count: count, Sides: sides, Bonus: bonus}, nil
}

// Roll resolves the dice against the source.
func (d Dice) Roll(src DiceSource) int {
	total := d.Bonus
	for i := 0; i < d.Count; i++ {
		total += src.Roll(d.Sides)
	}
	return total
}

// seededSource is the live source: a seeded PRNG, safe for concurrent use.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a DiceSource backed by a PRNG with the given seed.
func NewSeededSource(seed int64) DiceSource {
	return &seededSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // game dice, not crypto
}

func (s *seededSource) Roll(sides int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(sides) + 1
}

// FixedSource replays a predetermined sequence of results, cycling when
// exhausted. Test implementation.
type FixedSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewFixedSource creates a FixedSource yielding the given values in order.
func NewFixedSource(values ...int) *FixedSource {
	if len(values) == 0 {
		values = []int{1}
	}
	return &FixedSource{values: values}
}

func (s *FixedSource) Roll(int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
