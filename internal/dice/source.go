package dice

import (
	"math/rand"
	"sync"
	"time"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// Source draws a uniform die face in [1, sides].
// Inject a seeded or scripted Source to make evaluation reproducible.
type Source interface {
	Roll(sides int) (int, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(sides int) (int, error)

// Roll implements Source
func (f SourceFunc) Roll(sides int) (int, error) {
	return f(sides)
}

type randSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a Source whose sequence is fully determined by seed.
func NewSeededSource(seed int64) Source {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomSource returns a time seeded Source for production use
func NewRandomSource() Source {
	return NewSeededSource(time.Now().UnixNano())
}

func (s *randSource) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, rerrors.InvalidArgumentf("invalid die size %d", sides)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(sides) + 1, nil
}
