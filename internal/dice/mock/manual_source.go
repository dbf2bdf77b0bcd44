package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
)

// ManualSource implements dice.Source with predetermined faces
type ManualSource struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualSource creates a source that returns rolls in order
func NewManualSource(rolls ...int) *ManualSource {
	return &ManualSource{
		rolls: append([]int{}, rolls...),
	}
}

// NewManualRoller wraps a scripted source in a dice.Roller
func NewManualRoller(rolls ...int) (dice.Roller, *ManualSource) {
	src := NewManualSource(rolls...)
	return dice.NewRoller(src), src
}

// SetNextRoll appends a face to the queue
func (m *ManualSource) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue and rewinds it
func (m *ManualSource) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append([]int{}, rolls...)
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// Remaining reports how many scripted faces are unused
func (m *ManualSource) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

// Roll implements dice.Source
func (m *ManualSource) Roll(sides int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	if roll < 1 || roll > sides {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, sides)
	}
	m.rollIndex++
	return roll, nil
}
