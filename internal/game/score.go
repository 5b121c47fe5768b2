package game

// ScoreCounter accumulates a fixed reward per passed obstacle.
type ScoreCounter struct {
	value  uint64
	reward uint64
}

// NewScoreCounter creates a zeroed counter.
func NewScoreCounter(reward uint64) *ScoreCounter {
	return &ScoreCounter{reward: reward}
}

// Increment adds one reward.
func (s *ScoreCounter) Increment() {
	s.value += s.reward
}

// Reset zeroes the counter.
func (s *ScoreCounter) Reset() {
	s.value = 0
}

// Value returns the current score.
func (s *ScoreCounter) Value() uint64 {
	return s.value
}

// SetReward changes the amount added per increment.
func (s *ScoreCounter) SetReward(r uint64) {
	s.reward = r
}
