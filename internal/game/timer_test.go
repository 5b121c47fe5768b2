package game

import "testing"

func TestSpawnTimer(t *testing.T) {
	tests := []struct {
		name     string
		interval float64
		ticks    []float64
		want     []int
	}{
		{"exact interval", 2, []float64{0.5, 0.5, 0.5, 0.5}, []int{0, 0, 0, 1}},
		{"remainder carries", 2, []float64{1.5, 1.5, 1.5}, []int{0, 1, 1}},
		{"several at once", 1, []float64{3.5, 0.5}, []int{3, 1}},
		{"ignores non-positive", 1, []float64{0, -1, 1}, []int{0, 0, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timer := NewSpawnTimer(tc.interval)
			for i, dt := range tc.ticks {
				if got := timer.Tick(dt); got != tc.want[i] {
					t.Errorf("tick %d: %d completions, expected %d", i, got, tc.want[i])
				}
			}
		})
	}
}

func TestSpawnTimerReset(t *testing.T) {
	timer := NewSpawnTimer(2)
	timer.Tick(1.5)
	timer.Reset()
	if timer.Remaining() != 2 {
		t.Errorf("Remaining() = %v after reset, expected 2", timer.Remaining())
	}
	if timer.Tick(1.5) != 0 {
		t.Error("reset timer completed early")
	}

	timer.SetInterval(1)
	if timer.Interval() != 1 || timer.Remaining() != 1 {
		t.Errorf("SetInterval should restart: interval %v remaining %v", timer.Interval(), timer.Remaining())
	}
}

func TestScoreCounter(t *testing.T) {
	s := NewScoreCounter(100)
	for i := 0; i < 3; i++ {
		s.Increment()
	}
	if s.Value() != 300 {
		t.Errorf("Value() = %d, expected 300", s.Value())
	}
	s.Reset()
	if s.Value() != 0 {
		t.Errorf("Value() = %d after reset", s.Value())
	}
	s.SetReward(5)
	s.Increment()
	if s.Value() != 5 {
		t.Errorf("Value() = %d, expected 5", s.Value())
	}
}

func TestSignalStrings(t *testing.T) {
	tests := []struct {
		s    Signal
		want string
	}{
		{ObstacleSpawned{Seq: 2, GapY: 150.5}, "obstacle 2 spawned (gap 150.50)"},
		{ObstaclePassed{Seq: 2}, "obstacle 2 passed"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("String() = %q, expected %q", got, tc.want)
		}
	}
}
