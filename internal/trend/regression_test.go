package trend

import (
	"math"
	"testing"
)

func TestRSquared(t *testing.T) {
	// Perfect line fits exactly.
	if got := rSquared([]float64{1, 2, 3, 4, 5}); math.Abs(got-1) > 1e-9 {
		t.Errorf("rSquared(line) = %v, want 1", got)
	}

	// Flat series has no variance to explain.
	if got := rSquared([]float64{3, 3, 3, 3}); got != 0 {
		t.Errorf("rSquared(flat) = %v, want 0", got)
	}

	// Too short.
	if got := rSquared([]float64{1}); got != 0 {
		t.Errorf("rSquared(single) = %v, want 0", got)
	}

	// Noisy series stays within [0, 1].
	if got := rSquared([]float64{1, 5, 2, 8, 3, 9}); got < 0 || got > 1 {
		t.Errorf("rSquared(noisy) = %v, outside [0, 1]", got)
	}
}

func TestConsistency(t *testing.T) {
	// Monotonic: every consecutive diff pair agrees.
	if got := consistency([]float64{1, 2, 3, 4, 5}); got != 1 {
		t.Errorf("consistency(monotonic) = %v, want 1", got)
	}

	// Alternating: no diff pair agrees.
	if got := consistency([]float64{1, 3, 1, 3, 1}); got != 0 {
		t.Errorf("consistency(alternating) = %v, want 0", got)
	}

	// Short series is neutral.
	if got := consistency([]float64{1, 2}); got != 0.5 {
		t.Errorf("consistency(short) = %v, want 0.5", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := movingAverage([]float64{1, 2, 3, 4}, 3)
	want := []float64{2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Oversized window returns a copy of the input.
	in := []float64{1, 2}
	copied := movingAverage(in, 5)
	if len(copied) != 2 || copied[0] != 1 || copied[1] != 2 {
		t.Errorf("oversized window = %v, want input copy", copied)
	}
	copied[0] = 99
	if in[0] != 1 {
		t.Error("oversized window aliased the input slice")
	}
}

func TestMeanStdDev(t *testing.T) {
	mean, stddev := meanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(stddev-2) > 1e-9 {
		t.Errorf("stddev = %v, want 2", stddev)
	}

	mean, stddev = meanStdDev(nil)
	if mean != 0 || stddev != 0 {
		t.Errorf("meanStdDev(nil) = %v, %v, want 0, 0", mean, stddev)
	}
}
