package stats

import "testing"

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"normal", 10, 4, 2.5},
		{"zero denominator", 10, 0, 0},
		{"zero numerator", 0, 5, 0},
		{"negative denominator", 10, -2, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDiv(tt.num, tt.den); got != tt.want {
				t.Errorf("SafeDiv(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name          string
		current, prev float64
		want          float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"from zero", 10, 0, 100},
		{"both zero", 0, 0, 0},
		{"to zero", 0, 100, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.current, tt.prev); got != tt.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.current, tt.prev, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %v, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %v, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %v, want 10", got)
	}
}

func TestRounding(t *testing.T) {
	if got := Round2(1.005); got != 1.0 && got != 1.01 {
		// Binary representation puts 1.005 slightly below the midpoint.
		t.Errorf("Round2(1.005) = %v", got)
	}
	if got := Round2(2.349); got != 2.35 {
		t.Errorf("Round2(2.349) = %v, want 2.35", got)
	}
	if got := Round4(0.12345); got != 0.1235 && got != 0.1234 {
		t.Errorf("Round4(0.12345) = %v", got)
	}
}

func TestClampNonNeg(t *testing.T) {
	if got := ClampNonNeg(-3.5); got != 0 {
		t.Errorf("ClampNonNeg(-3.5) = %v, want 0", got)
	}
	if got := ClampNonNeg(3.5); got != 3.5 {
		t.Errorf("ClampNonNeg(3.5) = %v, want 3.5", got)
	}
	if got := ClampNonNegInt(-7); got != 0 {
		t.Errorf("ClampNonNegInt(-7) = %v, want 0", got)
	}
	if got := ClampNonNegInt(7); got != 7 {
		t.Errorf("ClampNonNegInt(7) = %v, want 7", got)
	}
}
