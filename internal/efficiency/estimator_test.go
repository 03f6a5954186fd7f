package efficiency

import (
	"math"
	"testing"

	"github.com/blackwell-systems/usagelens/internal/config"
)

// testConfig returns a config with the default tables, bypassing viper.
func testConfig() *config.Config {
	return &config.Config{
		ToolWeights:    config.DefaultToolWeights,
		ToolBaseScores: config.DefaultToolBaseScores,
		EditTools:      config.DefaultEditTools,
		Thresholds:     config.DefaultThresholds,
	}
}

func TestEstimateLines_WorkedExample(t *testing.T) {
	e := NewEstimator(testConfig())

	usage := map[string]int{"Edit": 10, "Read": 5}

	// Raw: 10 * 15 + 5 * 0 = 150.
	raw := e.RawEstimate(usage)
	if raw != 150 {
		t.Errorf("RawEstimate = %.1f, want 150", raw)
	}

	// Factor: diversity 1.05 (2 tools), frequency 1.0 (15 <= 20),
	// edit ratio 0.8 + 0.4*(10/15) = 1.0667 -> 1.12.
	factor := e.CorrectionFactor(usage)
	if math.Abs(factor-1.12) > 0.001 {
		t.Errorf("CorrectionFactor = %.4f, want 1.12", factor)
	}

	// 150 * 1.12 = 168.
	if got := e.EstimateLines(usage); got != 168 {
		t.Errorf("EstimateLines = %d, want 168", got)
	}
}

func TestEstimateLines_Empty(t *testing.T) {
	e := NewEstimator(testConfig())

	if got := e.EstimateLines(nil); got != 0 {
		t.Errorf("EstimateLines(nil) = %d, want 0", got)
	}
	if got := e.EstimateLines(map[string]int{}); got != 0 {
		t.Errorf("EstimateLines(empty) = %d, want 0", got)
	}
	if got := e.EstimateLines(map[string]int{"Read": 50}); got != 0 {
		t.Errorf("EstimateLines(reads only) = %d, want 0", got)
	}
}

func TestEstimateLines_IgnoresNonPositiveCounts(t *testing.T) {
	e := NewEstimator(testConfig())

	with := e.EstimateLines(map[string]int{"Edit": 10})
	withJunk := e.EstimateLines(map[string]int{"Edit": 10, "Write": -5, "Bash": 0})

	if with != withJunk {
		t.Errorf("negative/zero counts changed estimate: %d vs %d", with, withJunk)
	}
}

func TestEstimateLines_UnknownToolWeight(t *testing.T) {
	e := NewEstimator(testConfig())

	// Unknown tools fall back to the mid-range weight of 5.
	raw := e.RawEstimate(map[string]int{"SomeNewTool": 4})
	if raw != 20 {
		t.Errorf("RawEstimate(unknown tool) = %.1f, want 20", raw)
	}
}

func TestCorrectionFactor_Bounds(t *testing.T) {
	e := NewEstimator(testConfig())

	cases := []map[string]int{
		{"Edit": 1},
		{"Edit": 100, "Read": 100},
		{"Read": 500},
		{"Edit": 5, "MultiEdit": 5, "Write": 5, "Bash": 5, "Read": 5, "Grep": 5, "Glob": 5, "Task": 5},
	}
	for _, usage := range cases {
		factor := e.CorrectionFactor(usage)
		if factor < 0.5 || factor > 2.0 {
			t.Errorf("CorrectionFactor(%v) = %.4f, outside [0.5, 2.0]", usage, factor)
		}
	}

	// No invocations means no adjustment.
	if got := e.CorrectionFactor(nil); got != 1 {
		t.Errorf("CorrectionFactor(nil) = %.4f, want 1", got)
	}
}

func TestCorrectionFactor_FrequencyDiscount(t *testing.T) {
	e := NewEstimator(testConfig())

	low := e.CorrectionFactor(map[string]int{"Edit": 20})
	high := e.CorrectionFactor(map[string]int{"Edit": 21})

	// Crossing 20 total invocations applies the 0.9 discount.
	if math.Abs(high/low-0.9) > 0.001 {
		t.Errorf("frequency discount ratio = %.4f, want 0.9", high/low)
	}
}

func TestRawEstimate_Monotonic(t *testing.T) {
	e := NewEstimator(testConfig())

	base := e.RawEstimate(map[string]int{"Edit": 5, "Bash": 10})
	more := e.RawEstimate(map[string]int{"Edit": 6, "Bash": 10})

	if more <= base {
		t.Errorf("raw estimate not monotonic: %0.1f -> %0.1f", base, more)
	}
}
