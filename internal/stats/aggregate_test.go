package stats

import (
	"testing"

	"github.com/blackwell-systems/usagelens/internal/usage"
)

func TestFromSnapshot_Nil(t *testing.T) {
	bs := FromSnapshot(nil)

	if bs.SessionCount != 0 {
		t.Errorf("SessionCount = %d, want 0", bs.SessionCount)
	}
	if bs.TotalTokens != 0 {
		t.Errorf("TotalTokens = %d, want 0", bs.TotalTokens)
	}
	if bs.ToolUsage == nil || bs.ModelUsage == nil {
		t.Error("maps should be initialized, not nil")
	}
}

func TestFromSnapshot_DerivesTotals(t *testing.T) {
	s := &usage.Snapshot{
		Timestamp:       "2026-08-01",
		InputTokens:     1000,
		OutputTokens:    500,
		InputCostUSD:    0.30,
		OutputCostUSD:   0.70,
		DurationMinutes: 90,
		ToolCounts:      map[string]int{"Edit": 3, "Read": 7},
		FilesModified:   []string{"a.go", "b.go"},
	}

	bs := FromSnapshot(s)

	// Total fields unset, so totals derive from input + output.
	if bs.TotalTokens != 1500 {
		t.Errorf("TotalTokens = %d, want 1500", bs.TotalTokens)
	}
	if bs.TotalCostUSD != 1.0 {
		t.Errorf("TotalCostUSD = %.4f, want 1.0", bs.TotalCostUSD)
	}

	// 90 minutes = 5400 seconds = 1.5 hours.
	if bs.TotalTimeSeconds != 5400 {
		t.Errorf("TotalTimeSeconds = %.0f, want 5400", bs.TotalTimeSeconds)
	}
	if bs.TotalTimeHours != 1.5 {
		t.Errorf("TotalTimeHours = %.2f, want 1.5", bs.TotalTimeHours)
	}

	// Zero session count is treated as one.
	if bs.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1", bs.SessionCount)
	}
	if bs.FilesModifiedCount != 2 {
		t.Errorf("FilesModifiedCount = %d, want 2", bs.FilesModifiedCount)
	}
}

func TestFromSnapshot_ExplicitTotalsWin(t *testing.T) {
	s := &usage.Snapshot{
		InputTokens:  100,
		OutputTokens: 100,
		TotalTokens:  5000,
		TotalCostUSD: 2.5,
	}

	bs := FromSnapshot(s)

	if bs.TotalTokens != 5000 {
		t.Errorf("TotalTokens = %d, want 5000", bs.TotalTokens)
	}
	if bs.TotalCostUSD != 2.5 {
		t.Errorf("TotalCostUSD = %.4f, want 2.5", bs.TotalCostUSD)
	}
}

func TestFromSnapshot_ClampsNegatives(t *testing.T) {
	s := &usage.Snapshot{
		TotalTokens:     -100,
		TotalCostUSD:    -5,
		DurationMinutes: -30,
		ToolCounts:      map[string]int{"Edit": -2},
	}

	bs := FromSnapshot(s)

	if bs.TotalTokens != 0 {
		t.Errorf("TotalTokens = %d, want 0", bs.TotalTokens)
	}
	if bs.TotalCostUSD != 0 {
		t.Errorf("TotalCostUSD = %.4f, want 0", bs.TotalCostUSD)
	}
	if bs.TotalTimeSeconds != 0 {
		t.Errorf("TotalTimeSeconds = %.0f, want 0", bs.TotalTimeSeconds)
	}
	if bs.ToolUsage["Edit"] != 0 {
		t.Errorf("ToolUsage[Edit] = %d, want 0", bs.ToolUsage["Edit"])
	}
}

func TestFromSnapshots_SessionDedup(t *testing.T) {
	snaps := []*usage.Snapshot{
		{Timestamp: "2026-08-01", Project: "alpha", DurationMinutes: 60},
		{Timestamp: "2026-08-01", Project: "alpha", DurationMinutes: 30},
		{Timestamp: "2026-08-01", Project: "beta", DurationMinutes: 30},
		{Timestamp: "2026-08-02", Project: "alpha", DurationMinutes: 60},
		nil,
	}

	bs := FromSnapshots(snaps)

	// Three distinct (timestamp, project) pairs.
	if bs.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", bs.SessionCount)
	}

	// Durations still sum across all four valid snapshots: 180 minutes.
	if bs.TotalTimeHours != 3.0 {
		t.Errorf("TotalTimeHours = %.2f, want 3.0", bs.TotalTimeHours)
	}
}

func TestFromSnapshots_Empty(t *testing.T) {
	for _, snaps := range [][]*usage.Snapshot{nil, {}, {nil, nil}} {
		bs := FromSnapshots(snaps)
		if bs.SessionCount != 0 {
			t.Errorf("SessionCount = %d, want 0 for empty input", bs.SessionCount)
		}
		if bs.TotalTokens != 0 {
			t.Errorf("TotalTokens = %d, want 0 for empty input", bs.TotalTokens)
		}
	}
}

func TestFromSnapshots_FileUnion(t *testing.T) {
	snaps := []*usage.Snapshot{
		{Timestamp: "2026-08-01", FilesModified: []string{"a.go", "b.go"}},
		{Timestamp: "2026-08-02", FilesModified: []string{"b.go", "c.go"}},
	}

	bs := FromSnapshots(snaps)

	if bs.FilesModifiedCount != 3 {
		t.Errorf("FilesModifiedCount = %d, want 3", bs.FilesModifiedCount)
	}
}

func TestMerge_SumsAndUnions(t *testing.T) {
	a := Zero()
	a.SessionCount = 2
	a.TotalTimeSeconds = 3600
	a.TotalTokens = 1000
	a.TotalCostUSD = 1.5
	a.ToolUsage["Edit"] = 5
	a.FilesModified = []string{"a.go"}
	a.FilesModifiedCount = 1

	b := Zero()
	b.SessionCount = 1
	b.TotalTimeSeconds = 1800
	b.TotalTokens = 500
	b.TotalCostUSD = 0.5
	b.ToolUsage["Edit"] = 3
	b.ToolUsage["Read"] = 4
	b.FilesModified = []string{"a.go", "b.go"}
	b.FilesModifiedCount = 2

	out := Merge([]BasicStats{a, b})

	if out.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", out.SessionCount)
	}
	// Hours recomputed from summed seconds: 5400 / 3600 = 1.5.
	if out.TotalTimeHours != 1.5 {
		t.Errorf("TotalTimeHours = %.2f, want 1.5", out.TotalTimeHours)
	}
	if out.TotalTokens != 1500 {
		t.Errorf("TotalTokens = %d, want 1500", out.TotalTokens)
	}
	if out.ToolUsage["Edit"] != 8 {
		t.Errorf("ToolUsage[Edit] = %d, want 8", out.ToolUsage["Edit"])
	}
	if out.FilesModifiedCount != 2 {
		t.Errorf("FilesModifiedCount = %d, want 2", out.FilesModifiedCount)
	}
}

func TestMerge_Identity(t *testing.T) {
	a := Zero()
	a.SessionCount = 2
	a.TotalTimeSeconds = 7200
	a.TotalTimeHours = 2.0
	a.TotalTokens = 4000

	out := Merge([]BasicStats{a})

	if out.SessionCount != a.SessionCount || out.TotalTokens != a.TotalTokens ||
		out.TotalTimeHours != a.TotalTimeHours {
		t.Errorf("single-record merge changed values: got %+v", out)
	}

	empty := Merge(nil)
	if empty.SessionCount != 0 || empty.TotalTokens != 0 {
		t.Errorf("empty merge should be zero, got %+v", empty)
	}
}
