package usage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usage.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSnapshots_NativeLayout(t *testing.T) {
	path := writeExport(t, `{
		"snapshots": [
			{"timestamp": "2026-08-19", "total_tokens": 2000, "duration_minutes": 60},
			{"timestamp": "2026-08-18", "total_tokens": 1000, "duration_minutes": 30,
			 "tool_counts": {"Edit": 5, "Read": 10}}
		]
	}`)

	snaps, err := LoadSnapshots(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("len = %d, want 2", len(snaps))
	}

	// Sorted oldest first.
	if snaps[0].Timestamp != "2026-08-18" {
		t.Errorf("snaps[0].Timestamp = %q, want 2026-08-18", snaps[0].Timestamp)
	}
	if snaps[0].ToolCounts["Edit"] != 5 {
		t.Errorf("ToolCounts[Edit] = %d, want 5", snaps[0].ToolCounts["Edit"])
	}
	if snaps[1].TotalTokens != 2000 {
		t.Errorf("snaps[1].TotalTokens = %d, want 2000", snaps[1].TotalTokens)
	}
}

func TestLoadSnapshots_CcusageLayout(t *testing.T) {
	path := writeExport(t, `{
		"daily": [
			{"date": "2026-08-19", "inputTokens": 100, "outputTokens": 200,
			 "totalTokens": 300, "totalCost": 1.5,
			 "modelBreakdowns": [
				{"modelName": "claude-sonnet-4", "inputTokens": 100, "outputTokens": 200, "cost": 1.5}
			 ]}
		]
	}`)

	snaps, err := LoadSnapshots(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("len = %d, want 1", len(snaps))
	}

	s := snaps[0]
	if s.Source != "ccusage" {
		t.Errorf("Source = %q, want ccusage", s.Source)
	}
	if s.TotalTokens != 300 {
		t.Errorf("TotalTokens = %d, want 300", s.TotalTokens)
	}
	if s.ModelTokens["claude-sonnet-4"] != 300 {
		t.Errorf("ModelTokens = %v, want claude-sonnet-4: 300", s.ModelTokens)
	}

	// Cost split 30/70 from the per-model cost.
	if diff := s.InputCostUSD - 0.45; diff > 0.001 || diff < -0.001 {
		t.Errorf("InputCostUSD = %.4f, want 0.45", s.InputCostUSD)
	}
	if diff := s.OutputCostUSD - 1.05; diff > 0.001 || diff < -0.001 {
		t.Errorf("OutputCostUSD = %.4f, want 1.05", s.OutputCostUSD)
	}
}

func TestLoadSnapshots_NativeWins(t *testing.T) {
	path := writeExport(t, `{
		"snapshots": [{"timestamp": "2026-08-19", "total_tokens": 50}],
		"daily": [{"date": "2026-08-18", "totalTokens": 999}]
	}`)

	snaps, err := LoadSnapshots(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].TotalTokens != 50 {
		t.Errorf("got %+v, want only the native snapshot", snaps)
	}
}

func TestLoadSnapshots_Errors(t *testing.T) {
	if _, err := LoadSnapshots(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeExport(t, "{not json")
	if _, err := LoadSnapshots(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestSnapshotTime(t *testing.T) {
	tests := []struct {
		timestamp string
		wantOK    bool
	}{
		{"2026-08-19T14:30:00Z", true},
		{"2026-08-19", true},
		{"", false},
		{"yesterday", false},
	}
	for _, tt := range tests {
		s := &Snapshot{Timestamp: tt.timestamp}
		if _, ok := s.Time(); ok != tt.wantOK {
			t.Errorf("Time(%q) ok = %v, want %v", tt.timestamp, ok, tt.wantOK)
		}
	}

	var nilSnap *Snapshot
	if _, ok := nilSnap.Time(); ok {
		t.Error("nil snapshot should not parse a time")
	}
}

func TestCheckDataSources(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "usage.json")
	if err := os.WriteFile(dataPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := CheckDataSources(dataPath, dir)
	if !a.Primary || !a.Enhanced {
		t.Errorf("got %+v, want both available", a)
	}

	a = CheckDataSources(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing"))
	if a.Primary || a.Enhanced {
		t.Errorf("got %+v, want neither available", a)
	}
}
