package app

import (
	"testing"
	"time"

	"github.com/blackwell-systems/usagelens/internal/report"
	"github.com/blackwell-systems/usagelens/internal/usage"
)

func TestBuildRequest_Timeframes(t *testing.T) {
	for _, tf := range []string{"today", "week", "month"} {
		req, err := buildRequest(tf, "", nil, "", "")
		if err != nil {
			t.Errorf("buildRequest(%q) error: %v", tf, err)
		}
		if req.Timeframe != report.Timeframe(tf) {
			t.Errorf("Timeframe = %q, want %q", req.Timeframe, tf)
		}
	}

	if _, err := buildRequest("fortnight", "", nil, "", ""); err == nil {
		t.Error("expected error for unknown timeframe")
	}
}

func TestBuildRequest_Custom(t *testing.T) {
	req, err := buildRequest("custom", "", nil, "2026-08-01", "2026-08-15")
	if err != nil {
		t.Fatal(err)
	}
	if req.From.Format("2006-01-02") != "2026-08-01" {
		t.Errorf("From = %v", req.From)
	}

	// The end date is inclusive: To extends to the end of that day.
	if req.To.Before(time.Date(2026, 8, 15, 23, 0, 0, 0, time.UTC)) {
		t.Errorf("To = %v, want end of 2026-08-15", req.To)
	}

	if _, err := buildRequest("custom", "", nil, "", ""); err == nil {
		t.Error("expected error for custom timeframe without dates")
	}
	if _, err := buildRequest("custom", "", nil, "2026-08-15", "2026-08-01"); err == nil {
		t.Error("expected error for reversed date range")
	}
}

func TestBuildRequest_Types(t *testing.T) {
	req, err := buildRequest("week", "", []string{"basic", "TRENDS"}, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(req.Types) != 2 || req.Types[0] != report.AnalysisBasic || req.Types[1] != report.AnalysisTrends {
		t.Errorf("Types = %v", req.Types)
	}

	if _, err := buildRequest("week", "", []string{"vibes"}, "", ""); err == nil {
		t.Error("expected error for unknown analysis type")
	}
}

func TestFilterProject(t *testing.T) {
	snaps := []*usage.Snapshot{
		{Project: "alpha"},
		{Project: "beta"},
		nil,
		{Project: "alpha"},
	}

	if got := filterProject(snaps, ""); len(got) != 4 {
		t.Errorf("empty filter kept %d, want all 4", len(got))
	}
	got := filterProject(snaps, "alpha")
	if len(got) != 2 {
		t.Errorf("alpha filter kept %d, want 2", len(got))
	}
}

func TestFormatTokenCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{2_400_000, "2.4M"},
	}
	for _, tt := range tests {
		if got := formatTokenCount(tt.in); got != tt.want {
			t.Errorf("formatTokenCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
