package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// export is the on-disk shape of a usage export. Two layouts are accepted:
// a native snapshots list, or a ccusage-style daily report with per-model
// breakdowns.
type export struct {
	Snapshots []*Snapshot  `json:"snapshots"`
	Daily     []dailyEntry `json:"daily"`
}

// dailyEntry is one day of a ccusage-style JSON report.
type dailyEntry struct {
	Date            string           `json:"date"`
	InputTokens     int64            `json:"inputTokens"`
	OutputTokens    int64            `json:"outputTokens"`
	TotalTokens     int64            `json:"totalTokens"`
	TotalCost       float64          `json:"totalCost"`
	ModelBreakdowns []modelBreakdown `json:"modelBreakdowns"`
}

// modelBreakdown is a per-model slice of a daily entry.
type modelBreakdown struct {
	ModelName    string  `json:"modelName"`
	InputTokens  int64   `json:"inputTokens"`
	OutputTokens int64   `json:"outputTokens"`
	Cost         float64 `json:"cost"`
}

// LoadSnapshots reads a usage export file and returns its snapshots ordered
// oldest to newest. Both the native and the ccusage daily layouts are
// supported; when both are present the native list wins.
func LoadSnapshots(path string) ([]*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading usage export: %w", err)
	}

	var ex export
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("parsing usage export %s: %w", path, err)
	}

	snaps := ex.Snapshots
	if len(snaps) == 0 {
		snaps = convertDaily(ex.Daily)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i] == nil || snaps[j] == nil {
			return snaps[j] == nil
		}
		return snaps[i].Timestamp < snaps[j].Timestamp
	})

	return snaps, nil
}

// convertDaily maps ccusage daily entries onto snapshots. Session timing and
// tool counts are not present in that layout, so those fields stay zero.
func convertDaily(daily []dailyEntry) []*Snapshot {
	var snaps []*Snapshot
	for _, d := range daily {
		s := &Snapshot{
			Timestamp:    d.Date,
			InputTokens:  d.InputTokens,
			OutputTokens: d.OutputTokens,
			TotalTokens:  d.TotalTokens,
			TotalCostUSD: d.TotalCost,
			Source:       "ccusage",
		}
		if len(d.ModelBreakdowns) > 0 {
			s.ModelTokens = make(map[string]int64, len(d.ModelBreakdowns))
			for _, mb := range d.ModelBreakdowns {
				s.ModelTokens[mb.ModelName] += mb.InputTokens + mb.OutputTokens
				s.InputCostUSD += mb.Cost * 0.3
				s.OutputCostUSD += mb.Cost * 0.7
			}
		}
		snaps = append(snaps, s)
	}
	return snaps
}

// CheckDataSources probes which providers are available. The analytics core
// passes the result through without interpreting it.
func CheckDataSources(dataPath, claudeHome string) Availability {
	var a Availability
	if info, err := os.Stat(dataPath); err == nil && !info.IsDir() {
		a.Primary = true
	}
	if info, err := os.Stat(claudeHome); err == nil && info.IsDir() {
		a.Enhanced = true
	}
	return a
}
