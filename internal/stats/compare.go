package stats

// Compare computes the percentage change for each headline metric between
// two periods. The efficiency delta compares tokens-per-hour before and
// after, a cheap throughput proxy that does not need the full scorer.
func Compare(current, previous BasicStats) Comparison {
	return Comparison{
		TimeChange:       PercentChange(current.TotalTimeHours, previous.TotalTimeHours),
		TokenChange:      PercentChange(float64(current.TotalTokens), float64(previous.TotalTokens)),
		CostChange:       PercentChange(current.TotalCostUSD, previous.TotalCostUSD),
		FilesChange:      PercentChange(float64(current.FilesModifiedCount), float64(previous.FilesModifiedCount)),
		SessionChange:    PercentChange(float64(current.SessionCount), float64(previous.SessionCount)),
		EfficiencyChange: PercentChange(tokensPerHour(current), tokensPerHour(previous)),
	}
}

// tokensPerHour is the throughput proxy used for the efficiency delta.
func tokensPerHour(bs BasicStats) float64 {
	return SafeDiv(float64(bs.TotalTokens), bs.TotalTimeHours)
}
