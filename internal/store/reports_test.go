package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleReport(project string) *ReportRow {
	return &ReportRow{
		GeneratedAt:       time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Project:           project,
		Timeframe:         "week",
		SessionCount:      5,
		TotalTokens:       120000,
		TotalCostUSD:      14.5,
		TotalHours:        9.5,
		ProductivityScore: 6.8,
		Rating:            "good",
		TrendRate:         12.5,
		Confidence:        64,
	}
}

func TestSaveAndLatestReport(t *testing.T) {
	db := openTestDB(t)

	id, err := db.SaveReport(sampleReport("alpha"),
		[]string{"insight one", "insight two"},
		[]string{"rec one"})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := db.LatestReport("alpha", "week")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "alpha", got.Project)
	assert.Equal(t, int64(120000), got.TotalTokens)
	assert.Equal(t, 6.8, got.ProductivityScore)
	assert.Equal(t, "good", got.Rating)
	assert.True(t, got.GeneratedAt.Equal(time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)))
}

func TestLatestReport_NoRows(t *testing.T) {
	db := openTestDB(t)

	got, err := db.LatestReport("alpha", "week")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreviousReport(t *testing.T) {
	db := openTestDB(t)

	first := sampleReport("alpha")
	first.TotalTokens = 1000
	_, err := db.SaveReport(first, nil, nil)
	require.NoError(t, err)

	second := sampleReport("alpha")
	second.TotalTokens = 2000
	_, err = db.SaveReport(second, nil, nil)
	require.NoError(t, err)

	prev, err := db.PreviousReport("alpha", "week")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, int64(1000), prev.TotalTokens)

	// Other projects and timeframes do not interleave.
	prev, err = db.PreviousReport("beta", "week")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestListReports(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		_, err := db.SaveReport(sampleReport("alpha"), nil, nil)
		require.NoError(t, err)
	}
	_, err := db.SaveReport(sampleReport("beta"), nil, nil)
	require.NoError(t, err)

	rows, err := db.ListReports("alpha", 10)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	// Empty project matches everything, newest first.
	rows, err = db.ListReports("", 10)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "beta", rows[0].Project)

	rows, err = db.ListReports("", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGetReportInsights(t *testing.T) {
	db := openTestDB(t)

	id, err := db.SaveReport(sampleReport("alpha"),
		[]string{"first insight", "second insight"},
		[]string{"first rec"})
	require.NoError(t, err)

	rows, err := db.GetReportInsights(id)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordered by kind, then position.
	assert.Equal(t, "insight", rows[0].Kind)
	assert.Equal(t, "first insight", rows[0].Text)
	assert.Equal(t, "second insight", rows[1].Text)
	assert.Equal(t, "recommendation", rows[2].Kind)
	assert.Equal(t, "first rec", rows[2].Text)
}

func TestPrune(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 5; i++ {
		r := sampleReport("alpha")
		r.TotalTokens = int64(i)
		_, err := db.SaveReport(r, []string{fmt.Sprintf("insight %d", i)}, nil)
		require.NoError(t, err)
	}
	_, err := db.SaveReport(sampleReport("beta"), nil, nil)
	require.NoError(t, err)

	require.NoError(t, db.Prune(2))

	rows, err := db.ListReports("alpha", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest rows survive.
	assert.Equal(t, int64(4), rows[0].TotalTokens)
	assert.Equal(t, int64(3), rows[1].TotalTokens)

	// Other partitions are untouched.
	rows, err = db.ListReports("beta", 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
