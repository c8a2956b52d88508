package services

import (
	"bytes"
	"saucedemo-e2e/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func results() []models.CheckResult {
	return []models.CheckResult{
		{RunID: "r1", Case: "names", Mode: models.SortNameDesc, Passed: true, Divergence: -1, Duration: 2 * time.Second},
		{
			RunID:      "r1",
			Case:       "prices",
			Mode:       models.SortPriceDesc,
			Divergence: 2,
			Err:        "out of order at position 2: got 9.99, want 15.99",
			Raw:        []string{"$49.99", "$29.99", "$9.99", "$15.99"},
			Dropped:    []models.Dropped{{Position: 4, Raw: "n/a"}},
			Duration:   3 * time.Second,
		},
	}
}

func TestGenerateReport(t *testing.T) {
	report := GenerateReport(results())

	assert.Equal(t, "r1", report.RunID)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 5*time.Second, report.TotalDuration)
	assert.Equal(t, "prices", report.Slowest.Case)
	assert.Equal(t, map[string]int{"name-desc": 1, "price-desc": 1}, report.ByMode)
	assert.False(t, report.OK())
}

func TestReportOK(t *testing.T) {
	assert.True(t, GenerateReport(results()[:1]).OK())
	assert.False(t, GenerateReport(nil).OK())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, GenerateReport(results()))

	out := buf.String()
	assert.Contains(t, out, "Inventory Sort Verification")
	assert.Contains(t, out, "prices")
	assert.Contains(t, out, "observed: $49.99 | $29.99 | $9.99 | $15.99")
	assert.Contains(t, out, "Slowest: prices (3s)")
}

func TestPrintReportAllPassed(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, GenerateReport(results()[:1]))
	assert.NotContains(t, buf.String(), "Failed Case")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", truncateText("abc", 5))
	assert.Equal(t, "ab...", truncateText("abcdefgh", 5))
	assert.Equal(t, "ab", truncateText("abcdef", 2))
}
