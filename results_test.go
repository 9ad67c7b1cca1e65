package regresslab

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparison(t *testing.T) {
	c := NewComparison()
	assert.Equal(t, 0, c.Len())

	recs := []EvaluationRecord{
		{Name: "ols_1", ModelEq: "y ~ 1.00-3.00*x1", TrainRMSE: 1.1, TestRMSE: 1.2, SumAbsWeights: 3.0},
		{Name: "ridge", Lambda: 1.0, TrainRMSE: 1.0, TestRMSE: 1.1, SumAbsWeights: 2.5},
	}
	for _, rec := range recs {
		c.Add(rec)
	}
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, recs, c.Records())

	// Records returns a copy detached from the comparison
	got := c.Records()
	got[0].Name = "mutated"
	fresh, exists := c.Record("ols_1")
	require.True(t, exists)
	assert.Equal(t, "ols_1", fresh.Name)

	_, exists = c.Record("nope")
	assert.False(t, exists)
}

func TestComparisonTablePrint(t *testing.T) {
	c := NewComparison()
	c.Add(EvaluationRecord{
		Name:          "ols_2",
		ModelEq:       "y ~ 1.00-3.00*x1+0.10*x2",
		TrainRMSE:     0.9876,
		TestRMSE:      1.2345,
		SumAbsWeights: 3.1,
	})

	var buf bytes.Buffer
	require.Nil(t, c.TablePrint(&buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, "Name"))
	assert.True(t, strings.Contains(out, "Test RMSE"))
	assert.True(t, strings.Contains(out, "ols_2"))
	assert.True(t, strings.Contains(out, "1.2345"))
}

func TestReportRoundTrip(t *testing.T) {
	study, err := New(nil)
	require.Nil(t, err)

	_, err = study.Report()
	assert.ErrorIs(t, err, ErrNotRun)

	require.Nil(t, study.Run())

	report, err := study.Report()
	require.Nil(t, err)

	raw, err := json.Marshal(report)
	require.Nil(t, err)

	var decoded Report
	require.Nil(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, report, decoded)
}
