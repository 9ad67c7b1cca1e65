package regresslab

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// EvaluationRecord is the per model summary of a single fit. Records are
// value types and never mutated after construction.
type EvaluationRecord struct {
	Name          string  `json:"name"`
	ModelEq       string  `json:"model_eq"`
	Lambda        float64 `json:"lambda"`
	TrainRMSE     float64 `json:"train_rmse"`
	TestRMSE      float64 `json:"test_rmse"`
	SumAbsWeights float64 `json:"sum_abs_weights"`
}

// Comparison is an append-only collection of evaluation records in fit order.
type Comparison struct {
	records []EvaluationRecord
}

// NewComparison returns an empty comparison table.
func NewComparison() *Comparison {
	return &Comparison{}
}

// Add appends a record to the comparison.
func (c *Comparison) Add(rec EvaluationRecord) {
	c.records = append(c.records, rec)
}

// Len returns the number of accumulated records.
func (c *Comparison) Len() int {
	return len(c.records)
}

// Records returns a copy of the accumulated records in fit order.
func (c *Comparison) Records() []EvaluationRecord {
	dst := make([]EvaluationRecord, len(c.records))
	copy(dst, c.records)
	return dst
}

// Record returns the record with the given name.
func (c *Comparison) Record(name string) (EvaluationRecord, bool) {
	for _, rec := range c.records {
		if rec.Name == name {
			return rec, true
		}
	}
	return EvaluationRecord{}, false
}

// TablePrint writes the comparison as an aligned table for side by side
// reading.
func (c *Comparison) TablePrint(w io.Writer) error {
	tbl := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tbl, "Name\tLambda\tTrain RMSE\tTest RMSE\tSum |w|\tModel\t\n")
	for _, rec := range c.records {
		fmt.Fprintf(tbl, "%s\t%.4g\t%.4f\t%.4f\t%.4f\t%s\t\n",
			rec.Name, rec.Lambda, rec.TrainRMSE, rec.TestRMSE, rec.SumAbsWeights, rec.ModelEq)
	}
	return tbl.Flush()
}
