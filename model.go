package regresslab

// Report is a serializable snapshot of a completed study holding the options
// that produced it, every evaluation record in fit order, and the variance
// inflation factor of each generated predictor.
type Report struct {
	Options *Options           `json:"options"`
	Records []EvaluationRecord `json:"records"`
	VIF     map[string]float64 `json:"vif"`
}

// Report generates a serializable representation of the study results. The
// study must have been run.
func (s *Study) Report() (Report, error) {
	if s.comparison == nil {
		return Report{}, ErrNotRun
	}
	vif, err := s.VIF()
	if err != nil {
		return Report{}, err
	}
	return Report{
		Options: s.opt,
		Records: s.comparison.Records(),
		VIF:     vif,
	}, nil
}
