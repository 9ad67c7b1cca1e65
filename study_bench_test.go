package regresslab

import (
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

var benchComparison *Comparison

func BenchmarkStudyRun(b *testing.B) {
	opt := NewDefaultOptions()

	var s *Study
	var err error

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		s, err = New(opt)
		if err != nil {
			panic(err)
		}
		if err := s.Run(); err != nil {
			panic(err)
		}
	}

	benchComparison, err = s.Comparison()
	if err != nil {
		panic(err)
	}

	report, err := s.Report()
	if err != nil {
		panic(err)
	}

	bytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile("benchmark_report.json", bytes, 0o644); err != nil {
		panic(err)
	}
}
