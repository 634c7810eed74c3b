// Package datasource holds the collaborator interfaces and reference
// implementations described in spec.md §6: the InputData record the
// core search consumes, and a CSV-backed generator/reader pair. None of
// this package contains algorithmic work — it exists to get job
// durations into the engine and is intentionally kept separate from
// the annealing package itself.
package datasource

import "fmt"

// InputData is the record the core search consumes: a processor count,
// a job count, the duration range job durations were drawn from, and
// the durations themselves.
type InputData struct {
	ProcessorCount int
	JobCount       int
	MinDuration    float64
	MaxDuration    float64
	JobDurations   []float64
}

// Validate checks the structural invariants of an InputData record:
// positive counts, a non-degenerate duration range, a duration slice
// matching JobCount, and every duration within [MinDuration,
// MaxDuration].
func (d InputData) Validate() error {
	if d.ProcessorCount <= 0 {
		return fmt.Errorf("datasource: processor count must be positive, got %d", d.ProcessorCount)
	}
	if d.JobCount <= 0 {
		return fmt.Errorf("datasource: job count must be positive, got %d", d.JobCount)
	}
	if d.MinDuration <= 0 || d.MaxDuration <= d.MinDuration {
		return fmt.Errorf("datasource: invalid duration range [%v,%v]", d.MinDuration, d.MaxDuration)
	}
	if len(d.JobDurations) != d.JobCount {
		return fmt.Errorf("datasource: job durations count %d doesn't match job count %d", len(d.JobDurations), d.JobCount)
	}
	for i, dur := range d.JobDurations {
		if dur < d.MinDuration || dur > d.MaxDuration {
			return fmt.Errorf("datasource: job duration at index %d (%v) out of range [%v,%v]", i, dur, d.MinDuration, d.MaxDuration)
		}
	}
	return nil
}

// Generator synthesizes job duration data.
type Generator interface {
	Generate(jobCount, processorCount int, minDuration, maxDuration float64, outputPath string) error
}

// Reader ingests job duration data.
type Reader interface {
	Read(inputPath string) (InputData, error)
}
