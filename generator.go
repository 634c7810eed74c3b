package annealing

import (
	"fmt"
	"math/rand"
	"sort"
)

// RandomSolution builds a Schedule over jobCount jobs and processorCount
// processors with each job assigned to a uniformly random processor.
func RandomSolution(jobCount, processorCount int, durations []float64) (*Schedule, error) {
	s, err := NewSchedule(jobCount, processorCount, durations)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(nextSeed()))
	for i := 0; i < jobCount; i++ {
		if err := s.Assign(i, rng.Intn(processorCount)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WorstCaseSolution builds a Schedule with every job assigned to
// processor 0. It is a deliberately bad starting point used to make
// improvements easy to measure.
func WorstCaseSolution(jobCount, processorCount int, durations []float64) (*Schedule, error) {
	s, err := NewSchedule(jobCount, processorCount, durations)
	if err != nil {
		return nil, err
	}
	for i := 0; i < jobCount; i++ {
		if err := s.Assign(i, 0); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// BalancedSolution builds a Schedule using the LPT (longest processing
// time first) heuristic: jobs are sorted by duration descending and each
// is assigned, in turn, to the currently least-loaded processor.
func BalancedSolution(jobCount, processorCount int, durations []float64) (*Schedule, error) {
	s, err := NewSchedule(jobCount, processorCount, durations)
	if err != nil {
		return nil, err
	}

	order := make([]int, jobCount)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return durations[order[a]] > durations[order[b]]
	})

	loads := make([]float64, processorCount)
	for _, job := range order {
		least := 0
		for p := 1; p < processorCount; p++ {
			if loads[p] < loads[least] {
				least = p
			}
		}
		if err := s.Assign(job, least); err != nil {
			return nil, fmt.Errorf("balanced solution: %w", err)
		}
		loads[least] += durations[job]
	}
	return s, nil
}
