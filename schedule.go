package annealing

import (
	"fmt"
	"math"
)

// unassigned marks a job slot that has not yet been given a processor.
const unassigned = -1

// Schedule is the central value object of the search: a total assignment
// of J jobs to P identical processors, plus the job durations needed to
// evaluate it. The duration slice is shared by reference across clones
// since durations never change for the lifetime of a search; the
// assignment vector is always copied.
type Schedule struct {
	jobCount       int
	processorCount int
	durations      []float64 // shared, length jobCount, read-only after construction
	assignment     []int     // length jobCount, assignment[i] is the processor of job i
}

// NewSchedule constructs a Schedule over jobCount jobs and processorCount
// processors. All durations must be strictly positive. The initial
// assignment is unspecified (every job starts unassigned) — callers must
// assign every job before calling Evaluate.
func NewSchedule(jobCount, processorCount int, durations []float64) (*Schedule, error) {
	if jobCount <= 0 {
		return nil, fmt.Errorf("%w: job count must be positive, got %d", ErrInvalidArgument, jobCount)
	}
	if processorCount <= 0 {
		return nil, fmt.Errorf("%w: processor count must be positive, got %d", ErrInvalidArgument, processorCount)
	}
	if len(durations) != jobCount {
		return nil, fmt.Errorf("%w: durations length %d does not match job count %d", ErrInvalidArgument, len(durations), jobCount)
	}
	for i, d := range durations {
		if d <= 0 {
			return nil, fmt.Errorf("%w: duration at index %d must be positive, got %v", ErrInvalidArgument, i, d)
		}
	}

	assignment := make([]int, jobCount)
	for i := range assignment {
		assignment[i] = unassigned
	}

	return &Schedule{
		jobCount:       jobCount,
		processorCount: processorCount,
		durations:      durations,
		assignment:     assignment,
	}, nil
}

// JobCount returns the number of jobs, J.
func (s *Schedule) JobCount() int { return s.jobCount }

// ProcessorCount returns the number of processors, P.
func (s *Schedule) ProcessorCount() int { return s.processorCount }

// Duration returns the duration of job i.
func (s *Schedule) Duration(i int) float64 { return s.durations[i] }

// Assign sets a(i) = p, replacing any prior assignment of job i.
func (s *Schedule) Assign(i, p int) error {
	if i < 0 || i >= s.jobCount {
		return fmt.Errorf("%w: job index %d out of range [0,%d)", ErrOutOfRange, i, s.jobCount)
	}
	if p < 0 || p >= s.processorCount {
		return fmt.Errorf("%w: processor index %d out of range [0,%d)", ErrOutOfRange, p, s.processorCount)
	}
	s.assignment[i] = p
	return nil
}

// ProcessorOf returns a(i), the processor job i is assigned to. It fails
// with ErrInvariant if the job was never assigned.
func (s *Schedule) ProcessorOf(i int) (int, error) {
	if i < 0 || i >= s.jobCount {
		return 0, fmt.Errorf("%w: job index %d out of range [0,%d)", ErrOutOfRange, i, s.jobCount)
	}
	p := s.assignment[i]
	if p == unassigned {
		return 0, fmt.Errorf("%w: job %d has no assigned processor", ErrInvariant, i)
	}
	return p, nil
}

// Clone returns a deep copy of the schedule. The duration slice is
// shared by reference; the assignment vector is copied.
func (s *Schedule) Clone() *Schedule {
	assignment := make([]int, len(s.assignment))
	copy(assignment, s.assignment)
	return &Schedule{
		jobCount:       s.jobCount,
		processorCount: s.processorCount,
		durations:      s.durations,
		assignment:     assignment,
	}
}

// Equal reports whether two schedules have the same assignment. Used by
// tests to verify mutation does not touch its input.
func (s *Schedule) Equal(other *Schedule) bool {
	if other == nil || s.jobCount != other.jobCount || s.processorCount != other.processorCount {
		return false
	}
	for i, p := range s.assignment {
		if other.assignment[i] != p {
			return false
		}
	}
	return true
}

// Evaluate computes the imbalance objective:
//
//	f = max_j L_j - min_j M_j
//
// where L_j is the total load of processor j and M_j is the largest
// duration assigned to processor j. An empty processor contributes to
// neither the max-load term nor the min-largest-job term. Evaluate is
// deterministic and side-effect-free; it recomputes from scratch in
// O(J+P).
func (s *Schedule) Evaluate() float64 {
	loads := make([]float64, s.processorCount)
	largest := make([]float64, s.processorCount)
	nonEmpty := make([]bool, s.processorCount)

	for i, p := range s.assignment {
		if p == unassigned {
			continue
		}
		d := s.durations[i]
		loads[p] += d
		if !nonEmpty[p] || d > largest[p] {
			largest[p] = d
		}
		nonEmpty[p] = true
	}

	maxLoad := math.Inf(-1)
	minLargest := math.Inf(1)
	for p := 0; p < s.processorCount; p++ {
		if !nonEmpty[p] {
			continue
		}
		if loads[p] > maxLoad {
			maxLoad = loads[p]
		}
		if largest[p] < minLargest {
			minLargest = largest[p]
		}
	}

	if math.IsInf(maxLoad, -1) || math.IsInf(minLargest, 1) {
		// Every processor empty: no job has been assigned yet (a fresh
		// NewSchedule). Defensive fallback: zero imbalance.
		return 0
	}

	return maxLoad - minLargest
}

// NonEmptyProcessors returns the distinct processor indices that have at
// least one job assigned, in ascending order.
func (s *Schedule) NonEmptyProcessors() []int {
	seen := make([]bool, s.processorCount)
	for _, p := range s.assignment {
		if p != unassigned {
			seen[p] = true
		}
	}
	var out []int
	for p, ok := range seen {
		if ok {
			out = append(out, p)
		}
	}
	return out
}

// JobsOn returns the job indices assigned to processor p, in ascending
// order.
func (s *Schedule) JobsOn(p int) []int {
	var out []int
	for i, assigned := range s.assignment {
		if assigned == p {
			out = append(out, i)
		}
	}
	return out
}
