package annealing

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// Mutation is the stochastic neighborhood operator: given a schedule, it
// produces a modified clone without touching its input.
type Mutation interface {
	// Apply returns a fresh schedule derived from s. s is never mutated.
	Apply(s *Schedule) (*Schedule, error)

	// Clone returns an independent copy of the mutation with its own
	// RNG, suitable for handing to a separate worker goroutine.
	Clone() Mutation
}

// seedCounter disambiguates RNG seeds created in the same clock tick,
// e.g. when a Coordinator clones several Mutations back-to-back.
var seedCounter int64

func nextSeed() int64 {
	return time.Now().UnixNano() ^ atomic.AddInt64(&seedCounter, 1)
}

// ScheduleMutation is the default Mutation: on each call it performs
// either a Move or a Swap, chosen by an independent Bernoulli draw with
// configurable weights (default 0.7/0.3).
type ScheduleMutation struct {
	pMove float64
	pSwap float64
	rng   *rand.Rand
}

// NewScheduleMutation returns a ScheduleMutation with the default
// 0.7/0.3 move/swap split and a clock-seeded RNG.
func NewScheduleMutation() *ScheduleMutation {
	return &ScheduleMutation{
		pMove: 0.7,
		pSwap: 0.3,
		rng:   rand.New(rand.NewSource(nextSeed())),
	}
}

// SetMoveProbability sets the probability of a Move operation; the Swap
// probability is normalized to 1-p. p must lie in [0,1].
func (m *ScheduleMutation) SetMoveProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: move probability must be in [0,1], got %v", ErrInvalidArgument, p)
	}
	m.pMove = p
	m.pSwap = 1 - p
	return nil
}

// SetSwapProbability sets the probability of a Swap operation; the Move
// probability is normalized to 1-p. p must lie in [0,1].
func (m *ScheduleMutation) SetSwapProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: swap probability must be in [0,1], got %v", ErrInvalidArgument, p)
	}
	m.pSwap = p
	m.pMove = 1 - p
	return nil
}

// Clone returns an independent ScheduleMutation with the same
// probabilities and a freshly, independently seeded RNG.
func (m *ScheduleMutation) Clone() Mutation {
	return &ScheduleMutation{
		pMove: m.pMove,
		pSwap: m.pSwap,
		rng:   rand.New(rand.NewSource(nextSeed())),
	}
}

// Apply performs a Move (weight pMove) or Swap (weight pSwap) on a clone
// of s. Move fails with ErrInvalidArgument when s has only one
// processor, since there is then no alternative processor to move to.
func (m *ScheduleMutation) Apply(s *Schedule) (*Schedule, error) {
	if m.rng.Float64() < m.pMove {
		return m.applyMove(s)
	}
	return m.applySwap(s)
}

func (m *ScheduleMutation) applyMove(s *Schedule) (*Schedule, error) {
	if s.processorCount < 2 {
		return nil, fmt.Errorf("%w: move requires at least 2 processors, got %d", ErrInvalidArgument, s.processorCount)
	}

	next := s.Clone()
	job := m.rng.Intn(next.jobCount)
	current, err := next.ProcessorOf(job)
	if err != nil {
		return nil, err
	}

	target := m.rng.Intn(next.processorCount - 1)
	if target >= current {
		target++
	}

	if err := next.Assign(job, target); err != nil {
		return nil, err
	}
	return next, nil
}

func (m *ScheduleMutation) applySwap(s *Schedule) (*Schedule, error) {
	nonEmpty := s.NonEmptyProcessors()
	if len(nonEmpty) < 2 {
		return m.applyMove(s)
	}

	next := s.Clone()

	idx1 := m.rng.Intn(len(nonEmpty))
	idx2 := m.rng.Intn(len(nonEmpty) - 1)
	if idx2 >= idx1 {
		idx2++
	}
	p1, p2 := nonEmpty[idx1], nonEmpty[idx2]

	jobs1 := next.JobsOn(p1)
	jobs2 := next.JobsOn(p2)
	job1 := jobs1[m.rng.Intn(len(jobs1))]
	job2 := jobs2[m.rng.Intn(len(jobs2))]

	if err := next.Assign(job1, p2); err != nil {
		return nil, err
	}
	if err := next.Assign(job2, p1); err != nil {
		return nil, err
	}
	return next, nil
}
