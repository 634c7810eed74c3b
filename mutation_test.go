package annealing

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MutationTestSuite struct {
	suite.Suite
}

func TestMutationTestSuite(t *testing.T) {
	suite.Run(t, new(MutationTestSuite))
}

func (ts *MutationTestSuite) TestApplyDoesNotMutateInput() {
	s, err := WorstCaseSolution(10, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	ts.Require().NoError(err)

	before := s.Clone()
	m := NewScheduleMutation()

	_, err = m.Apply(s)
	ts.NoError(err)
	ts.True(s.Equal(before))
}

func (ts *MutationTestSuite) TestApplyPreservesJobCount() {
	s, err := WorstCaseSolution(8, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	ts.Require().NoError(err)

	m := NewScheduleMutation()
	mutated, err := m.Apply(s)
	ts.Require().NoError(err)

	for i := 0; i < 8; i++ {
		_, err := mutated.ProcessorOf(i)
		ts.NoError(err)
	}
}

func (ts *MutationTestSuite) TestMoveFailsOnSingleProcessor() {
	s, err := WorstCaseSolution(5, 1, []float64{1, 2, 3, 4, 5})
	ts.Require().NoError(err)

	m := NewScheduleMutation()
	ts.NoError(m.SetMoveProbability(1.0))

	_, err = m.Apply(s)
	ts.ErrorIs(err, ErrInvalidArgument)
}

func (ts *MutationTestSuite) TestSwapFallsBackToMoveWithOneNonEmptyProcessor() {
	s, err := WorstCaseSolution(5, 3, []float64{1, 2, 3, 4, 5})
	ts.Require().NoError(err)

	m := NewScheduleMutation()
	ts.NoError(m.SetSwapProbability(1.0))

	mutated, err := m.Apply(s)
	ts.NoError(err)
	ts.NotNil(mutated)
}

func (ts *MutationTestSuite) TestSwapExchangesTwoJobs() {
	s, err := NewSchedule(4, 2, []float64{1, 2, 3, 4})
	ts.Require().NoError(err)
	ts.NoError(s.Assign(0, 0))
	ts.NoError(s.Assign(1, 0))
	ts.NoError(s.Assign(2, 1))
	ts.NoError(s.Assign(3, 1))

	m := NewScheduleMutation()
	ts.NoError(m.SetSwapProbability(1.0))

	mutated, err := m.Apply(s)
	ts.Require().NoError(err)

	// total jobs per processor still sums to 4, no job count changed
	count := 0
	changed := 0
	for i := 0; i < 4; i++ {
		p, err := mutated.ProcessorOf(i)
		ts.NoError(err)
		count++
		before, _ := s.ProcessorOf(i)
		if p != before {
			changed++
		}
	}
	ts.Equal(4, count)

	// a swap moves exactly one job each way, keeping two jobs per processor
	ts.Equal(2, changed)
	ts.Len(mutated.JobsOn(0), 2)
	ts.Len(mutated.JobsOn(1), 2)
}

func (ts *MutationTestSuite) TestSetMoveProbabilityValidatesRange() {
	m := NewScheduleMutation()
	ts.ErrorIs(m.SetMoveProbability(-0.1), ErrInvalidArgument)
	ts.ErrorIs(m.SetMoveProbability(1.1), ErrInvalidArgument)
}

func (ts *MutationTestSuite) TestSetSwapProbabilityNormalizesMove() {
	m := NewScheduleMutation()
	ts.NoError(m.SetSwapProbability(0.4))
	ts.Equal(0.6, m.pMove)
}

func (ts *MutationTestSuite) TestMoveFractionMatchesConfiguredSplit() {
	s, err := NewSchedule(6, 2, []float64{1, 2, 3, 4, 5, 6})
	ts.Require().NoError(err)
	ts.NoError(s.Assign(0, 0))
	ts.NoError(s.Assign(1, 0))
	ts.NoError(s.Assign(2, 0))
	ts.NoError(s.Assign(3, 1))
	ts.NoError(s.Assign(4, 1))
	ts.NoError(s.Assign(5, 1))

	m := NewScheduleMutation()

	const trials = 10000
	moves := 0
	for i := 0; i < trials; i++ {
		before := s.Clone()
		mutated, err := m.Apply(s)
		ts.Require().NoError(err)

		// A move changes exactly one job's processor; a swap changes
		// exactly two. Distinguish by counting differing assignments.
		diff := 0
		for j := 0; j < s.JobCount(); j++ {
			bp, _ := before.ProcessorOf(j)
			mp, _ := mutated.ProcessorOf(j)
			if bp != mp {
				diff++
			}
		}
		if diff == 1 {
			moves++
		}
	}

	fraction := float64(moves) / float64(trials)
	ts.GreaterOrEqual(fraction, 0.67)
	ts.LessOrEqual(fraction, 0.73)
}

func (ts *MutationTestSuite) TestCloneHasIndependentRNG() {
	m := NewScheduleMutation()
	clone := m.Clone().(*ScheduleMutation)
	ts.NotSame(m.rng, clone.rng)
}
