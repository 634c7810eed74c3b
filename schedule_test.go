package annealing

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ScheduleTestSuite struct {
	suite.Suite
}

func TestScheduleTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleTestSuite))
}

func (ts *ScheduleTestSuite) TestNewScheduleValidatesCounts() {
	_, err := NewSchedule(0, 2, []float64{1, 2})
	ts.ErrorIs(err, ErrInvalidArgument)

	_, err = NewSchedule(2, 0, []float64{1, 2})
	ts.ErrorIs(err, ErrInvalidArgument)
}

func (ts *ScheduleTestSuite) TestNewScheduleValidatesDurationLength() {
	_, err := NewSchedule(3, 2, []float64{1, 2})
	ts.ErrorIs(err, ErrInvalidArgument)
}

func (ts *ScheduleTestSuite) TestNewScheduleValidatesPositiveDurations() {
	_, err := NewSchedule(2, 2, []float64{1, -1})
	ts.ErrorIs(err, ErrInvalidArgument)
}

func (ts *ScheduleTestSuite) TestNewScheduleStartsUnassigned() {
	s, err := NewSchedule(3, 2, []float64{1, 2, 3})
	ts.NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.ProcessorOf(i)
		ts.ErrorIs(err, ErrInvariant)
	}
}

func (ts *ScheduleTestSuite) TestAssignAndProcessorOf() {
	s, err := NewSchedule(3, 2, []float64{1, 2, 3})
	ts.Require().NoError(err)

	ts.NoError(s.Assign(0, 1))
	p, err := s.ProcessorOf(0)
	ts.NoError(err)
	ts.Equal(1, p)
}

func (ts *ScheduleTestSuite) TestAssignRejectsOutOfRange() {
	s, err := NewSchedule(3, 2, []float64{1, 2, 3})
	ts.Require().NoError(err)

	ts.ErrorIs(s.Assign(5, 0), ErrOutOfRange)
	ts.ErrorIs(s.Assign(0, 5), ErrOutOfRange)
}

func (ts *ScheduleTestSuite) TestEvaluateExcludesEmptyProcessors() {
	s, err := NewSchedule(3, 3, []float64{1, 2, 3})
	ts.Require().NoError(err)

	ts.NoError(s.Assign(0, 0))
	ts.NoError(s.Assign(1, 0))
	ts.NoError(s.Assign(2, 1))
	// processor 2 stays empty

	// loads: p0=1+2=3, p1=3; largest: p0=2, p1=3
	// f = max(3,3) - min(2,3) = 1
	ts.Equal(1.0, s.Evaluate())
}

func (ts *ScheduleTestSuite) TestEvaluateSingleProcessor() {
	s, err := NewSchedule(2, 1, []float64{1, 2})
	ts.Require().NoError(err)

	ts.NoError(s.Assign(0, 0))
	ts.NoError(s.Assign(1, 0))

	// loads[0] = 3, largest[0] = 2 -> f = 1
	ts.Equal(1.0, s.Evaluate())
}

func (ts *ScheduleTestSuite) TestCloneIsIndependent() {
	s, err := NewSchedule(2, 2, []float64{1, 2})
	ts.Require().NoError(err)
	ts.NoError(s.Assign(0, 0))

	clone := s.Clone()
	ts.NoError(clone.Assign(0, 1))

	p, _ := s.ProcessorOf(0)
	pc, _ := clone.ProcessorOf(0)
	ts.Equal(0, p)
	ts.Equal(1, pc)
}

func (ts *ScheduleTestSuite) TestEqual() {
	s1, err := NewSchedule(2, 2, []float64{1, 2})
	ts.Require().NoError(err)
	s2, err := NewSchedule(2, 2, []float64{1, 2})
	ts.Require().NoError(err)

	ts.NoError(s1.Assign(0, 0))
	ts.NoError(s1.Assign(1, 1))
	ts.NoError(s2.Assign(0, 0))
	ts.NoError(s2.Assign(1, 1))

	ts.True(s1.Equal(s2))

	ts.NoError(s2.Assign(1, 0))
	ts.False(s1.Equal(s2))
}

func (ts *ScheduleTestSuite) TestNonEmptyProcessorsAndJobsOn() {
	s, err := NewSchedule(3, 3, []float64{1, 2, 3})
	ts.Require().NoError(err)

	ts.NoError(s.Assign(0, 0))
	ts.NoError(s.Assign(1, 0))
	ts.NoError(s.Assign(2, 2))

	ts.ElementsMatch([]int{0, 2}, s.NonEmptyProcessors())
	ts.ElementsMatch([]int{0, 1}, s.JobsOn(0))
	ts.Empty(s.JobsOn(1))
	ts.ElementsMatch([]int{2}, s.JobsOn(2))
}
