package annealing

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type WorkerTestSuite struct {
	suite.Suite
}

func TestWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

func (ts *WorkerTestSuite) newWorker(jobCount, processorCount int) *Worker {
	durations := make([]float64, jobCount)
	for i := range durations {
		durations[i] = float64(1 + i%7)
	}
	initial, err := WorstCaseSolution(jobCount, processorCount, durations)
	ts.Require().NoError(err)

	w := NewWorker()
	w.SetInitialSchedule(initial)
	w.SetMutation(NewScheduleMutation())
	w.SetCoolingLaw(NewBoltzmannCooling())
	w.SetConfig(WorkerConfig{
		InitialTemperature:              500,
		IterationsPerTemperature:        20,
		MaxIterationsWithoutImprovement: 30,
	})
	return w
}

func (ts *WorkerTestSuite) TestRunRequiresInitialization() {
	w := NewWorker()
	_, err := w.Run()
	ts.ErrorIs(err, ErrNotInitialized)
}

func (ts *WorkerTestSuite) TestRunImprovesOrMatchesInitialFitness() {
	w := ts.newWorker(20, 4)
	initialFitness := w.Best().Evaluate()

	best, err := w.Run()
	ts.Require().NoError(err)
	ts.LessOrEqual(best.Evaluate(), initialFitness)
}

func (ts *WorkerTestSuite) TestRunAssignsEveryJob() {
	w := ts.newWorker(15, 3)
	best, err := w.Run()
	ts.Require().NoError(err)

	for i := 0; i < 15; i++ {
		_, err := best.ProcessorOf(i)
		ts.NoError(err)
	}
}

func (ts *WorkerTestSuite) TestDegenerateMaxIterationsWithoutImprovementReturnsImmediately() {
	w := ts.newWorker(10, 2)
	w.SetConfig(WorkerConfig{
		InitialTemperature:              500,
		IterationsPerTemperature:        20,
		MaxIterationsWithoutImprovement: 0,
	})

	best, err := w.Run()
	ts.Require().NoError(err)
	ts.Equal(w.Best().Evaluate(), best.Evaluate())
}

func (ts *WorkerTestSuite) TestStopTerminatesRun() {
	w := ts.newWorker(30, 4)
	w.SetConfig(WorkerConfig{
		InitialTemperature:              1000,
		IterationsPerTemperature:        1000,
		MaxIterationsWithoutImprovement: 1000000,
	})

	done := make(chan struct{})
	go func() {
		_, _ = w.Run()
		close(done)
	}()

	w.Stop()
	<-done
	ts.False(w.IsRunning())
}

func (ts *WorkerTestSuite) TestSetCurrentAdoptsBetterSchedule() {
	w := ts.newWorker(10, 2)
	durations := make([]float64, 10)
	for i := range durations {
		durations[i] = float64(1 + i%7)
	}
	better, err := BalancedSolution(10, 2, durations)
	ts.Require().NoError(err)

	originalFitness := w.BestFitness()
	w.SetCurrent(better)

	if better.Evaluate() < originalFitness {
		ts.Equal(better.Evaluate(), w.BestFitness())
	}
}

func (ts *WorkerTestSuite) TestShouldAcceptAlwaysAcceptsNonPositiveDelta() {
	w := NewWorker()
	ts.True(w.shouldAccept(-1, 10, 0.999))
	ts.True(w.shouldAccept(0, 10, 0.999))
}

func (ts *WorkerTestSuite) TestShouldAcceptRejectsAtZeroTemperature() {
	w := NewWorker()
	ts.False(w.shouldAccept(5, 0, 0.0))
}

func (ts *WorkerTestSuite) TestShouldAcceptIsProbabilistic() {
	w := NewWorker()
	ts.True(w.shouldAccept(1, 100, 0.0))
	ts.False(w.shouldAccept(1000, 1, 0.999999))
}

func (ts *WorkerTestSuite) TestIterationsPersistAcrossBursts() {
	w := ts.newWorker(10, 2)
	_, err := w.RunBurst(1)
	ts.Require().NoError(err)
	first := w.iterations
	ts.Greater(first, 0)

	_, err = w.RunBurst(1)
	ts.Require().NoError(err)
	ts.Greater(w.iterations, first)
}
