package annealing

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
)

// Logger is the minimal sink the Worker and Coordinator use for
// observability. It never influences algorithmic behavior — a nil
// Logger (or one that embeds a disabled sink) is always safe to pass.
type Logger interface {
	Log(message string)
}

// WorkerConfig groups the tunables of a Sequential SA Worker. Zero value
// is not usable directly; use DefaultWorkerConfig for sane defaults.
type WorkerConfig struct {
	InitialTemperature              float64
	IterationsPerTemperature        int // K_in, inner loop budget per outer cycle
	MaxIterationsWithoutImprovement int // N_ni, outer-loop termination budget
}

// DefaultWorkerConfig returns the reference parameters used throughout
// spec.md's end-to-end scenarios.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		InitialTemperature:              1000,
		IterationsPerTemperature:        50,
		MaxIterationsWithoutImprovement: 100,
	}
}

// Worker is the sequential simulated-annealing worker: it runs the
// Metropolis loop over a single schedule, tracking a current and a best
// solution, under a temperature-driven acceptance rule.
type Worker struct {
	mu          sync.Mutex // guards current, best, bestFitness
	current     *Schedule
	best        *Schedule
	bestFitness float64

	mutation   Mutation
	cooling    CoolingLaw
	config     WorkerConfig
	logger     Logger
	rng        *rand.Rand
	iterations int // cumulative outer*inner iteration count k, persists across RunBurst calls

	running  atomic.Bool
	stopFlag atomic.Bool

	pauseMu sync.Mutex
	paused  bool
	pauseCV *sync.Cond
}

// NewWorker returns an unconfigured Worker. Callers must call
// SetInitialSchedule, SetMutation and SetCoolingLaw before Run.
func NewWorker() *Worker {
	w := &Worker{
		config: DefaultWorkerConfig(),
		rng:    rand.New(rand.NewSource(nextSeed())),
	}
	w.pauseCV = sync.NewCond(&w.pauseMu)
	return w
}

// SetInitialSchedule installs the starting current/best schedule. The
// schedule is cloned; the caller's copy is never retained.
func (w *Worker) SetInitialSchedule(s *Schedule) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = s.Clone()
	w.best = s.Clone()
	w.bestFitness = w.best.Evaluate()
}

// SetMutation installs the neighborhood operator.
func (w *Worker) SetMutation(m Mutation) { w.mutation = m }

// SetCoolingLaw installs the temperature schedule and initializes it
// with the worker's configured initial temperature.
func (w *Worker) SetCoolingLaw(c CoolingLaw) {
	w.cooling = c
	w.cooling.Initialize(w.config.InitialTemperature)
}

// SetConfig replaces the worker's tunables. If a cooling law is already
// installed, it is re-initialized with the new InitialTemperature.
func (w *Worker) SetConfig(cfg WorkerConfig) {
	w.config = cfg
	if w.cooling != nil {
		w.cooling.Initialize(cfg.InitialTemperature)
	}
}

// SetLogger installs the observability sink. A nil Logger disables
// logging.
func (w *Worker) SetLogger(l Logger) { w.logger = l }

func (w *Worker) log(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Log(fmt.Sprintf(format, args...))
}

// SetCurrent injects a new current schedule from outside (used by the
// Coordinator to broadcast the global best). If the injected schedule's
// fitness is strictly better than the worker's local best, the local
// best is replaced. Both are deep-cloned; the caller's copy is
// unaffected.
func (w *Worker) SetCurrent(s *Schedule) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = s.Clone()
	fitness := s.Evaluate()
	if w.best == nil || fitness < w.bestFitness {
		w.best = s.Clone()
		w.bestFitness = fitness
	}
}

// Current returns a clone of the worker's current schedule.
func (w *Worker) Current() *Schedule {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return nil
	}
	return w.current.Clone()
}

// Best returns a clone of the worker's best schedule found so far.
func (w *Worker) Best() *Schedule {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.best == nil {
		return nil
	}
	return w.best.Clone()
}

// BestFitness returns the objective value of the worker's best schedule.
func (w *Worker) BestFitness() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bestFitness
}

// IsRunning reports whether Run is currently executing its loop.
func (w *Worker) IsRunning() bool { return w.running.Load() }

// Stop sets the stop flag; the worker observes it within one inner
// iteration and Run returns the best schedule found so far.
func (w *Worker) Stop() {
	w.stopFlag.Store(true)
	w.pauseMu.Lock()
	w.paused = false
	w.pauseMu.Unlock()
	w.pauseCV.Broadcast()
}

// Pause suspends the worker at its next suspension point. Pause/Resume
// are not part of the minimal search contract but are preserved from
// the reference implementation; Run's observable termination behavior
// is unaffected when they are never called.
func (w *Worker) Pause() {
	w.pauseMu.Lock()
	w.paused = true
	w.pauseMu.Unlock()
}

// Resume releases a paused worker.
func (w *Worker) Resume() {
	w.pauseMu.Lock()
	w.paused = false
	w.pauseMu.Unlock()
	w.pauseCV.Broadcast()
}

func (w *Worker) waitIfPaused() {
	w.pauseMu.Lock()
	defer w.pauseMu.Unlock()
	for w.paused && !w.stopFlag.Load() {
		w.pauseCV.Wait()
	}
}

// shouldAccept implements the Metropolis criterion: delta<=0 always
// accepts; delta>0 accepts with probability exp(-delta/T), rejecting
// outright (no exp evaluation) when T is exactly zero.
func (w *Worker) shouldAccept(delta, temperature float64, draw float64) bool {
	if delta <= 0 {
		return true
	}
	if temperature <= 0 {
		return false
	}
	probability := math.Exp(-delta / temperature)
	return draw < probability
}

// Run executes the Metropolis outer loop synchronously and blocks until
// termination: the no-improvement budget is exhausted, the temperature
// drops below TemperatureFloor, or Stop is called. It returns the best
// schedule found. Run fails with ErrNotInitialized if the schedule,
// mutation or cooling law were never set, and surfaces any error the
// mutation raises (e.g. ErrInvalidArgument from Move on a single
// processor). A Stop-triggered return does not raise an error — it
// returns the best schedule found so far — but the reason is recorded
// by logging ErrCancelled.
func (w *Worker) Run() (*Schedule, error) {
	return w.runLoop(0)
}

// RunBurst runs the same outer loop as Run but returns early after
// maxOuterCycles outer-loop iterations even if neither the
// no-improvement budget nor the temperature floor was reached. It is
// how the Coordinator drives a worker in cycles of ExchangeInterval
// outer iterations between rendezvous (spec.md §4.5); called directly,
// with maxOuterCycles <= 0, it is identical to Run.
func (w *Worker) RunBurst(maxOuterCycles int) (*Schedule, error) {
	return w.runLoop(maxOuterCycles)
}

func (w *Worker) runLoop(maxOuterCycles int) (*Schedule, error) {
	w.mu.Lock()
	current := w.current
	w.mu.Unlock()

	if current == nil || w.mutation == nil || w.cooling == nil {
		return nil, fmt.Errorf("%w: worker requires a schedule, mutation and cooling law before Run", ErrNotInitialized)
	}

	w.running.Store(true)
	defer w.running.Store(false)

	w.mu.Lock()
	w.best = w.current.Clone()
	w.bestFitness = w.best.Evaluate()
	best := w.best
	bestFitness := w.bestFitness
	w.mu.Unlock()

	noImprove := 0
	outerCycles := 0

	if w.config.MaxIterationsWithoutImprovement <= 0 {
		w.log("worker: max-iterations-without-improvement is 0, returning initial best immediately")
		return best.Clone(), nil
	}

	for noImprove < w.config.MaxIterationsWithoutImprovement && !w.stopFlag.Load() {
		if maxOuterCycles > 0 && outerCycles >= maxOuterCycles {
			break
		}

		w.waitIfPaused()
		if w.stopFlag.Load() {
			break
		}

		improved := false

		// T is held fixed across the whole inner loop; it is only ever
		// updated once per outer cycle, below.
		w.mu.Lock()
		temperature := w.cooling.Cool(w.iterations)
		w.mu.Unlock()

		for i := 0; i < w.config.IterationsPerTemperature && !w.stopFlag.Load(); i++ {
			w.waitIfPaused()
			if w.stopFlag.Load() {
				break
			}

			w.mu.Lock()
			currentSnapshot := w.current
			w.mu.Unlock()

			candidate, err := w.mutation.Apply(currentSnapshot)
			if err != nil {
				return nil, fmt.Errorf("worker: mutation failed: %w", err)
			}

			currentFitness := currentSnapshot.Evaluate()
			candidateFitness := candidate.Evaluate()
			delta := candidateFitness - currentFitness

			if w.shouldAccept(delta, temperature, w.rng.Float64()) {
				w.mu.Lock()
				w.current = candidate
				if candidateFitness < w.bestFitness {
					w.best = candidate.Clone()
					w.bestFitness = candidateFitness
					bestFitness = candidateFitness
					improved = true
				}
				w.mu.Unlock()
			}

			w.iterations++
		}

		if improved {
			noImprove = 0
		} else {
			noImprove++
		}

		outerCycles++

		temperature = w.cooling.Cool(w.iterations)
		if temperature < TemperatureFloor {
			break
		}
	}

	if w.stopFlag.Load() {
		w.log("worker: %s after %d iterations, best fitness %v", ErrCancelled, w.iterations, bestFitness)
	} else {
		w.log("worker: finished with best fitness %v after %d iterations", bestFitness, w.iterations)
	}

	w.mu.Lock()
	result := w.best.Clone()
	w.mu.Unlock()
	return result, nil
}
