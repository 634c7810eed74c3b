package annealing

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// exchangeQuantum is the sleep between Coordinator reduce/broadcast
// cycles, giving workers time to make progress between rendezvous.
const exchangeQuantum = 50 * time.Millisecond

// workerQuantum is the sleep a Worker takes between bursts of
// ExchangeInterval outer-loop cycles when driven by the Coordinator,
// reducing lock contention on the shared current/best snapshot.
const workerQuantum = 10 * time.Millisecond

// livenessProbeEvery is the number of exchange cycles between checks of
// whether any worker is still running.
const livenessProbeEvery = 10

// CoordinatorConfig groups the tunables of the Parallel Coordinator.
type CoordinatorConfig struct {
	// NumWorkers is N, the number of worker goroutines. A value <= 0
	// selects runtime.GOMAXPROCS(0), floored at 1.
	NumWorkers int

	// Worker is forwarded, verbatim, to every spawned Worker.
	Worker WorkerConfig

	// ExchangeInterval is E, the number of worker outer-loop cycles run
	// between synchronous rendezvous with the Coordinator.
	ExchangeInterval int

	// MaxNoImprovementGlobal is N_ng: the Coordinator stops once this
	// many consecutive exchange cycles produced no global improvement.
	MaxNoImprovementGlobal int
}

// DefaultCoordinatorConfig returns the reference parameters used
// throughout spec.md's end-to-end scenarios.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		NumWorkers:             4,
		Worker:                 DefaultWorkerConfig(),
		ExchangeInterval:       100,
		MaxNoImprovementGlobal: 10,
	}
}

// workerHandle pairs a running Worker with the goroutine driving it.
type workerHandle struct {
	worker *Worker
	done   chan struct{}
}

// Coordinator is the Parallel Coordinator: it spawns N Sequential SA
// Workers, periodically reduces their best solutions into a single
// global best, and broadcasts that global best back to every worker.
// Workers never communicate directly; all cross-worker influence flows
// through the Coordinator.
type Coordinator struct {
	config CoordinatorConfig
	logger Logger

	seed     *Schedule
	mutation Mutation
	cooling  CoolingLaw

	mu                sync.Mutex // guards globalBest, globalBestFitness
	globalBest        *Schedule
	globalBestFitness float64

	stopFlag bool
	stopMu   sync.Mutex

	handles []*workerHandle
}

// NewCoordinator returns an unconfigured Coordinator. Callers must call
// SetSeed, SetMutation and SetCoolingLaw before Run.
func NewCoordinator() *Coordinator {
	return &Coordinator{config: DefaultCoordinatorConfig()}
}

// SetConfig replaces the Coordinator's tunables.
func (c *Coordinator) SetConfig(cfg CoordinatorConfig) { c.config = cfg }

// SetSeed installs the seed schedule template that every worker clones
// from at spawn time.
func (c *Coordinator) SetSeed(s *Schedule) { c.seed = s }

// SetMutation installs the mutation shared across workers; each worker
// actually receives its own Clone() of it.
func (c *Coordinator) SetMutation(m Mutation) { c.mutation = m }

// SetCoolingLaw installs the cooling law shared across workers; each
// worker actually receives its own Clone() of it.
func (c *Coordinator) SetCoolingLaw(cl CoolingLaw) { c.cooling = cl }

// SetLogger installs the observability sink, forwarded to every worker.
func (c *Coordinator) SetLogger(l Logger) { c.logger = l }

func (c *Coordinator) log(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Log(fmt.Sprintf(format, args...))
}

func (c *Coordinator) numWorkers() int {
	if c.config.NumWorkers > 0 {
		return c.config.NumWorkers
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// Run spawns the configured number of workers and runs the exchange
// protocol in the calling goroutine: sleep, reduce, broadcast, repeat,
// until either the global no-improvement budget is exhausted, Stop is
// called, or every worker has finished on its own. It performs one
// final reduce before returning so late improvements are never lost.
func (c *Coordinator) Run() (*Schedule, error) {
	if c.seed == nil || c.mutation == nil || c.cooling == nil {
		return nil, fmt.Errorf("%w: coordinator requires a seed schedule, mutation and cooling law before Run", ErrNotInitialized)
	}

	c.mu.Lock()
	c.globalBest = c.seed.Clone()
	c.globalBestFitness = c.globalBest.Evaluate()
	c.mu.Unlock()

	c.stopMu.Lock()
	c.stopFlag = false
	c.stopMu.Unlock()

	n := c.numWorkers()
	c.spawnWorkers(n)

	noImproveGlobal := 0
	cycle := 0

	for noImproveGlobal < c.config.MaxNoImprovementGlobal && !c.isStopped() {
		time.Sleep(exchangeQuantum)

		improved := c.reduceAndBroadcast()
		if improved {
			noImproveGlobal = 0
		} else {
			noImproveGlobal++
		}

		cycle++
		if cycle%livenessProbeEvery == 0 && !c.anyWorkerRunning() {
			c.log("coordinator: all workers finished, stopping at cycle %d", cycle)
			break
		}
	}

	c.Stop()
	c.reduceAndBroadcast()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.globalBest.Clone(), nil
}

func (c *Coordinator) spawnWorkers(n int) {
	c.handles = make([]*workerHandle, n)
	for i := 0; i < n; i++ {
		w := NewWorker()
		w.SetInitialSchedule(c.seed.Clone())
		w.SetMutation(c.mutation.Clone())
		w.SetCoolingLaw(c.cooling.Clone())
		w.SetConfig(c.config.Worker)
		w.SetLogger(c.logger)

		handle := &workerHandle{worker: w, done: make(chan struct{})}
		c.handles[i] = handle

		go c.driveWorker(handle)
	}
}

// driveWorker repeatedly runs a worker's outer loop in bursts of
// ExchangeInterval outer cycles, sleeping briefly between bursts so the
// Coordinator's exchange step can interleave. A worker whose Run
// returns an error (e.g. a failed mutation) is logged and considered
// finished; it does not abort the rest of the search.
func (c *Coordinator) driveWorker(h *workerHandle) {
	defer close(h.done)

	for !c.isStopped() {
		_, err := h.worker.RunBurst(c.config.ExchangeInterval)
		if err != nil {
			c.log("coordinator: worker failed: %v", err)
			return
		}
		if c.isStopped() {
			return
		}
		time.Sleep(workerQuantum)
	}
}

// reduceAndBroadcast is the Coordinator's exchange protocol: snapshot
// every worker's best under its own lock, adopt any strictly better
// candidate as the new global best, and, only when the global best
// improved, push it back out to every worker. It returns whether the
// global best improved this cycle. Lock order is worker lock first (via
// Worker.Best), Coordinator lock second, matching the discipline in
// spec.md §5.
func (c *Coordinator) reduceAndBroadcast() bool {
	improved := false

	for _, h := range c.handles {
		best := h.worker.Best()
		if best == nil {
			continue
		}
		fitness := best.Evaluate()

		c.mu.Lock()
		if fitness < c.globalBestFitness {
			c.globalBest = best
			c.globalBestFitness = fitness
			improved = true
		}
		c.mu.Unlock()
	}

	if improved {
		c.mu.Lock()
		globalBest := c.globalBest
		c.mu.Unlock()

		for _, h := range c.handles {
			h.worker.SetCurrent(globalBest)
		}
		c.log("coordinator: global best improved to %v", c.GlobalBestFitness())
	}

	return improved
}

// GlobalBestFitness returns the objective value of the current global
// best schedule.
func (c *Coordinator) GlobalBestFitness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.globalBestFitness
}

func (c *Coordinator) anyWorkerRunning() bool {
	for _, h := range c.handles {
		if h.worker.IsRunning() {
			return true
		}
	}
	return false
}

func (c *Coordinator) isStopped() bool {
	c.stopMu.Lock()
	defer c.stopMu.Unlock()
	return c.stopFlag
}

// Stop terminates all workers and joins their driving goroutines; Run
// returns promptly afterward. A worker that already returned on its own
// is still safely joinable.
func (c *Coordinator) Stop() {
	c.stopMu.Lock()
	alreadyStopped := c.stopFlag
	c.stopFlag = true
	c.stopMu.Unlock()
	if alreadyStopped {
		return
	}

	for _, h := range c.handles {
		h.worker.Stop()
	}
	for _, h := range c.handles {
		<-h.done
	}
}
