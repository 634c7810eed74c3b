package annealing

import "math"

// TemperatureFloor is the temperature below which callers must treat the
// schedule as terminal: cooling has effectively reached zero.
const TemperatureFloor = 1e-10

// CoolingLaw is a stateful temperature schedule: initialized once with
// T0, it returns T(k) for any non-negative iteration index k. All three
// required variants are pure functions of (T0, k) — Initialize stores T0
// once and Cool never keeps its own iteration counter.
type CoolingLaw interface {
	// Initialize stores the initial temperature T0. Must be called
	// before the first Cool.
	Initialize(t0 float64)

	// Cool returns T(k) for iteration index k >= 0. Cool(0) always
	// returns T0.
	Cool(k int) float64

	// Clone returns an independent copy of the cooling law, carrying
	// the same T0. Cooling laws are pure functions of (T0, k) so a
	// clone needs no RNG or other per-instance state, but each worker
	// still gets its own instance to keep worker state fully separate.
	Clone() CoolingLaw
}

// BoltzmannCooling implements T(k) = T0 / ln(1+k) for k >= 1, T(0) = T0.
// Note that Cool(1) = T0/ln(2) > T0: this transient rise above T0 is
// intentional and preserved from the reference schedule.
type BoltzmannCooling struct {
	t0 float64
}

// NewBoltzmannCooling returns a BoltzmannCooling law uninitialized;
// callers must call Initialize before Cool.
func NewBoltzmannCooling() *BoltzmannCooling { return &BoltzmannCooling{} }

func (c *BoltzmannCooling) Initialize(t0 float64) { c.t0 = t0 }

func (c *BoltzmannCooling) Cool(k int) float64 {
	if k == 0 {
		return c.t0
	}
	return c.t0 / math.Log(1+float64(k))
}

func (c *BoltzmannCooling) Clone() CoolingLaw {
	return &BoltzmannCooling{t0: c.t0}
}

// CauchyCooling implements T(k) = T0 / (1+k).
type CauchyCooling struct {
	t0 float64
}

func NewCauchyCooling() *CauchyCooling { return &CauchyCooling{} }

func (c *CauchyCooling) Initialize(t0 float64) { c.t0 = t0 }

func (c *CauchyCooling) Cool(k int) float64 {
	if k == 0 {
		return c.t0
	}
	return c.t0 / (1 + float64(k))
}

func (c *CauchyCooling) Clone() CoolingLaw {
	return &CauchyCooling{t0: c.t0}
}

// LogarithmicCooling implements T(k) = T0 * ln(1+k) / (1+k) for k >= 1,
// T(0) = T0.
type LogarithmicCooling struct {
	t0 float64
}

func NewLogarithmicCooling() *LogarithmicCooling { return &LogarithmicCooling{} }

func (c *LogarithmicCooling) Initialize(t0 float64) { c.t0 = t0 }

func (c *LogarithmicCooling) Cool(k int) float64 {
	if k == 0 {
		return c.t0
	}
	kf := float64(k)
	return c.t0 * math.Log(1+kf) / (1 + kf)
}

func (c *LogarithmicCooling) Clone() CoolingLaw {
	return &LogarithmicCooling{t0: c.t0}
}
