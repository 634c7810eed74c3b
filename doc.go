// Package annealing provides a parallel simulated-annealing engine that
// searches for a near-optimal assignment of indivisible jobs to identical
// parallel processors.
//
// The package exposes two layers: a sequential Worker that runs the
// Metropolis loop over a single Schedule, and a Coordinator that runs
// several Workers concurrently, periodically exchanging their best
// solutions and broadcasting the global best back out. Schedule is a
// concrete value type; CoolingLaw and Mutation are pluggable policy
// interfaces, and their default implementations (ScheduleMutation,
// BoltzmannCooling, CauchyCooling, LogarithmicCooling) live alongside
// them in this package.
//
// Collaborators that are not part of the core search — data sources,
// CSV ingestion, and logging — live in the datasource and logging
// subpackages.
package annealing
