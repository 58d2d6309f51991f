package cron

import (
	"context"
	"slices"
)

// Job is one housekeeping task the worker sweeps, such as purging stale
// guest carts.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the worker's jobs in registration order.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry from the given jobs, skipping nils.
func NewRegistry(jobs ...Job) *Registry {
	r := &Registry{}
	for _, job := range jobs {
		r.Register(job)
	}
	return r
}

// Register appends a job. Nil jobs are ignored.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy of the registered jobs so callers cannot reorder the
// sweep.
func (r *Registry) Jobs() []Job {
	return slices.Clone(r.jobs)
}
