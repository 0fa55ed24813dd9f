package experiment

import (
	"context"
	"math/rand"
	"sync"

	"github.com/schedsim/marisa/rational"
)

// trialJob is one task-set draw and scheduler run, dispatched to the pool.
// index identifies the trial's position in the utilization level's trial
// sequence, so results can be reassembled in submission order regardless of
// which goroutine finishes first.
type trialJob struct {
	index int
	util  rational.Rational
	rng   *rand.Rand
}

// trialResult is what one worker reports back for a completed trialJob.
type trialResult struct {
	index    int
	outcomes []outcome
	sample   []float64
	err      error
}

// trialPool runs trialJobs across a fixed number of goroutines, adapted
// from the teacher's pulse/async.WorkerPool: a parent context workers
// derive their own cancellable context from, a sync.WaitGroup draining on
// Close, and no shared mutable state between workers — each worker gets
// its own *rand.Rand via the job it is handed, and constructs its own
// simcore.SimModel per trial (see runTrial), so concurrent trials never
// touch state owned by another trial.
type trialPool struct {
	cfg      Config
	cores    int
	policies []policy

	jobs    chan trialJob
	results chan trialResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newTrialPool(ctx context.Context, workers int, cfg Config, cores int, policies []policy) *trialPool {
	workerCtx, cancel := context.WithCancel(ctx)
	pool := &trialPool{
		cfg:      cfg,
		cores:    cores,
		policies: policies,
		jobs:     make(chan trialJob, workers),
		results:  make(chan trialResult, workers),
		ctx:      workerCtx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.run()
	}
	return pool
}

func (p *trialPool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		outcomes, sample, err := runTrial(p.ctx, job.rng, p.cfg, p.cores, job.util, p.policies)
		select {
		case p.results <- trialResult{index: job.index, outcomes: outcomes, sample: sample, err: err}:
		case <-p.ctx.Done():
			return
		}
	}
}

// submit enqueues a trial. Must not be called after close.
func (p *trialPool) submit(job trialJob) {
	p.jobs <- job
}

// close stops accepting new jobs and waits for in-flight trials to drain.
func (p *trialPool) close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
	p.cancel()
}

// defaultWorkers picks a worker count grounded on the teacher's
// DefaultWorkerPoolConfig single-worker-by-default caution, scaled up here
// since trials share no mutable state (spec.md §5 calls the harness
// "embarrassingly parallel"): one worker per trial up to a small cap, since
// sweeps are CPU-bound simulation, not I/O-bound like the teacher's queue.
func defaultWorkers(trialsPerUtil int) int {
	const maxWorkers = 8
	if trialsPerUtil < 1 {
		return 1
	}
	if trialsPerUtil > maxWorkers {
		return maxWorkers
	}
	return trialsPerUtil
}
