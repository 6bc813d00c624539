package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of periodic background work
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Worker runs periodic maintenance jobs (conversation retention, dataset reload).
// Each job gets its own goroutine and ticker; a failing run is logged and the
// job is tried again on the next tick.
type Worker struct {
	jobs   []Job
	logger *zap.Logger

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	status  map[string]*JobStatus
}

// WorkerConfig holds configuration for the worker.
type WorkerConfig struct {
	Jobs   []Job
	Logger *zap.Logger
}

// JobStatus records the outcome of the latest run of a job
type JobStatus struct {
	Runs    int       `json:"runs"`
	LastRun time.Time `json:"last_run,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// NewWorker creates a new worker. Jobs without a Run func or with a
// non-positive interval are ignored.
func NewWorker(cfg WorkerConfig) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jobs := make([]Job, 0, len(cfg.Jobs))
	status := make(map[string]*JobStatus, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		if job.Run == nil || job.Interval <= 0 {
			logger.Warn("skipping job without schedule", zap.String("job", job.Name))
			continue
		}
		jobs = append(jobs, job)
		status[job.Name] = &JobStatus{}
	}

	return &Worker{
		jobs:   jobs,
		logger: logger.With(zap.String("component", "worker")),
		status: status,
	}
}

// Jobs returns the names of the scheduled jobs
func (w *Worker) Jobs() []string {
	names := make([]string, len(w.jobs))
	for i, job := range w.jobs {
		names[i] = job.Name
	}
	return names
}

// Start begins the job loops.
// They run until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting", zap.Strings("jobs", w.Jobs()))

	var wg sync.WaitGroup
	for _, job := range w.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			w.jobLoop(ctx, job)
		}(job)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	w.mu.RLock()
	doneCh := w.doneCh
	w.mu.RUnlock()
	if doneCh != nil {
		<-doneCh
	}
}

// RunOnce runs every job a single time, in order, and returns the first error
func (w *Worker) RunOnce(ctx context.Context) error {
	var first error
	for _, job := range w.jobs {
		if err := w.runJob(ctx, job); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (w *Worker) jobLoop(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			_ = w.runJob(ctx, job)
		}
	}
}

func (w *Worker) runJob(ctx context.Context, job Job) error {
	logger := w.logger.With(zap.String("job", job.Name))
	start := time.Now()

	err := job.Run(ctx)

	w.mu.Lock()
	st := w.status[job.Name]
	st.Runs++
	st.LastRun = start
	st.Error = ""
	if err != nil {
		st.Error = err.Error()
	}
	w.mu.Unlock()

	if err != nil {
		logger.Error("job failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return err
	}
	logger.Debug("job completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// Health reports whether the worker is running and how each job last went
type Health struct {
	Running bool                 `json:"running"`
	Jobs    map[string]JobStatus `json:"jobs"`
}

// Health returns the health status of the worker.
func (w *Worker) Health() Health {
	w.mu.RLock()
	defer w.mu.RUnlock()

	jobs := make(map[string]JobStatus, len(w.status))
	for name, st := range w.status {
		jobs[name] = *st
	}
	return Health{Running: w.running, Jobs: jobs}
}
