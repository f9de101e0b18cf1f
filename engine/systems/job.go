package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/resources"
)

/**
 * @brief Describes a unit of CPU-side work, such as building a geometry config.
 * GPU uploads never run on a job; they stay on the thread owning the context.
 */
type JobTask struct {
	/** @brief Used in log lines only. */
	Name string
	/** @brief Invoked on a worker. Required. */
	Run func() error
	/** @brief Invoked after Run succeeds. Optional. */
	OnComplete func()
	/** @brief Invoked with the error returned by Run. Optional. */
	OnFailure func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	// guards closed and sends on jobQueue
	mu     sync.Mutex
	closed bool
	errMu  sync.Mutex
	errs   []error
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = fmt.Errorf("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	if job.Run == nil {
		return
	}
	if err := job.Run(); err != nil {
		core.LogError("job %s failed: %s", job.Name, err)
		js.errMu.Lock()
		js.errs = append(js.errs, fmt.Errorf("%s: %w", job.Name, err))
		js.errMu.Unlock()
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete()
	}
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- jt
	return nil
}

/**
 * @brief Shuts the job system down once every queued job has run.
 * @return The failures of all jobs joined together, nil when every job succeeded.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()

	js.errMu.Lock()
	defer js.errMu.Unlock()
	return errors.Join(js.errs...)
}

// GenerateConfigs runs every generator on its own job and returns the
// configs in input order.
func GenerateConfigs(generators ...func() (*resources.GeometryConfig, error)) ([]*resources.GeometryConfig, error) {
	js, err := NewJobSystem(len(generators), len(generators))
	if err != nil {
		return nil, err
	}
	configs := make([]*resources.GeometryConfig, len(generators))
	for i, gen := range generators {
		i, gen := i, gen
		err := js.Submit(JobTask{
			Name: fmt.Sprintf("geometry-%d", i),
			Run: func() error {
				c, err := gen()
				if err != nil {
					return err
				}
				configs[i] = c
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
	}
	if err := js.Shutdown(); err != nil {
		return nil, err
	}
	return configs, nil
}
