package transcode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/FocuswithJustin/u2t/internal/logging"
)

// Job is one conversion request: a source path and a destination path.
type Job struct {
	Source      string
	Destination string
}

// InPlace reports whether the job rewrites its own source.
func (j Job) InPlace() bool {
	return SamePath(j.Source, j.Destination)
}

// SamePath reports whether a and b name the same file: the paths are
// textually identical after cleaning, or both exist and are the same file.
func SamePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Independent reports whether no job writes a file that another job reads
// or writes. An in-place job only touches its own file.
func Independent(jobs []Job) bool {
	for i := range jobs {
		for j := range jobs {
			if i == j {
				continue
			}
			if SamePath(jobs[i].Destination, jobs[j].Source) {
				return false
			}
			if i < j && SamePath(jobs[i].Destination, jobs[j].Destination) {
				return false
			}
		}
	}
	return true
}

// Result is the outcome of one Job.
type Result struct {
	Job   Job
	Stats FileStats
	Err   error
}

// Failed returns the number of results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Runner converts independent jobs on a bounded number of goroutines.
type Runner struct {
	t       *Transcoder
	workers int
}

// NewRunner creates a Runner. workers <= 0 selects runtime.GOMAXPROCS(0).
func NewRunner(t *Transcoder, workers int) *Runner {
	if t == nil {
		t = defaultTranscoder
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{t: t, workers: workers}
}

// Run converts every job and returns one Result per job, in job order.
// A failing job does not stop the others. Jobs not yet started when ctx is
// cancelled report ctx.Err(). Jobs that are not Independent are converted
// one at a time in job order.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	workers := r.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers > 1 && !Independent(jobs) {
		logging.WarnContext(ctx, "jobs share files, converting one at a time", "jobs", len(jobs))
		workers = 1
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				results[i] = r.runOne(ctx, jobs[i])
			}
		}()
	}

feed:
	for i := range jobs {
		select {
		case next <- i:
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Job: jobs[j], Err: ctx.Err()}
			}
			break feed
		}
	}
	close(next)
	wg.Wait()
	return results
}

func (r *Runner) runOne(ctx context.Context, job Job) Result {
	start := time.Now()
	logging.JobStarted(ctx, job.Source, job.Destination, job.InPlace())

	stats, err := r.t.File(ctx, job)
	if err != nil {
		logging.JobFailed(ctx, job.Source, err)
		return Result{Job: job, Stats: stats, Err: err}
	}

	logging.JobFinished(ctx, job.Source, time.Since(start),
		"lines", stats.Lines,
		"changed_lines", stats.ChangedLines,
		"substituted", stats.Substituted,
		"dropped", stats.Dropped,
		"preserved", stats.Preserved,
		"unchanged", stats.Unchanged(),
		"output_blake3", stats.OutputDigest,
	)
	return Result{Job: job, Stats: stats}
}
