package pipeline

import "github.com/rm-hull/image-channel-filters/internal/raster"

type job struct {
	name Name
	run  func() (raster.Raster, error)
}

type outcome struct {
	name   Name
	raster raster.Raster
	err    error
}

// runJobs executes every job and returns the outcomes in job order. With more
// than one worker the jobs are fanned out over a pool; the reported error is
// always that of the earliest failing job so the outcome matches a sequential
// run.
func runJobs(jobs []job, workers int) ([]outcome, error) {
	outcomes := make([]outcome, len(jobs))

	if workers <= 1 {
		for i, j := range jobs {
			r, err := j.run()
			if err != nil {
				return nil, err
			}
			outcomes[i] = outcome{name: j.name, raster: r}
		}
		return outcomes, nil
	}

	type indexed struct {
		index int
		outcome
	}

	queue := make(chan int)
	results := make(chan indexed)

	go func() {
		for i := range jobs {
			queue <- i
		}
		close(queue)
	}()

	for n := min(workers, len(jobs)); n > 0; n-- {
		go func() {
			for i := range queue {
				r, err := jobs[i].run()
				results <- indexed{index: i, outcome: outcome{name: jobs[i].name, raster: r, err: err}}
			}
		}()
	}

	for range jobs {
		res := <-results
		outcomes[res.index] = res.outcome
	}

	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
	}
	return outcomes, nil
}
