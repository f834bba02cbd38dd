package gasp

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iantbutler01/gasp/jsonvalue"
)

// Job is one complete document to parse as part of a RunConcurrent batch.
type Job struct {
	Name string
	Text string
}

// Result pairs a Job's Name with its parsed Value.
type Result struct {
	Name  string
	Value jsonvalue.Value
}

// RunConcurrent parses each job concurrently, mirroring the teacher's
// errgroup-based fan-out for connecting to multiple MCP servers at once
// (mcp.LoadConfigFromJSON). It's meant for batches of independent,
// already-complete documents rather than a single incremental stream; use
// Stream for incremental input.
func RunConcurrent(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			val, err := Parse(job.Text)
			if err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			results[i] = Result{Name: job.Name, Value: val}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
