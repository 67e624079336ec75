// Package worker runs mesh builds on a fixed-size background pool (C11),
// isolating each build's panics and timeouts from its siblings and from
// the caller.
//
// Grounded on github.com/sixy6e/go-gsf's cmd/main.go convert_gsf_list:
// a pond.Pool sized off runtime.NumCPU, fed one Submit per unit of work,
// each wrapped so a single item's failure doesn't abort the batch.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/alitto/pond"
	"github.com/samber/lo"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/orchestrator"
	"github.com/tidewave/wavemesh/terrain"
	"github.com/tidewave/wavemesh/waveerr"
	"github.com/tidewave/wavemesh/wavesource"
)

const (
	initTimeout  = 5 * time.Second
	buildTimeout = 30 * time.Second
)

// Request is one build submitted to the pool. Terrain is handed to the
// worker by reference: the caller must not mutate it concurrently with an
// in-flight request that names it.
type Request struct {
	RequestID  string
	Source     wavesource.WaveSource
	Terrain    *terrain.Terrain
	TideHeight float32
	Cfg        config.BuildConfig
}

// Response is the outcome of one Request. Exactly one of (Vertices,
// Indices) or Err is populated.
type Response struct {
	RequestID string
	Vertices  []float32
	Indices   []uint32
	BuildTime time.Duration
	Err       error
}

// Pool runs Requests on a bounded worker pool.
type Pool struct {
	pond *pond.WorkerPool
}

// poolSize picks min(4, max(1, logicalCores-1)), leaving at least one core
// free for the caller goroutine and any foreground work.
func poolSize() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	return n
}

// New starts a pool. ctx governs the pool's overall lifetime; cancelling it
// stops accepting new work (in-flight requests still run to their own
// per-build timeout).
func New(ctx context.Context) *Pool {
	n := poolSize()
	p := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	return &Pool{pond: p}
}

// Stop waits for in-flight requests to finish and stops the pool.
func (p *Pool) Stop() {
	p.pond.StopAndWait()
}

// Submit runs one build on the pool and sends its Response on the
// returned channel (buffered, length 1) once it completes or times out.
func (p *Pool) Submit(req Request) <-chan Response {
	out := make(chan Response, 1)
	p.pond.Submit(func() {
		out <- runOne(req)
	})
	return out
}

// SubmitBatch runs every request in reqs concurrently and returns once all
// have completed (or timed out), with responses[i] answering reqs[i].
func (p *Pool) SubmitBatch(reqs []Request) []Response {
	chans := make([]<-chan Response, len(reqs))
	for i, req := range reqs {
		chans[i] = p.Submit(req)
	}
	responses := make([]Response, len(reqs))
	for i, ch := range chans {
		responses[i] = <-ch
	}
	return responses
}

func runOne(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{
				RequestID: req.RequestID,
				Err:       waveerr.New(waveerr.WorkerCrashed, "build panicked: %v", r),
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	done := make(chan orchestrator.Profile, 1)
	var mesh struct {
		vertices []float32
		indices  []uint32
	}
	var buildErr error
	start := time.Now()

	go func() {
		m, profile, err := orchestrator.Build(orchestrator.Input{
			Source:     req.Source,
			Terrain:    req.Terrain,
			TideHeight: req.TideHeight,
			Cfg:        req.Cfg,
		}, nil)
		mesh.vertices = m.Vertices
		mesh.indices = m.Indices
		buildErr = err
		done <- profile
	}()

	// pond v1's pool-wide context cancels the whole pool, not one task, so
	// the per-build deadline is enforced here instead, racing ctx.Done()
	// against the build's own completion. A timed-out build's goroutine is
	// abandoned rather than killed; it writes to already-unread locals.
	select {
	case <-done:
		if buildErr != nil {
			return Response{RequestID: req.RequestID, Err: buildErr, BuildTime: time.Since(start)}
		}
		return Response{
			RequestID: req.RequestID,
			Vertices:  mesh.vertices,
			Indices:   mesh.indices,
			BuildTime: time.Since(start),
		}
	case <-ctx.Done():
		return Response{
			RequestID: req.RequestID,
			Err:       waveerr.New(waveerr.BudgetExceeded, "build exceeded %s", buildTimeout),
			BuildTime: time.Since(start),
		}
	}
}

// Succeeded filters a batch of responses down to the ones that built
// successfully.
func Succeeded(responses []Response) []Response {
	return lo.Filter(responses, func(r Response, _ int) bool { return r.Err == nil })
}

// Failed filters a batch of responses down to the ones that errored,
// paired with a formatted summary line for each.
func Failed(responses []Response) []string {
	failed := lo.Filter(responses, func(r Response, _ int) bool { return r.Err != nil })
	return lo.Map(failed, func(r Response, _ int) string {
		return fmt.Sprintf("%s: %v", r.RequestID, r.Err)
	})
}
