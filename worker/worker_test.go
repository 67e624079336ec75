package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/internal/terraintest"
	"github.com/tidewave/wavemesh/wavesource"
	"github.com/tidewave/wavemesh/worker"
)

func TestSubmitBuildsAMeshSuccessfully(t *testing.T) {
	pool := worker.New(context.Background())
	defer pool.Stop()

	ch := pool.Submit(worker.Request{
		RequestID: "req-1",
		Source:    wavesource.WaveSource{Amplitude: 2, Wavelength: 150, Direction: 0},
		Terrain:   terraintest.OpenOcean(-50),
		Cfg:       config.Default(),
	})

	resp := <-ch
	require.NoError(t, resp.Err)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Greater(t, len(resp.Vertices), 0)
}

func TestSubmitReportsBuildErrorForZeroWavelength(t *testing.T) {
	pool := worker.New(context.Background())
	defer pool.Stop()

	ch := pool.Submit(worker.Request{
		RequestID: "bad",
		Source:    wavesource.WaveSource{Wavelength: 0},
		Terrain:   terraintest.OpenOcean(-50),
		Cfg:       config.Default(),
	})

	resp := <-ch
	assert.Error(t, resp.Err)
	assert.Equal(t, "bad", resp.RequestID)
}

func TestSubmitBatchRunsAllRequestsConcurrently(t *testing.T) {
	pool := worker.New(context.Background())
	defer pool.Stop()

	terra := terraintest.OpenOcean(-50)
	reqs := make([]worker.Request, 4)
	for i := range reqs {
		reqs[i] = worker.Request{
			RequestID: string(rune('a' + i)),
			Source:    wavesource.WaveSource{Amplitude: 1, Wavelength: 100, Direction: 0},
			Terrain:   terra,
			Cfg:       config.Default(),
		}
	}

	responses := pool.SubmitBatch(reqs)
	assert.Len(t, responses, 4)
	assert.Len(t, worker.Succeeded(responses), 4)
	assert.Len(t, worker.Failed(responses), 0)
}

func TestFailedFormatsOneLinePerError(t *testing.T) {
	pool := worker.New(context.Background())
	defer pool.Stop()

	responses := pool.SubmitBatch([]worker.Request{
		{RequestID: "ok", Source: wavesource.WaveSource{Amplitude: 1, Wavelength: 100}, Terrain: terraintest.OpenOcean(-50), Cfg: config.Default()},
		{RequestID: "zero-wavelength", Source: wavesource.WaveSource{Wavelength: 0}, Terrain: terraintest.OpenOcean(-50), Cfg: config.Default()},
	})

	failed := worker.Failed(responses)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0], "zero-wavelength")
}
