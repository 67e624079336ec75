package cmd

import (
	"github.com/tidewave/wavemesh/internal/terraintest"
	"github.com/tidewave/wavemesh/orchestrator"
	"github.com/tidewave/wavemesh/terrain"
	"github.com/tidewave/wavemesh/wavesource"
)

// shelf is one ring of a YAML-described nested-shelf terrain, matching
// internal/terraintest.Shelf. This is development-aid terrain authoring,
// not a level-file format: it describes concentric circles, nothing an
// editor's contour export would produce.
type shelf struct {
	CX, CY, Radius, Height float32
}

// scenario is the YAML shape a `wavebuild build`/`bench` input file
// decodes into: a synthetic terrain plus one or more wave sources.
type scenario struct {
	DefaultDepth float32                 `yaml:"defaultDepth"`
	Shelves      []shelf                 `yaml:"shelves"`
	Sources      []wavesource.WaveSource `yaml:"sources"`
}

func (s scenario) buildTerrain() *terrain.Terrain {
	if len(s.Shelves) == 0 {
		return terraintest.OpenOcean(s.DefaultDepth)
	}
	tsShelves := make([]terraintest.Shelf, len(s.Shelves))
	for i, sh := range s.Shelves {
		tsShelves[i] = terraintest.Shelf{CX: sh.CX, CY: sh.CY, Radius: sh.Radius, Height: sh.Height}
	}
	return terraintest.NestedShelves(s.DefaultDepth, tsShelves)
}

func (s scenario) inputs(cfg orchestratorConfig) []orchestrator.Input {
	t := s.buildTerrain()
	ins := make([]orchestrator.Input, len(s.Sources))
	for i, src := range s.Sources {
		ins[i] = orchestrator.Input{Source: src, Terrain: t, Cfg: cfg.BuildConfig}
	}
	return ins
}
