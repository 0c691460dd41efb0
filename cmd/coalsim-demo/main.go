package main

import (
	"fmt"
	"log"

	"github.com/lixenwraith/coalsim/coalescent"
	"github.com/lixenwraith/coalsim/config"
	"github.com/lixenwraith/coalsim/rng"
	"github.com/lixenwraith/coalsim/simplify"
	"github.com/lixenwraith/coalsim/tables"
	"github.com/lixenwraith/coalsim/treeseq"
)

func main() {
	fmt.Println("=== Coalescent Simulation Demo ===")

	dto := config.ScenarioDTO{
		NumLoci:           1000,
		RecombinationRate: 0.2,
		Model:             config.ModelDTO{Kind: "smc_prime"},
		Populations: []config.PopulationDTO{
			{Name: "pop-0", InitialSize: 1.0},
		},
		Samples: sampleSet(10),
	}

	fmt.Println("Building simulator from scenario...")
	sim, err := config.Build(dto, rng.NewSeeded(42, 7))
	if err != nil {
		log.Fatalf("config.Build: %v", err)
	}

	fmt.Println("Running simulation...")
	reason, err := sim.Run(0, 0)
	if err != nil {
		log.Fatalf("Run: %v", err)
	}
	fmt.Printf("Run finished: %v (coalescences=%d recombinations=%d migrations=%d)\n",
		reason, sim.NumCoalescenceEvents(), sim.NumRecombinationEvents(), sim.NumMigrationEvents())

	coll := tables.NewCollection(1000)
	recomb := coalescent.IdentityMap{NumLoci: 1000}
	if err := sim.PopulateTables(1.0, recomb, coll.Nodes, coll.Edges, coll.Migrations); err != nil {
		log.Fatalf("PopulateTables: %v", err)
	}
	coll.Edges.Sort(coll.Nodes.Time)
	coll.Edges.Squash()

	fmt.Printf("Produced %d nodes, %d edges over %d breakpoints\n",
		coll.Nodes.NumRows(), coll.Edges.NumRows(), sim.NumBreakpoints())

	fmt.Println("Simplifying onto the first 4 samples...")
	simplified, err := simplify.Simplify(coll, []int32{0, 1, 2, 3}, simplify.Options{})
	if err != nil {
		log.Fatalf("Simplify: %v", err)
	}
	fmt.Printf("Simplified to %d nodes, %d edges\n", simplified.Nodes.NumRows(), simplified.Edges.NumRows())

	fmt.Println("Walking local trees...")
	it, err := treeseq.NewIterator(simplified.Nodes, simplified.Edges, simplified.SequenceLength, treeseq.Options{TrackSampleCounts: true})
	if err != nil {
		log.Fatalf("NewIterator: %v", err)
	}
	ok, err := it.First()
	for n := 0; err == nil && ok; n++ {
		left, right := it.Interval()
		fmt.Printf("  tree %d: [%v, %v) roots=%v\n", n, left, right, it.Roots())
		ok, err = it.Next()
	}
	if err != nil {
		log.Fatalf("tree iteration: %v", err)
	}

	fmt.Println("=== Demo Complete ===")
}

// sampleSet places n samples into population 0 at time 0.
func sampleSet(n int) []config.SampleDTO {
	samples := make([]config.SampleDTO, n)
	for i := range samples {
		samples[i] = config.SampleDTO{Population: 0, Time: 0}
	}
	return samples
}
