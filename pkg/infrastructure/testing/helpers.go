package testing

import (
	"fmt"

	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/infrastructure/repositories/memory"
)

// ExampleText is the two-blueprint example in puzzle text form
const ExampleText = `Blueprint 1:
  Each ore robot costs 4 ore.
  Each clay robot costs 2 ore.
  Each obsidian robot costs 3 ore and 14 clay.
  Each geode robot costs 2 ore and 7 obsidian.

Blueprint 2:
  Each ore robot costs 2 ore.
  Each clay robot costs 3 ore.
  Each obsidian robot costs 3 ore and 8 clay.
  Each geode robot costs 3 ore and 12 obsidian.
`

// CheapBlueprintText is CheapBlueprint(1) in puzzle text form
const CheapBlueprintText = "Blueprint 1: Each ore robot costs 2 ore. Each clay robot costs 1 ore. " +
	"Each obsidian robot costs 1 ore and 2 clay. Each geode robot costs 1 ore and 2 obsidian.\n"

// ExampleYields are the best geode yields of the example blueprints at horizon 24
var ExampleYields = map[int]int{1: 9, 2: 12}

// FiveResourceChain extends the default chain with a fifth terminal resource
func FiveResourceChain() entities.Chain {
	chain, err := entities.NewChain(entities.Ore, entities.Clay, entities.Obsidian, entities.Geode, "crystal")
	if err != nil {
		panic(err)
	}
	return chain
}

// BuildBlueprint creates a default-chain blueprint from the six numbers of the puzzle format
func BuildBlueprint(id, oreOre, clayOre, obsOre, obsClay, geodeOre, geodeObs int) *entities.Blueprint {
	bp, err := entities.NewBlueprint(id, entities.DefaultChain(), entities.CostTable{
		entities.Ore:      {entities.Ore: oreOre},
		entities.Clay:     {entities.Ore: clayOre},
		entities.Obsidian: {entities.Ore: obsOre, entities.Clay: obsClay},
		entities.Geode:    {entities.Ore: geodeOre, entities.Obsidian: geodeObs},
	})
	if err != nil {
		panic(fmt.Sprintf("invalid test blueprint %d: %v", id, err))
	}
	return bp
}

// ExampleBlueprints returns the two example blueprints
func ExampleBlueprints() []*entities.Blueprint {
	return []*entities.Blueprint{
		BuildBlueprint(1, 4, 2, 3, 14, 2, 7),
		BuildBlueprint(2, 2, 3, 3, 8, 3, 12),
	}
}

// CheapBlueprint is a blueprint whose robots are all affordable early.
// Its first terminal robot can be running by time 8.
func CheapBlueprint(id int) *entities.Blueprint {
	return BuildBlueprint(id, 2, 1, 1, 2, 1, 2)
}

// FiveResourceBlueprint returns a blueprint for FiveResourceChain
func FiveResourceBlueprint(id int) *entities.Blueprint {
	bp, err := entities.NewBlueprint(id, FiveResourceChain(), entities.CostTable{
		entities.Ore:      {entities.Ore: 2},
		entities.Clay:     {entities.Ore: 2},
		entities.Obsidian: {entities.Ore: 2, entities.Clay: 3},
		entities.Geode:    {entities.Ore: 2, entities.Obsidian: 2},
		"crystal":         {entities.Ore: 1, entities.Geode: 2},
	})
	if err != nil {
		panic(fmt.Sprintf("invalid five-resource blueprint %d: %v", id, err))
	}
	return bp
}

// BuildExampleRepository returns a repository holding the example blueprints
func BuildExampleRepository() *memory.BlueprintRepository {
	repo := memory.NewBlueprintRepository(2)
	if err := repo.LoadBlueprints(ExampleBlueprints()); err != nil {
		panic(err)
	}
	return repo
}
